// Package submit drives answer submission: short-circuiting already-solved
// parts, confirming with the user, classifying the grading service's
// response, and unlocking part two after a confirmed part one.
package submit

import (
	"context"
	"fmt"
	"io"
	"os"

	"advent/internal/answers"
	"advent/internal/history"
	"advent/internal/logging"
	"advent/internal/puzzle"
	"advent/internal/scaffold"
)

// Grader submits an answer and returns the service's response text.
type Grader interface {
	Submit(ctx context.Context, id puzzle.ID, part int, answer string) (string, error)
}

// Fetcher re-fetches instructions after part one is confirmed, so the
// ledger and the user see part two.
type Fetcher interface {
	FetchInstructions(ctx context.Context, id puzzle.ID, overwrite bool) (string, error)
}

// Prompter asks for submission confirmation.
type Prompter interface {
	Confirm(prompt string, def bool) bool
}

// Renderer turns instructions HTML into terminal output.
type Renderer func(articleHTML string) string

// Coordinator submits one candidate answer per run.
type Coordinator struct {
	Grader   Grader
	Fetcher  Fetcher
	Prompter Prompter
	Journal  *history.Store

	// Repo is the solutions repository root, needed to unlock the
	// part-two spec in place.
	Repo string

	// RunID tags journal entries with the invocation they came from.
	RunID string

	// Render defaults to the glamour-backed instructions renderer.
	Render Renderer

	// Out receives user-facing output. Defaults to stdout.
	Out io.Writer
}

func (c *Coordinator) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// ChoosePart picks which computed answer to submit: the furthest part not
// yet known correct. ok is false when there is nothing to submit.
func ChoosePart(answerOne, answerTwo string, state answers.State) (part int, answer string, ok bool) {
	if answerTwo != "" && !state.HasTwo() {
		return 2, answerTwo, true
	}
	if answerOne != "" && !state.HasOne() {
		return 1, answerOne, true
	}
	return 0, "", false
}

// SubmitIfConfirmed submits the candidate answer for the given part after
// user confirmation. It returns a nil result when the submission was
// skipped without a network call: the part is already solved, the user
// declined, or the journal knows the answer is wrong.
func (c *Coordinator) SubmitIfConfirmed(ctx context.Context, id puzzle.ID, part int, answer string, state answers.State) (*Result, error) {
	if state.Complete() {
		fmt.Fprintf(c.out(), "Both parts of %s are already complete.\n", id)
		return nil, nil
	}
	if state.Known(part) {
		fmt.Fprintf(c.out(), "Part %d of %s is already solved.\n", part, id)
		return nil, nil
	}
	if c.Journal.WasWrong(id, part, answer) {
		fmt.Fprintf(c.out(), "Answer %q was already rejected for part %d; not submitting.\n", answer, part)
		logging.SubmitWarn("refused duplicate wrong answer %q for %s part %d", answer, id, part)
		return nil, nil
	}

	prompt := fmt.Sprintf("Submit %q for %s part %d?", answer, id, part)
	if !c.Prompter.Confirm(prompt, true) {
		fmt.Fprintln(c.out(), "Not submitted.")
		return nil, nil
	}

	responseText, err := c.Grader.Submit(ctx, id, part, answer)
	if err != nil {
		return nil, err
	}
	result := Classify(responseText)
	logging.Submit("%s part %d -> %s", id, part, result.Classification)

	if err := c.Journal.Record(history.Attempt{
		Year:    id.Year,
		Day:     id.Day,
		Part:    part,
		Answer:  answer,
		Verdict: result.Classification.String(),
		RunID:   c.RunID,
	}); err != nil {
		// The journal is advisory; a write failure must not eat the verdict.
		logging.SubmitWarn("journal write failed: %v", err)
	}

	fmt.Fprintln(c.out(), result.Raw)

	if result.Classification == Correct && part == 1 {
		if err := c.unlockPartTwo(ctx, id); err != nil {
			return &result, err
		}
	}
	return &result, nil
}

// unlockPartTwo refreshes the instructions (which now include part two),
// activates the part-two spec case, and shows the refreshed text.
func (c *Coordinator) unlockPartTwo(ctx context.Context, id puzzle.ID) error {
	instructions, err := c.Fetcher.FetchInstructions(ctx, id, true)
	if err != nil {
		return fmt.Errorf("failed to refresh instructions: %w", err)
	}
	if err := scaffold.UnlockPartTwo(c.Repo, id); err != nil {
		return err
	}
	if c.Render != nil {
		fmt.Fprintln(c.out(), c.Render(instructions))
	}
	fmt.Fprintln(c.out(), "Part two unlocked.")
	return nil
}
