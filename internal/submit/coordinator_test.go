package submit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advent/internal/answers"
	"advent/internal/puzzle"
	"advent/internal/scaffold"
)

type fakeGrader struct {
	response string
	calls    int
	lastPart int
	lastAns  string
}

func (g *fakeGrader) Submit(ctx context.Context, id puzzle.ID, part int, answer string) (string, error) {
	g.calls++
	g.lastPart = part
	g.lastAns = answer
	return g.response, nil
}

type fakeFetcher struct {
	html  string
	calls int
}

func (f *fakeFetcher) FetchInstructions(ctx context.Context, id puzzle.ID, overwrite bool) (string, error) {
	f.calls++
	return f.html, nil
}

type fakePrompter struct{ answer bool }

func (p fakePrompter) Confirm(prompt string, def bool) bool { return p.answer }

func newCoordinator(t *testing.T, grader *fakeGrader, fetcher *fakeFetcher, confirm bool) (*Coordinator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &Coordinator{
		Grader:   grader,
		Fetcher:  fetcher,
		Prompter: fakePrompter{answer: confirm},
		Repo:     t.TempDir(),
		Out:      &out,
	}, &out
}

func TestChoosePart(t *testing.T) {
	t.Run("prefers a fresh part two", func(t *testing.T) {
		part, answer, ok := ChoosePart("10", "20", answers.State{PartOne: "10"})
		require.True(t, ok)
		assert.Equal(t, 2, part)
		assert.Equal(t, "20", answer)
	})

	t.Run("falls back to part one", func(t *testing.T) {
		part, answer, ok := ChoosePart("10", "", answers.State{})
		require.True(t, ok)
		assert.Equal(t, 1, part)
		assert.Equal(t, "10", answer)
	})

	t.Run("nothing new to submit", func(t *testing.T) {
		_, _, ok := ChoosePart("10", "20", answers.State{PartOne: "10", PartTwo: "20"})
		assert.False(t, ok)
	})
}

func TestSubmitIfConfirmed(t *testing.T) {
	id := puzzle.ID{Year: 2024, Day: 5}

	t.Run("skips without network when both parts are complete", func(t *testing.T) {
		grader := &fakeGrader{}
		coord, out := newCoordinator(t, grader, &fakeFetcher{}, true)

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 2, "99",
			answers.State{PartOne: "1", PartTwo: "2"})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Zero(t, grader.calls)
		assert.Contains(t, out.String(), "already complete")
	})

	t.Run("skips without network when the part is already solved", func(t *testing.T) {
		grader := &fakeGrader{}
		coord, out := newCoordinator(t, grader, &fakeFetcher{}, true)

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 1, "99",
			answers.State{PartOne: "1"})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Zero(t, grader.calls)
		assert.Contains(t, out.String(), "already solved")
	})

	t.Run("declined confirmation skips the call", func(t *testing.T) {
		grader := &fakeGrader{}
		coord, out := newCoordinator(t, grader, &fakeFetcher{}, false)

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 1, "42", answers.State{})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Zero(t, grader.calls)
		assert.Contains(t, out.String(), "Not submitted")
	})

	t.Run("incorrect answer changes nothing beyond the message", func(t *testing.T) {
		grader := &fakeGrader{response: "That's not the right answer; too high."}
		fetcher := &fakeFetcher{}
		coord, out := newCoordinator(t, grader, fetcher, true)

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 1, "42", answers.State{})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, Incorrect, result.Classification)
		assert.Equal(t, 1, grader.calls)
		assert.Zero(t, fetcher.calls)
		assert.Contains(t, out.String(), "not the right answer")
	})

	t.Run("correct part one refetches and unlocks part two", func(t *testing.T) {
		grader := &fakeGrader{response: "That's the right answer! One gold star."}
		fetcher := &fakeFetcher{html: "<article><p>--- Part Two ---</p></article>"}
		coord, out := newCoordinator(t, grader, fetcher, true)
		require.NoError(t, scaffold.Create(coord.Repo, id))

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 1, "42", answers.State{})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, Correct, result.Classification)
		assert.Equal(t, 1, grader.calls)
		assert.Equal(t, 1, fetcher.calls)
		assert.Contains(t, out.String(), "Part two unlocked")

		spec, err := os.ReadFile(filepath.Join(coord.Repo, filepath.FromSlash(id.SpecPath())))
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(spec), scaffold.PartTwoLockMarker))
	})

	t.Run("correct part two ends the puzzle quietly", func(t *testing.T) {
		grader := &fakeGrader{response: "That's the right answer!"}
		fetcher := &fakeFetcher{}
		coord, _ := newCoordinator(t, grader, fetcher, true)

		result, err := coord.SubmitIfConfirmed(context.Background(), id, 2, "42",
			answers.State{PartOne: "1"})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, Correct, result.Classification)
		assert.Zero(t, fetcher.calls)
	})

	t.Run("submits the given part and answer", func(t *testing.T) {
		grader := &fakeGrader{response: "Please log in."}
		coord, _ := newCoordinator(t, grader, &fakeFetcher{}, true)

		_, err := coord.SubmitIfConfirmed(context.Background(), id, 2, "banana",
			answers.State{PartOne: "1"})
		require.NoError(t, err)
		assert.Equal(t, 2, grader.lastPart)
		assert.Equal(t, "banana", grader.lastAns)
	})
}
