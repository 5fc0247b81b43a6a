// Package orchestrate holds the decision tree that selects which puzzle
// parts to execute against real input, given forcing flags, the
// known-correct answers, and the spec suite outcome.
package orchestrate

import (
	"context"
	"fmt"
	"io"
	"os"

	"advent/internal/answers"
	"advent/internal/errs"
	"advent/internal/logging"
	"advent/internal/puzzle"
	"advent/internal/specrun"
)

// Flags are the user-facing execution switches. SpecOnly cannot combine
// with either forcing flag.
type Flags struct {
	SpecOnly     bool
	ForcePartOne bool
	ForcePartTwo bool
}

// Validate rejects conflicting flag combinations.
func (f Flags) Validate() error {
	if f.SpecOnly && (f.ForcePartOne || f.ForcePartTwo) {
		return errs.Inputf("--spec cannot be combined with --real-part-1 or --real-part-2")
	}
	return nil
}

// Result carries the computed answers; an empty string means the part was
// not executed. An entirely empty result means there is nothing to submit.
type Result struct {
	AnswerOne string
	AnswerTwo string
}

// Empty reports whether no part produced an answer.
func (r Result) Empty() bool { return r.AnswerOne == "" && r.AnswerTwo == "" }

// SpecGate runs the spec suite; execution against real input never
// happens unless it passes.
type SpecGate interface {
	RunSilent(ctx context.Context, id puzzle.ID) (specrun.Outcome, error)
	RunVerbose(ctx context.Context, id puzzle.ID) error
}

// Solution executes one part of the puzzle's solution against real input.
type Solution interface {
	Part(ctx context.Context, id puzzle.ID, part int) (string, error)
}

// InputFetcher makes sure the real input is available before a part runs.
type InputFetcher interface {
	FetchInput(ctx context.Context, id puzzle.ID) (string, error)
}

// Orchestrator drives one puzzle's run.
type Orchestrator struct {
	Specs    SpecGate
	Solution Solution
	Input    InputFetcher

	// Out receives user-facing progress lines. Defaults to stdout.
	Out io.Writer
}

func (o *Orchestrator) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// Orchestrate applies the decision rules and executes the chosen parts.
// A failing spec suite is a hard gate: it aborts the run with an empty
// result and no error, and forcing flags do not bypass it.
func (o *Orchestrator) Orchestrate(ctx context.Context, id puzzle.ID, flags Flags, state answers.State) (Result, error) {
	if err := flags.Validate(); err != nil {
		return Result{}, err
	}

	if flags.SpecOnly {
		return Result{}, o.Specs.RunVerbose(ctx, id)
	}

	outcome, err := o.Specs.RunSilent(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !outcome.Passed {
		fmt.Fprintf(o.out(), "Specs are failing; not running against real input.\n")
		return Result{}, nil
	}

	runOne, runTwo := SelectParts(flags, state, outcome.Skipped)
	logging.Run("decision for %s: part1=%v part2=%v (skipped=%d)", id, runOne, runTwo, outcome.Skipped)
	if !runOne && !runTwo {
		return Result{}, nil
	}

	if _, err := o.Input.FetchInput(ctx, id); err != nil {
		return Result{}, err
	}

	var result Result
	if runOne {
		result.AnswerOne, err = o.Solution.Part(ctx, id, 1)
		if err != nil {
			return Result{}, err
		}
		fmt.Fprintf(o.out(), "Part one: %s\n", result.AnswerOne)
	}
	if runTwo {
		result.AnswerTwo, err = o.Solution.Part(ctx, id, 2)
		if err != nil {
			return Result{}, err
		}
		fmt.Fprintf(o.out(), "Part two: %s\n", result.AnswerTwo)
	}
	return result, nil
}

// SelectParts computes which parts to execute. The rules:
//
// Part one runs when forced, or when part two was not requested as the
// sole target and either part one is not yet known correct with at most
// one skipped case, or part two is already known correct (re-deriving
// part one stays meaningful for display after both are solved).
//
// Part two runs when forced, or when part one was not requested as the
// sole target and either part one is known correct, part two is not, and
// nothing is skipped, or part two is already known correct.
func SelectParts(flags Flags, state answers.State, skipped int) (runOne, runTwo bool) {
	runOne = flags.ForcePartOne ||
		(!flags.ForcePartTwo && ((!state.HasOne() && skipped <= 1) || state.HasTwo()))
	runTwo = flags.ForcePartTwo ||
		(!flags.ForcePartOne && ((state.HasOne() && !state.HasTwo() && skipped == 0) || state.HasTwo()))
	return runOne, runTwo
}
