package orchestrate

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advent/internal/answers"
	"advent/internal/errs"
	"advent/internal/puzzle"
	"advent/internal/specrun"
)

func TestFlagsValidate(t *testing.T) {
	t.Run("spec only conflicts with forcing", func(t *testing.T) {
		for _, flags := range []Flags{
			{SpecOnly: true, ForcePartOne: true},
			{SpecOnly: true, ForcePartTwo: true},
		} {
			err := flags.Validate()
			require.Error(t, err)
			_, handled := errs.Handled(err)
			assert.True(t, handled)
		}
	})

	t.Run("other combinations are fine", func(t *testing.T) {
		for _, flags := range []Flags{
			{},
			{SpecOnly: true},
			{ForcePartOne: true},
			{ForcePartTwo: true},
			{ForcePartOne: true, ForcePartTwo: true},
		} {
			assert.NoError(t, flags.Validate())
		}
	})
}

// TestSelectParts enumerates every boundary combination of answer state,
// skip count, and forcing flags.
func TestSelectParts(t *testing.T) {
	state := func(one, two bool) answers.State {
		var s answers.State
		if one {
			s.PartOne = "1"
		}
		if two {
			s.PartTwo = "2"
		}
		return s
	}

	tests := []struct {
		name     string
		flags    Flags
		one, two bool
		skipped  int
		wantOne  bool
		wantTwo  bool
	}{
		// No forcing flags.
		{"fresh puzzle no skips", Flags{}, false, false, 0, true, false},
		{"fresh puzzle one skip", Flags{}, false, false, 1, true, false},
		{"fresh puzzle two skips runs nothing", Flags{}, false, false, 2, false, false},
		{"part one solved no skips runs part two", Flags{}, true, false, 0, false, true},
		{"part one solved with a skip runs nothing", Flags{}, true, false, 1, false, false},
		{"part one solved two skips runs nothing", Flags{}, true, false, 2, false, false},
		{"both solved re-derives both", Flags{}, true, true, 0, true, true},
		{"both solved even with skips", Flags{}, true, true, 2, true, true},
		// Part two known without part one (externally impossible, still defined).
		{"only part two known", Flags{}, false, true, 0, true, true},

		// Forcing part one runs part one alone.
		{"force one on fresh puzzle", Flags{ForcePartOne: true}, false, false, 2, true, false},
		{"force one when both solved", Flags{ForcePartOne: true}, true, true, 0, true, false},
		{"force one when part one solved", Flags{ForcePartOne: true}, true, false, 0, true, false},

		// Forcing part two runs part two alone.
		{"force two on fresh puzzle", Flags{ForcePartTwo: true}, false, false, 2, false, true},
		{"force two when both solved", Flags{ForcePartTwo: true}, true, true, 0, false, true},
		{"force two when part one solved", Flags{ForcePartTwo: true}, true, false, 1, false, true},

		// Both forced.
		{"both forced", Flags{ForcePartOne: true, ForcePartTwo: true}, false, false, 2, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runOne, runTwo := SelectParts(tt.flags, state(tt.one, tt.two), tt.skipped)
			assert.Equal(t, tt.wantOne, runOne, "part one")
			assert.Equal(t, tt.wantTwo, runTwo, "part two")
		})
	}
}

type fakeSpecs struct {
	outcome      specrun.Outcome
	silentCalls  int
	verboseCalls int
}

func (f *fakeSpecs) RunSilent(ctx context.Context, id puzzle.ID) (specrun.Outcome, error) {
	f.silentCalls++
	return f.outcome, nil
}

func (f *fakeSpecs) RunVerbose(ctx context.Context, id puzzle.ID) error {
	f.verboseCalls++
	return nil
}

type fakeSolution struct {
	parts []int
	fail  bool
}

func (f *fakeSolution) Part(ctx context.Context, id puzzle.ID, part int) (string, error) {
	f.parts = append(f.parts, part)
	if f.fail {
		return "", fmt.Errorf("solution for %s part %d failed", id, part)
	}
	return fmt.Sprintf("answer-%d", part), nil
}

type fakeInput struct{ calls int }

func (f *fakeInput) FetchInput(ctx context.Context, id puzzle.ID) (string, error) {
	f.calls++
	return "input data", nil
}

func TestOrchestrate(t *testing.T) {
	id := puzzle.ID{Year: 2024, Day: 5}

	newOrch := func(specs *fakeSpecs, sol *fakeSolution, in *fakeInput) *Orchestrator {
		return &Orchestrator{Specs: specs, Solution: sol, Input: in, Out: &bytes.Buffer{}}
	}

	t.Run("spec only never touches real input", func(t *testing.T) {
		specs := &fakeSpecs{}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{SpecOnly: true}, answers.State{})
		require.NoError(t, err)
		assert.True(t, result.Empty())
		assert.Equal(t, 1, specs.verboseCalls)
		assert.Zero(t, specs.silentCalls)
		assert.Zero(t, in.calls)
		assert.Empty(t, sol.parts)
	})

	t.Run("failing specs gate all execution", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: false}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{}, answers.State{})
		require.NoError(t, err)
		assert.True(t, result.Empty())
		assert.Zero(t, in.calls)
		assert.Empty(t, sol.parts)
	})

	t.Run("forcing flags do not bypass the failed spec gate", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: false}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		for _, flags := range []Flags{{ForcePartOne: true}, {ForcePartTwo: true}} {
			result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, flags, answers.State{})
			require.NoError(t, err)
			assert.True(t, result.Empty())
		}
		assert.Empty(t, sol.parts)
		assert.Zero(t, in.calls)
	})

	t.Run("fresh puzzle runs part one only", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: true, Skipped: 1}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{}, answers.State{})
		require.NoError(t, err)
		assert.Equal(t, "answer-1", result.AnswerOne)
		assert.Empty(t, result.AnswerTwo)
		assert.Equal(t, []int{1}, sol.parts)
		assert.Equal(t, 1, in.calls)
	})

	t.Run("part one solved runs part two only", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: true, Skipped: 0}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{},
			answers.State{PartOne: "42"})
		require.NoError(t, err)
		assert.Empty(t, result.AnswerOne)
		assert.Equal(t, "answer-2", result.AnswerTwo)
		assert.Equal(t, []int{2}, sol.parts)
	})

	t.Run("too many skips runs nothing without touching input", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: true, Skipped: 2}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{}, answers.State{})
		require.NoError(t, err)
		assert.True(t, result.Empty())
		assert.Zero(t, in.calls)
	})

	t.Run("both solved re-derives both answers", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: true}}
		sol := &fakeSolution{}
		in := &fakeInput{}

		result, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{},
			answers.State{PartOne: "a", PartTwo: "b"})
		require.NoError(t, err)
		assert.Equal(t, "answer-1", result.AnswerOne)
		assert.Equal(t, "answer-2", result.AnswerTwo)
		assert.Equal(t, []int{1, 2}, sol.parts)
	})

	t.Run("solution failure is fatal", func(t *testing.T) {
		specs := &fakeSpecs{outcome: specrun.Outcome{Passed: true}}
		sol := &fakeSolution{fail: true}
		in := &fakeInput{}

		_, err := newOrch(specs, sol, in).Orchestrate(context.Background(), id, Flags{}, answers.State{})
		assert.Error(t, err)
	})

	t.Run("conflicting flags are rejected before specs run", func(t *testing.T) {
		specs := &fakeSpecs{}
		_, err := newOrch(specs, &fakeSolution{}, &fakeInput{}).Orchestrate(
			context.Background(), id, Flags{SpecOnly: true, ForcePartOne: true}, answers.State{})
		require.Error(t, err)
		assert.Zero(t, specs.silentCalls)
		assert.Zero(t, specs.verboseCalls)
	})
}
