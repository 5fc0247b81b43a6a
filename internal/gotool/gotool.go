// Package gotool wraps the Go toolchain invocations this workflow needs:
// running a puzzle's spec suite via `go test` and executing its solution
// via `go run`. Output is captured or streamed per the caller's choice.
package gotool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"advent/internal/logging"
	"advent/internal/puzzle"
)

// Engine runs spec suites with `go test`. It implements the test engine
// contract consumed by specrun.
type Engine struct {
	// Repo is the solutions repository root.
	Repo string
}

// NewEngine returns an Engine rooted at repo.
func NewEngine(repo string) *Engine {
	return &Engine{Repo: repo}
}

// Run executes the spec suite for the given puzzle. When capture is set
// all output is collected and returned; otherwise it streams to the
// terminal. passed is false when the suite ran and failed; err is non-nil
// only when the suite could not be run at all.
func (e *Engine) Run(ctx context.Context, id puzzle.ID, capture bool) (passed bool, output string, err error) {
	pkg := "./" + id.Dir() + "/"
	cmd := exec.CommandContext(ctx, "go", "test", "-v", pkg)
	cmd.Dir = e.Repo

	var buf bytes.Buffer
	if capture {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	logging.SpecDebug("go test %s (capture=%v)", pkg, capture)
	runErr := cmd.Run()
	output = buf.String()

	if runErr == nil {
		return true, output, nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		// Non-zero exit is a failing suite, a normal outcome.
		return false, output, nil
	}
	return false, output, fmt.Errorf("failed to run spec suite for %s: %w", id, runErr)
}

// Runner executes solutions with `go run`. It implements the solution
// contract consumed by the orchestrator.
type Runner struct {
	// Repo is the solutions repository root.
	Repo string

	// Stderr receives the solution's diagnostic output. Defaults to
	// the process stderr.
	Stderr io.Writer
}

// NewRunner returns a Runner rooted at repo.
func NewRunner(repo string) *Runner {
	return &Runner{Repo: repo, Stderr: os.Stderr}
}

// Part runs the puzzle's solution binary for the given part (1 or 2) and
// returns the computed answer: the last non-empty line the solution
// prints. A non-zero exit is fatal for the run, not retried.
func (r *Runner) Part(ctx context.Context, id puzzle.ID, part int) (string, error) {
	cmd := exec.CommandContext(ctx, "go", "run", "./"+id.Dir(), "-part", fmt.Sprintf("%d", part))
	cmd.Dir = r.Repo

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logging.Run("go run ./%s -part %d", id.Dir(), part)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("solution for %s part %d failed: %w", id, part, err)
	}

	answer := lastLine(stdout.String())
	if answer == "" {
		return "", fmt.Errorf("solution for %s part %d produced no output", id, part)
	}
	return answer, nil
}

func lastLine(out string) string {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
