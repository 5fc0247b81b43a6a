// Package scaffold creates the files for a new puzzle directory and
// performs the one mutation the submission flow needs afterwards:
// activating the part-two spec once part one is confirmed correct.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"advent/internal/puzzle"
)

// PartTwoLockMarker is the skip line the generated spec carries until part
// one is solved. UnlockPartTwo removes lines containing it, converting the
// skipped case into an active one.
const PartTwoLockMarker = `t.Skip("part two locked")`

var solutionTmpl = template.Must(template.New("solution").Parse(`package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	part := flag.Int("part", 1, "puzzle part to run")
	flag.Parse()

	data, err := os.ReadFile("{{.Dir}}/input.txt")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	input := string(data)

	switch *part {
	case 1:
		fmt.Println(partOne(input))
	case 2:
		fmt.Println(partTwo(input))
	default:
		fmt.Fprintf(os.Stderr, "unknown part %d\n", *part)
		os.Exit(1)
	}
}

func partOne(input string) string {
	_ = input
	return ""
}

func partTwo(input string) string {
	_ = input
	return ""
}
`))

var specTmpl = template.Must(template.New("spec").Parse(`package main

import "testing"

const example = ` + "``" + `

func TestPartOne(t *testing.T) {
	t.Skip("example answer not filled in")
	if got, want := partOne(example), ""; got != want {
		t.Errorf("partOne() = %q, want %q", got, want)
	}
}

func TestPartTwo(t *testing.T) {
	{{.LockMarker}}
	if got, want := partTwo(example), ""; got != want {
		t.Errorf("partTwo() = %q, want %q", got, want)
	}
}
`))

// Create renders main.go and main_test.go for the puzzle. It refuses to
// overwrite an existing solution.
func Create(repo string, id puzzle.ID) error {
	dir := filepath.Join(repo, filepath.FromSlash(id.Dir()))
	solutionPath := filepath.Join(repo, filepath.FromSlash(id.SolutionPath()))

	if _, err := os.Stat(solutionPath); err == nil {
		return fmt.Errorf("solution already exists at %s", id.SolutionPath())
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create puzzle directory: %w", err)
	}

	if err := render(solutionPath, solutionTmpl, map[string]string{"Dir": id.Dir()}); err != nil {
		return err
	}
	return render(
		filepath.Join(repo, filepath.FromSlash(id.SpecPath())),
		specTmpl,
		map[string]string{"LockMarker": PartTwoLockMarker},
	)
}

func render(path string, tmpl *template.Template, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

// UnlockPartTwo rewrites the puzzle's spec suite, dropping every line
// containing the part-two lock marker so the skipped case becomes active.
func UnlockPartTwo(repo string, id puzzle.ID) error {
	path := filepath.Join(repo, filepath.FromSlash(id.SpecPath()))
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read spec suite: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		if strings.Contains(line, PartTwoLockMarker) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(kept, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to rewrite spec suite: %w", err)
	}
	return nil
}
