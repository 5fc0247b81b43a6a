// Package puzzle defines puzzle identity and the calendar rules that bound
// it. A puzzle is one day of one Advent of Code year; its solution lives at
// YYYY/DD/main.go in the solutions repository with its spec suite beside it.
package puzzle

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"time"

	"advent/internal/errs"
)

// FirstYear is the first Advent of Code event.
const FirstYear = 2015

// LastDay is the last puzzle day of each event.
const LastDay = 25

// ID identifies a single puzzle. Immutable once resolved.
type ID struct {
	Year int
	Day  int
}

// New validates year and day against the calendar and returns the ID.
// The date December Day, Year must not be after now.
func New(year, day int, now time.Time) (ID, error) {
	if year < FirstYear || year > now.Year() {
		return ID{}, errs.Inputf("year %d is out of range (%d-%d)", year, FirstYear, now.Year())
	}
	if day < 1 || day > LastDay {
		return ID{}, errs.Inputf("day %d is out of range (1-%d)", day, LastDay)
	}
	date := time.Date(year, time.December, day, 0, 0, 0, 0, now.Location())
	if date.After(now) {
		return ID{}, errs.Inputf("puzzle %d-%02d has not been released yet", year, day)
	}
	return ID{Year: year, Day: day}, nil
}

// ParseHints resolves optional user-supplied year/day hints. Two-digit
// years are expanded by prefixing "20". A day hint without a year hint is
// an input error.
func ParseHints(yearHint, dayHint string, now time.Time) (ID, error) {
	if yearHint == "" && dayHint != "" {
		return ID{}, errs.Inputf("a day argument requires a year argument")
	}
	year, err := parseYear(yearHint)
	if err != nil {
		return ID{}, err
	}
	day := 1
	if dayHint != "" {
		day, err = strconv.Atoi(dayHint)
		if err != nil {
			return ID{}, errs.Inputf("day %q is not a number", dayHint)
		}
	}
	return New(year, day, now)
}

func parseYear(hint string) (int, error) {
	if len(hint) == 2 {
		hint = "20" + hint
	}
	year, err := strconv.Atoi(hint)
	if err != nil {
		return 0, errs.Inputf("year %q is not a number", hint)
	}
	return year, nil
}

// ExpandYear normalizes a year hint without validating it against the
// calendar. Used by the interactive fallback, which re-validates later.
func ExpandYear(hint string) (int, error) {
	return parseYear(hint)
}

func (id ID) String() string {
	return fmt.Sprintf("%d day %d", id.Year, id.Day)
}

// Dir returns the puzzle's directory relative to the repository root.
func (id ID) Dir() string {
	return fmt.Sprintf("%d/%02d", id.Year, id.Day)
}

// SolutionPath returns the solution file path relative to the repository root.
func (id ID) SolutionPath() string {
	return path.Join(id.Dir(), "main.go")
}

// SpecPath returns the spec suite path relative to the repository root.
func (id ID) SpecPath() string {
	return path.Join(id.Dir(), "main_test.go")
}

// InputPath returns the cached real-input path relative to the repository root.
func (id ID) InputPath() string {
	return path.Join(id.Dir(), "input.txt")
}

// InstructionsPath returns the cached instructions path relative to the
// repository root.
func (id ID) InstructionsPath() string {
	return path.Join(id.Dir(), "instructions.html")
}

var solutionRx = regexp.MustCompile(`^(\d{4})/(\d{2})/main\.go$`)

// FromPath parses a repository-relative solution path back into an ID.
// Paths that are not solution files report ok=false.
func FromPath(p string) (ID, bool) {
	m := solutionRx.FindStringSubmatch(path.Clean(p))
	if m == nil {
		return ID{}, false
	}
	year, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if day < 1 || day > LastDay {
		return ID{}, false
	}
	return ID{Year: year, Day: day}, true
}

// NextAfter returns the puzzle following id within the same year. ok is
// false when id is day 25, the year-finished sentinel.
func NextAfter(id ID) (ID, bool) {
	if id.Day >= LastDay {
		return ID{}, false
	}
	return ID{Year: id.Year, Day: id.Day + 1}, true
}
