// Package locate resolves which puzzle the user is working on. Resolution
// cascades from explicit hints through repository state down to an
// interactive fallback, so the common case needs no arguments at all.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"advent/internal/errs"
	"advent/internal/logging"
	"advent/internal/puzzle"
	"advent/internal/vcs"
)

// Prompter is the interactive fallback's effect boundary. The pure
// default computation lives in DefaultNext so it can be tested by
// injecting a declined confirmation.
type Prompter interface {
	// Confirm asks a yes/no question with the given default.
	Confirm(prompt string, def bool) bool
	// ReadLine reads one line of input; "" signals end of input.
	ReadLine(prompt string) string
}

// Locator resolves a concrete puzzle from hints, repository state and the
// calendar.
type Locator struct {
	Repo     string
	VC       vcs.VersionControl
	Prompter Prompter

	// Now is injectable for calendar tests; defaults to time.Now.
	Now func() time.Time
}

func (l *Locator) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Resolve returns the target puzzle. resume prefers untracked work in
// progress (or re-running the most recently committed puzzle) over
// advancing to the next one.
func (l *Locator) Resolve(yearHint, dayHint string, resume bool) (puzzle.ID, error) {
	now := l.now()

	if yearHint != "" && dayHint != "" {
		return puzzle.ParseHints(yearHint, dayHint, now)
	}
	if dayHint != "" {
		return puzzle.ID{}, errs.Inputf("a day argument requires a year argument")
	}

	prefix := ""
	year := 0
	if yearHint != "" {
		var err error
		year, err = puzzle.ExpandYear(yearHint)
		if err != nil {
			return puzzle.ID{}, err
		}
		prefix = strconv.Itoa(year) + "/"
	}

	snap := vcs.TakeSnapshot(l.VC, prefix)

	// Resume what is actively being worked on.
	if resume && len(snap.Untracked) > 0 {
		id := snap.Untracked[0]
		logging.Locate("resuming untracked solution %s", id)
		return puzzle.New(id.Year, id.Day, now)
	}

	// A year hint with no directory yet means starting that year fresh.
	if year != 0 && !l.yearDirExists(year) {
		logging.Locate("starting new year %d", year)
		return puzzle.New(year, 1, now)
	}

	if snap.HasCommitted {
		if resume {
			logging.Locate("re-running last committed %s", snap.LastCommitted)
			return puzzle.New(snap.LastCommitted.Year, snap.LastCommitted.Day, now)
		}
		if next, ok := puzzle.NextAfter(snap.LastCommitted); ok {
			logging.Locate("advancing to %s", next)
			return puzzle.New(next.Year, next.Day, now)
		}
		// Day 25 committed: the year is finished, fall through.
		logging.Locate("year %d finished, falling back to interactive", snap.LastCommitted.Year)
	}

	return l.interactive(now)
}

// interactive offers the computed default next puzzle, or asks for an
// explicit year when the default is declined or unavailable.
func (l *Locator) interactive(now time.Time) (puzzle.ID, error) {
	def, ok := DefaultNext(l.committedSet(now), now)
	if ok {
		prompt := fmt.Sprintf("Work on %d day %d?", def.Year, def.Day)
		if l.Prompter.Confirm(prompt, true) {
			return puzzle.New(def.Year, def.Day, now)
		}
	}

	for {
		line := l.Prompter.ReadLine(fmt.Sprintf("Enter a year (%d-%d): ", puzzle.FirstYear, now.Year()))
		if line == "" {
			return puzzle.ID{}, errs.Inputf("no year given")
		}
		year, err := puzzle.ExpandYear(line)
		if err != nil {
			continue
		}
		id, err := puzzle.New(year, 1, now)
		if err == nil {
			return id, nil
		}
		if _, handled := errs.Handled(err); !handled {
			return puzzle.ID{}, err
		}
	}
}

// DefaultNext scans every year from the first event through the current
// one (the current year only once its event has started in December) and
// suggests the earliest uncommitted day of the earliest incomplete year.
func DefaultNext(committed map[puzzle.ID]bool, now time.Time) (puzzle.ID, bool) {
	maxYear := now.Year()
	if now.Month() != time.December {
		maxYear--
	}
	for year := puzzle.FirstYear; year <= maxYear; year++ {
		lastDay := puzzle.LastDay
		if year == now.Year() && now.Day() < lastDay {
			lastDay = now.Day()
		}
		for day := 1; day <= lastDay; day++ {
			if !committed[puzzle.ID{Year: year, Day: day}] {
				return puzzle.ID{Year: year, Day: day}, true
			}
		}
	}
	return puzzle.ID{}, false
}

// committedSet treats a solution as committed when its file exists and is
// not untracked. Re-read fresh on every call; repository state may change
// under us between invocations.
func (l *Locator) committedSet(now time.Time) map[puzzle.ID]bool {
	untracked := make(map[puzzle.ID]bool)
	for _, p := range l.VC.ListUntracked("") {
		if id, ok := puzzle.FromPath(p); ok {
			untracked[id] = true
		}
	}

	committed := make(map[puzzle.ID]bool)
	for year := puzzle.FirstYear; year <= now.Year(); year++ {
		for day := 1; day <= puzzle.LastDay; day++ {
			id := puzzle.ID{Year: year, Day: day}
			if untracked[id] {
				continue
			}
			if _, err := os.Stat(filepath.Join(l.Repo, filepath.FromSlash(id.SolutionPath()))); err == nil {
				committed[id] = true
			}
		}
	}
	return committed
}

func (l *Locator) yearDirExists(year int) bool {
	info, err := os.Stat(filepath.Join(l.Repo, strconv.Itoa(year)))
	return err == nil && info.IsDir()
}
