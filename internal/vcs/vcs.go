// Package vcs exposes the narrow read surface of the solutions repository's
// version control that puzzle resolution depends on, plus the one mutation
// (commit) the maintenance command needs.
package vcs

import (
	"advent/internal/puzzle"
)

// VersionControl is the capability interface over the repository backend.
// Queries are best-effort: an unavailable backend yields empty results so
// the locator can fall through to interactive prompting.
type VersionControl interface {
	// ListUntracked returns untracked file paths under prefix, in the
	// backend's listing order. prefix may be empty for the whole tree.
	ListUntracked(prefix string) []string

	// MostRecentAdded returns the most recently committed (added) file
	// path under prefix, if any.
	MostRecentAdded(prefix string) (string, bool)

	// HasPendingChanges reports whether the working tree has
	// uncommitted modifications.
	HasPendingChanges() bool

	// Commit stages paths and records a commit with the given message.
	Commit(paths []string, message string) error
}

// Snapshot is a point-in-time read of repository state, filtered to
// solution files. Derived fresh per invocation, never cached.
type Snapshot struct {
	// Untracked lists untracked solution puzzle IDs in listing order.
	Untracked []puzzle.ID

	// LastCommitted is the most recently committed solution, if any.
	LastCommitted puzzle.ID
	HasCommitted  bool

	// Dirty reports pending working-tree modifications.
	Dirty bool
}

// TakeSnapshot queries vc and keeps only paths that parse as solution
// files. yearPrefix narrows the scan to one year's directory; pass "" for
// the whole tree.
func TakeSnapshot(vc VersionControl, yearPrefix string) Snapshot {
	var snap Snapshot
	for _, p := range vc.ListUntracked(yearPrefix) {
		if id, ok := puzzle.FromPath(p); ok {
			snap.Untracked = append(snap.Untracked, id)
		}
	}
	if p, ok := vc.MostRecentAdded(yearPrefix); ok {
		if id, ok := puzzle.FromPath(p); ok {
			snap.LastCommitted = id
			snap.HasCommitted = true
		}
	}
	snap.Dirty = vc.HasPendingChanges()
	return snap
}
