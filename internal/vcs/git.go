package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"advent/internal/logging"
)

// Git implements VersionControl by shelling out to the git binary in the
// repository root. All queries degrade to empty results on failure.
type Git struct {
	// Repo is the repository root directory.
	Repo string
}

// NewGit returns a Git backend rooted at repo.
func NewGit(repo string) *Git {
	return &Git{Repo: repo}
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Repo
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logging.VCSWarn("git %s failed: %v (%s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// ListUntracked returns untracked paths under prefix in git's listing order.
func (g *Git) ListUntracked(prefix string) []string {
	args := []string{"ls-files", "--others", "--exclude-standard"}
	if prefix != "" {
		args = append(args, "--", prefix)
	}
	out, err := g.run(args...)
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	logging.VCSDebug("untracked under %q: %d files", prefix, len(paths))
	return paths
}

// MostRecentAdded returns the most recently committed solution file under
// prefix. Solution files are the main.go entries; sibling artifacts
// (inputs, cached instructions) added in the same commit are skipped.
func (g *Git) MostRecentAdded(prefix string) (string, bool) {
	args := []string{"log", "--diff-filter=A", "--name-only", "--pretty=format:"}
	if prefix != "" {
		args = append(args, "--", prefix)
	}
	out, err := g.run(args...)
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "/main.go") {
			logging.VCSDebug("most recent added under %q: %s", prefix, line)
			return line, true
		}
	}
	return "", false
}

// HasPendingChanges reports whether the working tree is dirty.
func (g *Git) HasPendingChanges() bool {
	out, err := g.run("status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}

// Commit stages paths and commits them. Unlike the queries, commit
// failures are surfaced to the caller.
func (g *Git) Commit(paths []string, message string) error {
	if _, err := g.run(append([]string{"add", "--"}, paths...)...); err != nil {
		return fmt.Errorf("failed to stage %v: %w", paths, err)
	}
	if _, err := g.run("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logging.VCS("committed %v: %s", paths, message)
	return nil
}
