package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advent/internal/config"
	"advent/internal/errs"
	"advent/internal/puzzle"
)

type fakeInputFetcher struct{ calls int }

func (f *fakeInputFetcher) FetchInput(ctx context.Context, id puzzle.ID) (string, error) {
	f.calls++
	return "input data", nil
}

func cacheInput(t *testing.T, dir string, id puzzle.ID) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(id.InputPath()))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0644))
}

func TestInputGate(t *testing.T) {
	id := puzzle.ID{Year: 2024, Day: 5}

	t.Run("cached input needs no session", func(t *testing.T) {
		root := t.TempDir()
		cacheInput(t, root, id)
		next := &fakeInputFetcher{}
		gate := &inputGate{cfg: &config.Config{}, repo: root, next: next}

		input, err := gate.FetchInput(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "input data", input)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("uncached input without a session is a config error", func(t *testing.T) {
		next := &fakeInputFetcher{}
		gate := &inputGate{cfg: &config.Config{}, repo: t.TempDir(), next: next}

		_, err := gate.FetchInput(context.Background(), id)
		require.Error(t, err)
		_, handled := errs.Handled(err)
		assert.True(t, handled)
		assert.Zero(t, next.calls, "no fetch without a token")
	})

	t.Run("uncached input with a session delegates", func(t *testing.T) {
		next := &fakeInputFetcher{}
		gate := &inputGate{cfg: &config.Config{Session: "token"}, repo: t.TempDir(), next: next}

		_, err := gate.FetchInput(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, next.calls)
	})
}

func TestRequireSessionIfUncached(t *testing.T) {
	id := puzzle.ID{Year: 2024, Day: 5}

	t.Run("session configured passes", func(t *testing.T) {
		cfg := &config.Config{Session: "token"}
		assert.NoError(t, requireSessionIfUncached(cfg, t.TempDir(), id))
	})

	t.Run("cached instructions pass without a session", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, filepath.FromSlash(id.InstructionsPath()))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("<article/>"), 0644))

		assert.NoError(t, requireSessionIfUncached(&config.Config{}, root, id))
	})

	t.Run("uncached instructions without a session fail early", func(t *testing.T) {
		err := requireSessionIfUncached(&config.Config{}, t.TempDir(), id)
		require.Error(t, err)
		_, handled := errs.Handled(err)
		assert.True(t, handled)
	})

	t.Run("missing input alone does not fail the early check", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, filepath.FromSlash(id.InstructionsPath()))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("<article/>"), 0644))

		// Input uncached: the run may select no parts, so the session
		// question is deferred to inputGate.
		assert.NoError(t, requireSessionIfUncached(&config.Config{}, root, id))
	})
}
