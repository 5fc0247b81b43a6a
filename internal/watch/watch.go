// Package watch re-runs a puzzle's spec suite whenever its files are
// saved, debouncing the rapid event bursts editors produce.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"advent/internal/logging"
	"advent/internal/puzzle"
	"advent/internal/specrun"
)

// SpecRunner is the slice of specrun the watcher needs.
type SpecRunner interface {
	RunSilent(ctx context.Context, id puzzle.ID) (specrun.Outcome, error)
}

// Watcher monitors one puzzle directory.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	repo    string
	id      puzzle.ID
	specs   SpecRunner

	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool

	// Out receives status lines. Defaults to stdout.
	Out io.Writer
}

// New creates a watcher for the puzzle's directory under repo.
func New(repo string, id puzzle.ID, specs SpecRunner) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &Watcher{
		watcher:  fsw,
		repo:     repo,
		id:       id,
		specs:    specs,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

func (w *Watcher) out() io.Writer {
	if w.Out != nil {
		return w.Out
	}
	return os.Stdout
}

// Start begins watching. Non-blocking; events are handled in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Join(w.repo, filepath.FromSlash(w.id.Dir()))
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true
	logging.Watch("watching %s", dir)
	fmt.Fprintf(w.out(), "Watching %s; press Ctrl+C to stop.\n", w.id.Dir())

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Saves are batched: each event resets the settle clock, and the
	// suite runs once no new event has arrived for the debounce window,
	// so the last save in a burst is always the one tested.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var pendingPath string
	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logging.WatchDebug("recorded %s", event.Name)
			pendingPath = event.Name
			lastEvent = time.Now()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Watch("watch error: %v", err)
		case <-ticker.C:
			if pendingPath == "" || time.Since(lastEvent) < w.debounce {
				continue
			}
			path := pendingPath
			pendingPath = ""
			w.rerun(ctx, path)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.HasSuffix(event.Name, ".go")
}

func (w *Watcher) rerun(ctx context.Context, path string) {
	fmt.Fprintf(w.out(), "\n%s changed, running specs...\n", filepath.Base(path))
	outcome, err := w.specs.RunSilent(ctx, w.id)
	if err != nil {
		fmt.Fprintf(w.out(), "spec run failed: %v\n", err)
		return
	}
	if outcome.Passed {
		fmt.Fprintf(w.out(), "Specs passing (%d skipped).\n", outcome.Skipped)
	}
}
