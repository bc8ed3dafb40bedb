// Package watcher runs an action whenever any of a set of files changes, coalescing bursts of filesystem events into one call.
//
// Parent directories are watched rather than the files themselves, so a file replaced by an editor's rename-on-save keeps being watched.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codalotl/linediff/internal/simplelogger"
)

// DefaultDebounce is the quiet period used when Options.Debounce is 0.
const DefaultDebounce = 100 * time.Millisecond

// Options tunes a Watcher.
type Options struct {
	// Debounce is the quiet period after a change before the action fires. Further changes during the window restart it. 0 means DefaultDebounce; a negative
	// value fires on every event.
	Debounce time.Duration
}

// Watcher watches files and runs an action after they change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	targets  map[string]bool // cleaned absolute paths
	debounce time.Duration

	events atomic.Int64
	fires  atomic.Int64
}

// Stats are point-in-time counters.
type Stats struct {
	Events int64 `json:"events"` // Relevant filesystem events seen.
	Fires  int64 `json:"fires"`  // Times the action ran.
}

// New starts watching paths. Each path's directory must exist; the file itself may not exist yet.
func New(paths []string, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watcher: no paths")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, targets: map[string]bool{}, debounce: opts.Debounce}
	if w.debounce == 0 {
		w.debounce = DefaultDebounce
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watcher: %w", err)
		}
		w.targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watcher: watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Close stops watching. Run returns once its event channel is closed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	return Stats{Events: w.events.Load(), Fires: w.fires.Load()}
}

// Run blocks until ctx is cancelled or w is closed, calling action after each debounced burst of changes to the watched files. Events for other files in
// the same directories are ignored. An error from action stops Run and is returned. Watch errors are logged and otherwise ignored.
func (w *Watcher) Run(ctx context.Context, action func() error) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	simplelogger.Log("watcher: started targets=%d debounce=%s", len(w.targets), w.debounce)

	for {
		select {
		case <-ctx.Done():
			simplelogger.Log("watcher: stopped")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.events.Add(1)
			if w.debounce < 0 {
				if err := w.fire(action); err != nil {
					return err
				}
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.fire(action); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			simplelogger.Log("watcher: %v", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.targets[abs]
}

func (w *Watcher) fire(action func() error) error {
	w.fires.Add(1)
	start := time.Now()
	err := action()
	simplelogger.Log("watcher: action took %s err=%v", time.Since(start), err)
	return err
}
