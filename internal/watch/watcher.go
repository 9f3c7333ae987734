// Package watch reformats source files as they change on disk.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce is how long the watcher waits for a burst of events to settle.
	DefaultDebounce = 100 * time.Millisecond
	// DefaultQuietPeriod is how long events for a just-handled path are ignored,
	// so the formatter's own writes do not trigger another round.
	DefaultQuietPeriod = time.Second
)

// Watcher monitors a directory tree and reports batches of changed files
// that pass its Accept predicate.
type Watcher struct {
	root   string
	accept func(path string) bool
	logger *slog.Logger

	// Ready is closed once the tree is being watched.
	Ready chan struct{}

	Debounce    time.Duration
	QuietPeriod time.Duration

	newWatcher func() (*fsnotify.Watcher, error)
	now        func() time.Time

	mu      sync.Mutex
	pending map[string]struct{}
	handled map[string]time.Time
}

// NewWatcher creates a Watcher over root. accept decides whether a changed
// file should be handed to the callback.
func NewWatcher(root string, accept func(path string) bool, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:        root,
		accept:      accept,
		logger:      logger.With("component", "watcher"),
		Ready:       make(chan struct{}),
		Debounce:    DefaultDebounce,
		QuietPeriod: DefaultQuietPeriod,
		newWatcher:  fsnotify.NewWatcher,
		now:         time.Now,
		pending:     make(map[string]struct{}),
		handled:     make(map[string]time.Time),
	}
}

// Watch blocks until ctx is cancelled, calling callback with each debounced,
// sorted batch of changed paths. Calls to callback never overlap.
func (w *Watcher) Watch(ctx context.Context, callback func(ctx context.Context, paths []string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.logger.Info("watching for changes", "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	flush := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(watcher, event); path != "" {
				w.mu.Lock()
				w.pending[path] = struct{}{}
				w.mu.Unlock()

				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(w.Debounce, func() {
					select {
					case flush <- struct{}{}:
					default:
					}
				})
			}
		case <-flush:
			if batch := w.takePending(); len(batch) > 0 {
				callback(ctx, batch)
				w.markHandled(batch)
			}
		}
	}
}

// handleEvent processes a single fsnotify event. New directories are added to
// the watch. It returns the path of a relevant file change, or "".
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("failed to watch new directory", "path", event.Name, "error", err)
			}
		}
		return ""
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return ""
	}
	if w.recentlyHandled(path) || !w.accept(path) {
		return ""
	}
	return path
}

func (w *Watcher) recentlyHandled(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	at, ok := w.handled[path]
	return ok && w.now().Sub(at) < w.QuietPeriod
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	clear(w.pending)
	slices.Sort(batch)
	return batch
}

func (w *Watcher) markHandled(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	at := w.now()
	for _, p := range paths {
		w.handled[p] = at
	}
}

// addRecursive adds root and all its subdirectories to the watcher, skipping
// hidden directories below root.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
