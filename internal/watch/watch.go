// Package watch reloads the catalogue when its local source file changes.
//
// The watcher observes the directory holding the file rather than the file
// itself, because editors and deploy tools commonly replace a file by
// renaming a new one over it, which drops a watch placed on the old inode.
// Bursts of events are collapsed into one change notification once writes
// have been quiet for the debounce delay. Notifications coalesce: a reader
// that falls behind sees one pending change, not a queue of them.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 500 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path is the file to watch.
	Path string

	// Debounce is the quiet period before a change is reported. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	Logger *zap.Logger
}

// Watcher reports settled changes to one file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
	changes  chan struct{}

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error
}

// New creates a watcher for cfg.Path. It does not start watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: empty path")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes returns the notification channel. It is closed when the watcher
// stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The watcher stops when ctx is cancelled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.wg.Add(1)
	go w.run(ctx)

	w.logger.Info("watching catalogue source",
		zap.String("path", w.path),
		zap.Duration("debounce", w.debounce),
	)
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
// It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		w.stopErr = w.fsw.Close()
	})
	w.wg.Wait()
	return w.stopErr
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = w.fsw.Close()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("catalogue source event",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()),
			)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalogue watcher error", zap.Error(err))

		case <-timer.C:
			w.notify()
		}
	}
}

// relevant reports whether event touches the watched file in a way that
// can change its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
