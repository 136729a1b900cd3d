package fsbrowser

import (
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher observes the navigator's current root directory and reports when
// its contents change, so listings can be invalidated and reloaded. Events
// are debounced; Changes delivers at most one notification per burst.
type Watcher struct {
	fw     *fsnotify.Watcher
	logger *slog.Logger

	mu   sync.Mutex
	root string

	changes chan string
	done    chan struct{}
}

// NewWatcher starts a directory watcher. Close must be called to release it.
func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		logger:  logger,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// SetRoot switches the watched directory. The previous root is unwatched.
func (w *Watcher) SetRoot(root string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.root == root {
		return
	}
	if w.root != "" {
		_ = w.fw.Remove(w.root)
	}
	w.root = root
	if err := w.fw.Add(root); err != nil {
		w.logger.Warn("watcher: add root failed",
			slog.String("path", root),
			slog.String("error", err.Error()))
	}
}

// Changes returns the channel on which changed roots are delivered.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-timerCh:
			w.mu.Lock()
			root := w.root
			w.mu.Unlock()
			select {
			case w.changes <- root:
			default:
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
