// Package confloader loads console-gate configuration.
package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration file for changes so the server can
// republish a fresh snapshot without restarting.
type Watcher struct {
	watcher   *fsnotify.Watcher
	file      string
	callbacks []func(string)
	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewWatcher creates a watcher for the given configuration file.
// The parent directory is watched rather than the file itself, so
// editor-style atomic renames are still observed.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher: fw,
		file:    filepath.Base(path),
		done:    make(chan struct{}),
		logger:  logger,
	}, nil
}

// OnChange registers a callback invoked with the changed path.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start blocks, dispatching change events until Stop is called.
func (w *Watcher) Start() {
	w.logger.Info("configuration watcher started", "file", w.file)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Info("configuration file changed", "file", event.Name)
			w.mu.Lock()
			callbacks := make([]func(string), len(w.callbacks))
			copy(callbacks, w.callbacks)
			w.mu.Unlock()
			for _, cb := range callbacks {
				cb(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("configuration watcher error", "error", err)
		}
	}
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}
