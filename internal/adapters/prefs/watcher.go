package prefs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/symres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watcher reloads a Store when another process rewrites its file, so a
// long-lived session sees the new persisted path on its next resolve.
type Watcher struct {
	store     *Store
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	started   bool
	done      chan struct{}
}

// NewWatcher creates a watcher for store.
func NewWatcher(store *Store, logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create preferences watcher")
	}
	return &Watcher{
		store:     store,
		logger:    logger,
		fsWatcher: fsw,
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directory holding the store. Set replaces the file by
// rename, which a watch on the file itself would not survive.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch preferences"), "path", dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch preferences"), "path", dir)
	}

	w.started = true
	go w.processEvents(ctx)
	return nil
}

// Stop releases the watcher and waits for event processing to end.
// It may be called whether or not Start succeeded.
func (w *Watcher) Stop() error {
	err := w.fsWatcher.Close()
	if w.started {
		<-w.done
	}
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || event.Op == fsnotify.Chmod {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.logger.Error(err)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(zerr.Wrap(err, "preferences watcher failed"))
		}
	}
}
