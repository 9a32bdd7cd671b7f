package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives the freshly loaded configuration.
type ReloadHandler func(Config)

// Watcher reloads the configuration file when it changes on disk.
type Watcher struct {
	path    string
	handler ReloadHandler
	watcher *fsnotify.Watcher

	closeOnce sync.Once
	closeCh   chan struct{}
	doneWg    sync.WaitGroup
}

// NewWatcher watches path and calls handler with each successfully
// reloaded configuration. Invalid intermediate states (partial writes,
// syntax errors) are logged and skipped.
func NewWatcher(path string, handler ReloadHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors commonly replace the file by rename,
	// which drops a watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		handler: handler,
		watcher: fsw,
		closeCh: make(chan struct{}),
	}
	w.doneWg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.doneWg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("config reload skipped", "path", w.path, "error", err)
				continue
			}
			w.handler(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.doneWg.Wait()
	})
	return err
}
