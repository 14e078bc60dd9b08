// Package watch monitors a project's schema sources and triggers
// rebuilds when they change.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors .tgs files under a source directory and invokes the
// rebuild callback with the changed paths, debounced.
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	sourceDir string
	onChange  func([]string) error
	log       *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher over sourceDir
func New(sourceDir string, log *zap.Logger, onChange func([]string) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:   fsw,
		debouncer: NewDebouncer(100 * time.Millisecond),
		sourceDir: sourceDir,
		onChange:  onChange,
		log:       log,
		stopChan:  make(chan struct{}),
	}

	w.debouncer.SetCallback(func(files []string) {
		if err := w.onChange(files); err != nil {
			w.log.Error("rebuild failed", zap.Error(err))
		}
	})

	return w, nil
}

// Start begins watching the source tree
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.sourceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
			w.log.Info("watching directory", zap.String("dir", path))
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.debouncer.Stop()
	return w.watcher.Close()
}

// loop is the main event loop
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Newly created directories need their own watch
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watcher.Add(event.Name); err != nil {
					w.log.Warn("failed to watch new directory",
						zap.String("dir", event.Name), zap.Error(err))
				}
				continue
			}
			if strings.HasSuffix(event.Name, ".tgs") {
				w.log.Info("file changed", zap.String("file", event.Name))
				w.debouncer.Add(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", zap.Error(err))

		case <-w.stopChan:
			return
		}
	}
}
