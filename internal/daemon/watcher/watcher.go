// Package watcher reloads the configuration when its file changes.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/xstatus/config"
	"github.com/grovetools/xstatus/pkg/paths"
	"github.com/grovetools/xstatus/util/pathutil"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ConfigWatcher watches configuration files and calls onChange once writes settle.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *logrus.Entry
	onChange func(file string)

	mu      sync.Mutex
	pending string
}

// New watches path, or every default config candidate when path is empty.
// fsnotify does not follow symlinks, so the directory of a link target is watched too.
func New(path string, debounce time.Duration, logger *logrus.Entry, onChange func(string)) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		files[abs] = true
		if target, err := pathutil.Resolve(abs); err == nil {
			files[target] = true
		}
	} else {
		if err := os.MkdirAll(paths.ConfigDir(), 0755); err != nil {
			w.Close()
			return nil, err
		}
		for _, c := range paths.ConfigCandidates() {
			files[c] = true
		}
	}

	dirs := make(map[string]bool)
	for f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
		dirs[dir] = true
		logger.Debugf("Watching config directory: %s", dir)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &ConfigWatcher{
		watcher:  w,
		files:    files,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// Start processes events until ctx is cancelled.
func (w *ConfigWatcher) Start(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = event.Name
			w.mu.Unlock()
			timer.Reset(w.debounce)
		case <-timer.C:
			w.mu.Lock()
			file := w.pending
			w.mu.Unlock()
			w.logger.Infof("Config changed: %s", filepath.Base(file))
			if w.onChange != nil {
				w.onChange(file)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

// Reloads watches the configuration and delivers each valid reloaded config.
// Only the newest config is kept if the consumer falls behind; invalid files
// are logged and skipped.
func Reloads(ctx context.Context, path string, logger *logrus.Entry) (<-chan *config.Config, error) {
	ch := make(chan *config.Config, 1)

	w, err := New(path, DefaultDebounce, logger, func(string) {
		cfg, _, err := config.Resolve(path, logger)
		if err != nil {
			logger.WithError(err).Warn("Ignoring invalid configuration")
			return
		}
		select {
		case <-ch:
		default:
		}
		ch <- cfg
	})
	if err != nil {
		return nil, err
	}

	go w.Start(ctx)
	return ch, nil
}
