package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/logger"
)

// Watcher reloads a config file whenever it changes on disk. Only the latest
// reload is kept; a consumer that polls once per frame never sees a backlog.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	changes chan *Config
	done    chan struct{}
	once    sync.Once
	err     error
}

// Watch starts watching path until ctx is cancelled or Close is called. The
// parent directory is watched rather than the file so editors that replace
// the file on save keep being followed.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fw,
		changes: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.run(ctx)

	logger.Debug("watching config", zap.String("path", abs))
	return w, nil
}

// Changes delivers each successfully reloaded config.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.err = w.fs.Close()
	})
	return w.err
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	// A truncate shows up as its own write; an empty file would silently
	// reset every setting to its default.
	if info, err := os.Stat(w.path); err != nil || info.Size() == 0 {
		return
	}

	cfg, err := LoadFile(w.path)
	if err != nil {
		// Editors often truncate before writing; the next event carries the
		// complete file.
		logger.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	if err := cfg.Simulation.Validate(); err != nil {
		logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}

	select {
	case <-w.changes:
	default:
	}
	w.changes <- cfg
	logger.Info("config reloaded", zap.String("path", w.path))
}
