package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// Watch reloads the config at path whenever the file changes and passes
// each valid result to fn. Invalid files are logged and skipped. It
// blocks until ctx is done.
//
// The parent directory is watched rather than the file so saves that
// replace the file by rename are seen.
func Watch(ctx context.Context, path string, log *zap.Logger, fn func(*Config)) error {
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching config", zap.String("path", abs))

	// Stopped timer; armed by the first relevant event.
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))

		case <-debounce.C:
			cfg, err := LoadFile(abs)
			if err != nil {
				log.Warn("config reload rejected", zap.Error(err))
				continue
			}
			log.Info("config reloaded", zap.String("path", abs))
			fn(cfg)
		}
	}
}
