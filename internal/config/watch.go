package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/correctme/correctme/internal/logging"
)

// watchDebounce collapses the burst of events an editor save produces
const watchDebounce = 100 * time.Millisecond

// Watch calls fn with the freshly loaded effective settings whenever the
// file at path changes. Load errors are passed to fn with nil settings.
// It blocks until ctx is done.
//
// The parent directory is watched rather than the file, so atomic saves
// (write temp file, rename over) are seen.
func Watch(ctx context.Context, path string, fn func(*Settings, error)) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logging.Warn("Failed to close config watcher: " + err.Error())
		}
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Debug("Watching config file " + path)

	target := filepath.Clean(path)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Config watcher error: " + err.Error())

		case <-timer.C:
			settings, err := LoadEffective(path)
			if err != nil {
				logging.Warn("Failed to reload config: " + err.Error())
			}
			fn(settings, err)
		}
	}
}
