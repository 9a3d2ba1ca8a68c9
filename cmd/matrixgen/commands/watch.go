package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// watchConfig re-runs regenerate whenever the configuration file changes,
// blocking until the context is cancelled. The parent directory is watched
// rather than the file: editors replace files on save, which would drop a
// watch held on the file itself.
func watchConfig(ctx context.Context, path string, regenerate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	log.Info().Str("config", path).Msg("Watching configuration for changes")

	// Debounce regeneration: one save can emit several events.
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopped watching configuration")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Msg("Configuration changed")
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				if err := regenerate(); err != nil {
					log.Error().Err(err).Msg("Failed to regenerate matrix")
					return
				}
				log.Info().Msg("Matrix regenerated")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watcher error")
		}
	}
}
