// Package watch re-triggers a render whenever the scene file changes on
// disk. Events are debounced so editors that write in several bursts only
// cause one rerun.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the settle delay after the last change event.
const DefaultDebounce = 300 * time.Millisecond

// Run watches path until ctx is canceled, invoking fn after each debounced
// change. The watch is set on the parent directory because editors replace
// files via rename, which silently drops a watch set on the file itself.
func Run(ctx context.Context, path string, debounce time.Duration, logger zerolog.Logger, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	base := filepath.Base(path)
	logger.Info().Str("path", path).Msg("watching for changes")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Msg("scene changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		case <-fire:
			fn()
		}
	}
}
