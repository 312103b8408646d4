package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// debounceInterval coalesces bursts of filesystem events into a single
// notification.
const debounceInterval = 500 * time.Millisecond

// Watch observes the directory tree under root, hidden directories
// excluded, and invokes fn after changes settle. It blocks until ctx is
// cancelled.
func Watch(ctx context.Context, root string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addTree(watcher, root); err != nil {
		return err
	}

	var timer *time.Timer
	fired := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories join the watch so nested changes fire too.
			if event.Has(fsnotify.Create) {
				if err := addTree(watcher, event.Name); err != nil {
					logger.Debug("Watch add %s: %v", event.Name, err)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-fired:
			fn()
		}
	}
}

// addTree registers path and every non-hidden directory below it.
// Non-directories are ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && matchesAny(d.Name(), []string{hiddenGlob}) {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}
