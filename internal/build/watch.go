package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/handbook/internal/foundation/errors"
	"git.home.luguber.info/inful/handbook/internal/logfields"
	"github.com/fsnotify/fsnotify"
)

// Watch builds once, then rebuilds after content changes settle for
// debounce. Every rebuild is a full build. Build failures are reported to
// onBuild and do not stop watching. Watch returns nil when ctx is done.
func (b *Builder) Watch(ctx context.Context, debounce time.Duration, onBuild func(*Result, error)) error {
	if onBuild == nil {
		onBuild = func(*Result, error) {}
	}
	root := b.cfg.Content.BasePath
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create watcher").Fatal().Build()
	}
	defer func() { _ = watcher.Close() }()
	if err := b.addDirsRecursive(watcher, root); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch content").
			WithContext("path", root).Fatal().Build()
	}

	onBuild(b.Run(ctx, Options{}))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoreEvent(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = b.addDirsRecursive(watcher, ev.Name)
				}
			}
			b.logger.Debug("Content change detected", logfields.Path(ev.Name), "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			b.logger.Info("Change detected; rebuilding")
			onBuild(b.Run(ctx, Options{}))
		}
	}
}

func (b *Builder) addDirsRecursive(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			b.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// ignoreEvent reports whether a change to path cannot affect the route table.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."), strings.HasPrefix(base, "#"):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	}
	return false
}
