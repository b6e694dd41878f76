package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	appLog "calgrid/internal/log"
)

// watchConfigFile calls onChange whenever path is written or replaced,
// until ctx is done. The parent directory is watched so saves that rename
// a temp file over path keep being seen. Errors from onChange are logged,
// not fatal.
func watchConfigFile(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	appLog.Info("watching config file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !configReplaced(event) {
				continue
			}
			appLog.Debug("config file changed", "path", path, "op", event.Op.String())
			if err := onChange(); err != nil {
				appLog.Error("failed applying new config", err, "path", path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// configReplaced reports whether event leaves new content at its path. A
// rename away from the path only counts when something already took its
// place.
func configReplaced(event fsnotify.Event) bool {
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return true
	case event.Has(fsnotify.Rename):
		_, err := os.Stat(event.Name)
		return err == nil
	}
	return false
}
