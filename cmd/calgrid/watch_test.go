package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveByRename replaces path the way many editors do: write a sibling temp
// file, then rename it over the original.
func saveByRename(t *testing.T, path, body string) {
	t.Helper()
	tmp := path + ".swp"
	require.NoError(t, os.WriteFile(tmp, []byte(body), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchConfigFileSurvivesRenameSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 64)
	done := make(chan error, 1)
	go func() {
		done <- watchConfigFile(ctx, path, func() error {
			changes <- struct{}{}
			return nil
		})
	}()

	// The watcher registers asynchronously; keep saving until it reports.
	waitForChange := func(body string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		saveByRename(t, path, body)
		for {
			select {
			case <-changes:
				return
			case <-tick.C:
				saveByRename(t, path, body)
			case <-deadline:
				t.Fatalf("no change reported for %s", path)
			}
		}
	}

	waitForChange("locale: fr\n")
	for len(changes) > 0 {
		<-changes
	}
	waitForChange("locale: de\n")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestConfigReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calgrid.yaml")

	assert.True(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.True(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	assert.False(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Rename}), "renamed away")

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.True(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Rename}))
	assert.False(t, configReplaced(fsnotify.Event{Name: path, Op: fsnotify.Remove}))
}
