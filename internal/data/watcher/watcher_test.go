package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-history/internal/core/model"
)

func waitForEvent(t *testing.T, fw *FileWatcher, match func(model.FileEvent) bool) model.FileEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-fw.Events():
			if match(event) {
				return event
			}
		case <-deadline:
			t.Fatal("timed out waiting for file event")
			return model.FileEvent{}
		}
	}
}

func TestFileWatcherSessionFileEvents(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	sessionFile := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(sessionFile, []byte("{}\n"), 0644))

	event := waitForEvent(t, fw, func(e model.FileEvent) bool {
		return e.Path == sessionFile
	})
	assert.Equal(t, sessionFile, event.Path)
	assert.NotEmpty(t, event.Operation)
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher([]string{dir})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	sessionFile := filepath.Join(dir, "after.jsonl")
	require.NoError(t, os.WriteFile(sessionFile, []byte("{}\n"), 0644))

	// The first session event proves the txt write did not surface earlier.
	event := waitForEvent(t, fw, func(e model.FileEvent) bool {
		return filepath.Ext(e.Path) == ".jsonl"
	})
	assert.Equal(t, sessionFile, event.Path)
}

func TestFileWatcherPicksUpNewProjectDirs(t *testing.T) {
	root := t.TempDir()

	fw, err := NewFileWatcher([]string{root})
	require.NoError(t, err)
	defer fw.Close()

	projectDir := filepath.Join(root, "new-project")
	require.NoError(t, os.Mkdir(projectDir, 0755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	sessionFile := filepath.Join(projectDir, "s1.jsonl")
	require.NoError(t, os.WriteFile(sessionFile, []byte("{}\n"), 0644))

	event := waitForEvent(t, fw, func(e model.FileEvent) bool {
		return e.Path == sessionFile
	})
	assert.Equal(t, sessionFile, event.Path)
}

func TestFileWatcherMissingPath(t *testing.T) {
	fw, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "missing")})
	// Walk swallows the stat error, so construction succeeds with no watches.
	require.NoError(t, err)
	fw.Close()
}
