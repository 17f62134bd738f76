package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "restored.go")
	content := "package main\n\nfunc main() {}\n"

	err := RestoreFile(target, content)

	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, string(written))
}

func TestRestoreFileOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(target, []byte("old content"), 0644))

	err := RestoreFile(target, "new content")

	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(written))
}

func TestRestoreFileCreatesParentDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "deep", "nested", "file.txt")

	err := RestoreFile(target, "content")

	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "content", string(written))
}

func TestRestoreFileRejectsUnsafePaths(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{
			name:    "relative path",
			path:    "relative/path.txt",
			wantMsg: "absolute",
		},
		{
			name:    "null byte",
			path:    "/tmp/evil\x00.txt",
			wantMsg: "null bytes",
		},
		{
			name:    "parent traversal",
			path:    "/tmp/../etc/passwd",
			wantMsg: "traversal",
		},
		{
			name:    "traversal in the middle",
			path:    "/var/data/../../etc/shadow",
			wantMsg: "traversal",
		},
		{
			name:    "empty path",
			path:    "",
			wantMsg: "absolute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RestoreFile(tt.path, "content")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRestoreFileValidatesBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "safe.txt")
	require.NoError(t, os.WriteFile(target, []byte("untouched"), 0644))

	// A traversal path pointing at the same file must not modify it
	traversal := filepath.Join(dir, "sub", "..", "safe.txt")
	err := RestoreFile(traversal, "mutated")
	require.Error(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(content))
}

func TestRestoreFileEmptyContent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "empty.txt")

	err := RestoreFile(target, "")

	require.NoError(t, err)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}
