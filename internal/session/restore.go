package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-claude-history/internal/util"
)

// RestoreFile writes reconstructed content back to a file on disk. The path
// must be absolute, free of null bytes and free of parent-traversal
// components; validation failures surface before any filesystem mutation.
// The write goes through a temp file and an atomic rename so the target is
// never left partially written.
func RestoreFile(filePath, content string) error {
	if strings.ContainsRune(filePath, 0) {
		return fmt.Errorf("invalid file path: contains null bytes")
	}
	if !filepath.IsAbs(filePath) {
		return fmt.Errorf("invalid file path: must be an absolute path")
	}
	for _, component := range strings.Split(filepath.ToSlash(filePath), "/") {
		if component == ".." {
			return fmt.Errorf("invalid file path: path traversal not allowed")
		}
	}

	if err := util.AtomicWriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("restore %s: %w", filePath, err)
	}
	return nil
}
