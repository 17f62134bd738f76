//go:build unix

package util

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MappedFile is a read-only view of a file's contents. On Unix the view is
// memory-mapped; Data must not be used after Close.
type MappedFile struct {
	Data []byte
	file *os.File
}

// OpenMapped maps the file at path read-only. Empty files yield a nil Data
// slice, which every consumer treats as zero lines.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		return &MappedFile{file: f}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &MappedFile{Data: data, file: f}, nil
}

func (m *MappedFile) Close() error {
	var err error
	if m.Data != nil {
		err = unix.Munmap(m.Data)
		m.Data = nil
	}
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
