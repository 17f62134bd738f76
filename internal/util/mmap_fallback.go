//go:build !unix

package util

import "os"

// MappedFile is a read-only view of a file's contents. Platforms without
// mmap support fall back to a buffered full-file read; the scanning layer
// is agnostic to which byte source backs Data.
type MappedFile struct {
	Data []byte
}

func OpenMapped(path string) (*MappedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &MappedFile{Data: data}, nil
}

func (m *MappedFile) Close() error {
	m.Data = nil
	return nil
}
