package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage defines contract for uploaded-file storage (local-disk implementation).
type FileStorage interface {
	// Save writes data under the given stored name and returns the resolved path.
	Save(name string, data []byte) (string, error)
	// Open reads the full content of a stored file.
	Open(name string) ([]byte, error)
	// Path returns the resolved path of a stored name without touching the disk.
	Path(name string) string
	// Exists reports whether the stored file is present on disk.
	Exists(name string) bool
	// Delete removes the stored file. Deleting a missing file is not an error.
	Delete(name string) error
}

type localStorage struct {
	dir string
}

// NewLocalStorage creates a disk-backed FileStorage rooted at dir,
// creating the directory if needed. The directory is injected rather than
// hardcoded so tests can point it at a scratch location.
func NewLocalStorage(dir string) (FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Save(name string, data []byte) (string, error) {
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", name, err)
	}
	return path, nil
}

func (s *localStorage) Open(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return data, nil
}

func (s *localStorage) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *localStorage) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func (s *localStorage) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", name, err)
	}
	return nil
}
