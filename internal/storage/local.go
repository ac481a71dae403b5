package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps documents under a single base directory.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Save(name string, content io.Reader) (string, int64, error) {
	// Names come from our own generators, but uploads pass through here too.
	clean := filepath.Base(strings.TrimSpace(name))
	if clean == "" || clean == "." || clean == string(filepath.Separator) {
		return "", 0, fmt.Errorf("invalid file name %q", name)
	}

	fullPath := filepath.Join(s.baseDir, clean)
	f, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, content)
	if err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("write file: %w", err)
	}

	return fullPath, size, nil
}

func (s *LocalStorage) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
