package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalDir archives documents as files in one directory.
type LocalDir struct {
	dir string
}

func NewLocalDir(dir string) (*LocalDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalDir{dir: dir}, nil
}

func (l *LocalDir) Archive(_ context.Context, filename, _ string, data []byte) (string, error) {
	path := filepath.Join(l.dir, objectName(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Download reads back a document archived by this LocalDir.
func (l *LocalDir) Download(_ context.Context, key string) ([]byte, error) {
	path := filepath.Join(l.dir, filepath.Base(key))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
