package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem stores blobs under a base directory, one file per key plus a
// sidecar recording the content type
type Filesystem struct {
	baseDir string
}

// NewFilesystem creates a filesystem-backed store rooted at baseDir
func NewFilesystem(baseDir string) (*Filesystem, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Filesystem{baseDir: baseDir}, nil
}

func (f *Filesystem) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create blob subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := os.WriteFile(path+".ct", []byte(contentType), 0o644); err != nil {
		return fmt.Errorf("failed to write blob metadata: %w", err)
	}
	return nil
}

func (f *Filesystem) Get(ctx context.Context, key string) ([]byte, string, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob: %w", err)
	}

	contentType := "application/octet-stream"
	if meta, err := os.ReadFile(path + ".ct"); err == nil {
		if ct := strings.TrimSpace(string(meta)); ct != "" {
			contentType = ct
		}
	}
	return data, contentType, nil
}

// path maps a key to a location under the base directory, rejecting keys
// that would escape it
func (f *Filesystem) path(key string) (string, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return filepath.Join(f.baseDir, filepath.FromSlash(key)), nil
}
