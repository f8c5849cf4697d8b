// Package storage provides blob storage for uploaded images.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore persists uploaded blobs and returns the public URL they will be
// served from.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}

// FilesystemStore stores blobs as files under a base directory, served as
// static files by the HTTP layer.
type FilesystemStore struct {
	dir     string
	baseURL string
}

// NewFilesystemStore creates the base directory if needed.
func NewFilesystemStore(dir, baseURL string) (*FilesystemStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FilesystemStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *FilesystemStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	// Strip any path components so a crafted name cannot escape the dir.
	name = filepath.Base(name)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *FilesystemStore) Remove(_ context.Context, name string) error {
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
