package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fms/internal/config"
)

// fsStorage implements Storage on the local filesystem under a single upload
// root. It is the default backend: blob layout on disk mirrors the folder
// hierarchy's resolved ancestor paths.
type fsStorage struct {
	root string
}

// NewFS creates a filesystem-backed blob store rooted at cfg.Root. The root
// directory is created if missing.
func NewFS(cfg config.UploadConfig) (Storage, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("upload root is required")
	}
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &fsStorage{root: cfg.Root}, nil
}

// resolve maps a slash-separated key to an absolute path under the root,
// rejecting keys that would escape it.
func (s *fsStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes the blob, creating the key's directory chain first. Directory
// creation is recursive mkdir, safe if already present.
func (s *fsStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	path, err := s.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create blob file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return ObjectInfo{}, fmt.Errorf("write blob: %w", err)
	}

	return ObjectInfo{
		Key:          key,
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Delete removes a single blob. Missing files are skipped.
func (s *fsStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteTree removes a directory subtree under the root. A missing directory
// is not an error.
func (s *fsStorage) DeleteTree(ctx context.Context, prefix string) error {
	path, err := s.resolve(prefix)
	if err != nil {
		return err
	}
	return os.RemoveAll(path)
}
