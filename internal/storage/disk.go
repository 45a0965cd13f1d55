package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStorage{root: root}, nil
}

func (d *DiskStorage) path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.root, filepath.FromSlash(cleaned)), nil
}

func (d *DiskStorage) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst, err := d.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

func (d *DiskStorage) Open(_ context.Context, key string) (*Object, error) {
	src, err := d.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrObjectNotFound
	}

	return &Object{
		ReadSeekCloser: f,
		Size:           info.Size(),
		ModTime:        info.ModTime(),
	}, nil
}

// Ping reports whether the upload root is still a usable directory.
func (d *DiskStorage) Ping(_ context.Context) error {
	info, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("upload directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("upload path %s is not a directory", d.root)
	}
	return nil
}
