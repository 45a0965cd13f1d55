// Package storage keeps uploaded files on local disk or in an S3-compatible
// bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

type Object struct {
	io.ReadSeekCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
}

// cleanKey normalizes a slash separated key and refuses anything that would
// step outside the storage root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}
