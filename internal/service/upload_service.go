package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"gqlblog/internal/storage"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
)

const (
	// PublicUploadPrefix is the URL prefix stored files are served under.
	PublicUploadPrefix = "/uploads/"
	blogImageField     = "blogImage"
	blogImageFolder    = "blogs"
	sniffLen           = 3072
)

type UploadedFile struct {
	Key         string
	FilePath    string
	ContentType string
	Size        int64
}

type UploadService interface {
	SaveBlogImage(ctx context.Context, originalName string, r io.Reader, size int64) (*UploadedFile, error)
}

type uploadService struct {
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

func NewUploadService(store storage.Storage, logger *slog.Logger) UploadService {
	return &uploadService{
		storage: store,
		logger:  logger,
		now:     time.Now,
	}
}

func (u *uploadService) SaveBlogImage(ctx context.Context, originalName string, r io.Reader, size int64) (*UploadedFile, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	mtype := mimetype.Detect(head)

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = mtype.Extension()
	}

	name := fmt.Sprintf("%s-%d-%s%s", blogImageField, u.now().UnixMilli(), ulid.Make().String(), ext)
	key := blogImageFolder + "/" + name

	body := io.MultiReader(bytes.NewReader(head), r)
	if err := u.storage.Save(ctx, key, body, size, mtype.String()); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}

	u.logger.Info("file uploaded",
		slog.String("key", key),
		slog.String("content_type", mtype.String()),
		slog.String("size", humanize.Bytes(uint64(size))),
	)

	return &UploadedFile{
		Key:         key,
		FilePath:    PublicUploadPrefix + key,
		ContentType: mtype.String(),
		Size:        size,
	}, nil
}
