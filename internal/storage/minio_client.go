package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"gqlblog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check MinIO bucket: %w", err)
	}
	if !exists {
		err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, bucket: cfg.BucketName}, nil
}

func (m *MinIOClient) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	objectName, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = m.client.PutObject(ctx, m.bucket, objectName, r, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return nil
}

func (m *MinIOClient) Open(ctx context.Context, key string) (*Object, error) {
	objectName, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get MinIO object: %w", err)
	}

	// GetObject is lazy; Stat is where a missing key surfaces.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat MinIO object: %w", err)
	}

	return &Object{
		ReadSeekCloser: obj,
		Size:           info.Size,
		ContentType:    info.ContentType,
		ModTime:        info.LastModified,
	}, nil
}

func (m *MinIOClient) Ping(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		return fmt.Errorf("MinIO unreachable: %w", err)
	}
	return nil
}
