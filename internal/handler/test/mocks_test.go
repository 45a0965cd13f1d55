package test

import (
	"context"
	"io"
	"log/slog"

	"gqlblog/internal/service"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) SaveBlogImage(ctx context.Context, originalName string, r io.Reader, size int64) (*service.UploadedFile, error) {
	args := m.Called(ctx, originalName, r, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadedFile), args.Error(1)
}

type stubChecker struct {
	err error
}

func (s stubChecker) Ping(context.Context) error {
	return s.err
}
