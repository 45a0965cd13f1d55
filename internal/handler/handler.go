package handlers

import (
	"log/slog"

	"gqlblog/internal/service"
	"gqlblog/internal/storage"
)

type Handlers struct {
	UploadService service.UploadService
	Storage       storage.Storage
	Logger        *slog.Logger
	MaxUploadSize int64
}

func NewHandlers(svc *service.Service, store storage.Storage, logger *slog.Logger, maxUploadSize int64) *Handlers {
	return &Handlers{
		UploadService: svc.Upload,
		Storage:       store,
		Logger:        logger,
		MaxUploadSize: maxUploadSize,
	}
}
