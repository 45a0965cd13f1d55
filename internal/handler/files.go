package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gqlblog/internal/service"
	"gqlblog/internal/storage"
)

// ServeUpload streams a stored file. Range and conditional requests are
// handled by http.ServeContent.
//
// GET /uploads/*
func (h *Handlers) ServeUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, service.PublicUploadPrefix)

	obj, err := h.Storage.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			WriteError(w, "file not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to open upload",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		WriteError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	defer obj.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	http.ServeContent(w, r, key, obj.ModTime, obj)
}
