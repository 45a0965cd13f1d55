package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
)

const blogImageField = "blogImage"

type UploadResponse struct {
	FilePath string `json:"filePath"`
}

// UploadBlogImage accepts a single multipart file under the blogImage field.
//
// POST /api/upload/blog-image
func (h *Handlers) UploadBlogImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, "file exceeds "+humanize.IBytes(uint64(h.MaxUploadSize)), http.StatusBadRequest)
			return
		}
		WriteError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(blogImageField)
	if err != nil {
		WriteError(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uploaded, err := h.UploadService.SaveBlogImage(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		h.Logger.Error("blog image upload failed",
			slog.String("file", header.Filename),
			slog.String("error", err.Error()),
		)
		WriteError(w, "failed to store file", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{FilePath: uploaded.FilePath})
}
