package handlers

//go:generate mockgen -source=attachment.go -destination=attachment_mock.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/storage"
)

// AttachmentOpener opens stored attachments by name.
type AttachmentOpener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewAttachmentHandler serves stored receipt files.
// @Summary Get attachment
// @Description Streams a stored receipt file. The Content-Type follows the file extension.
// @Tags attachments
// @Produce octet-stream
// @Param name path string true "Attachment name"
// @Success 200 {file} binary
// @Failure 404 "Not found"
// @Router /uploads/{name} [get]
func NewAttachmentHandler(store AttachmentOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := chi.URLParam(r, "name")

		rc, err := store.Open(ctx, name)
		if err != nil {
			if !errors.Is(err, storage.ErrNotExist) {
				logger.FromContext(ctx).Errorw("failed to open attachment", "name", name, "error", err)
			}
			http.NotFound(w, r)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)

		if _, err := io.Copy(w, rc); err != nil {
			logger.FromContext(ctx).Errorw("failed to stream attachment", "name", name, "error", err)
		}
	}
}
