package services

//go:generate mockgen -source=attachment.go -destination=attachment_mock.go -package=services

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/finance-flow/internal/logger"
)

// AttachmentURLPrefix is the path under which stored attachments are served.
const AttachmentURLPrefix = "/uploads/"

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,16}$`)

// AttachmentStore persists attachment bytes by name.
type AttachmentStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// Upload is a file received with a create request.
type Upload struct {
	Filename string    // Original client file name, used only for its extension
	Content  io.Reader // File bytes
}

// AttachmentService stores uploads and hands out servable references.
type AttachmentService struct {
	store   AttachmentStore
	newName func(filename string) (string, error)
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(store AttachmentStore) *AttachmentService {
	return &AttachmentService{store: store, newName: attachmentName}
}

// attachmentName returns a time-ordered UUIDv7 plus the original extension.
// Unusual extensions are dropped rather than stored verbatim.
func attachmentName(filename string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return id.String() + ext, nil
}

// Resolve stores up and returns its reference, or nil when there is no upload.
func (s *AttachmentService) Resolve(ctx context.Context, up *Upload) (*string, error) {
	if up == nil || up.Content == nil {
		return nil, nil
	}

	name, err := s.newName(up.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAttachmentWrite, err)
	}

	if err := s.store.Put(ctx, name, up.Content); err != nil {
		logger.FromContext(ctx).Errorw("failed to store attachment", "filename", up.Filename, "name", name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAttachmentWrite, err)
	}

	ref := AttachmentURLPrefix + name
	return &ref, nil
}

// Remove deletes the attachment behind a reference returned by Resolve.
func (s *AttachmentService) Remove(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, AttachmentURLPrefix) {
		return fmt.Errorf("not an attachment reference: %q", ref)
	}
	return s.store.Delete(ctx, path.Base(ref))
}
