// Package storage provides the content stores that hold uploaded attachments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotExist is returned when an attachment name does not resolve to stored bytes.
	ErrNotExist = errors.New("attachment does not exist")
	// ErrExists is returned when a write would overwrite a stored attachment.
	ErrExists = errors.New("attachment already exists")
)

// Store persists and serves attachment bytes by name.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// Backend names accepted by New.
const (
	BackendLocal  = "local"
	BackendGCS    = "gcs"
	BackendAzblob = "azblob"
)

// Config selects and configures a Store backend.
type Config struct {
	Backend string

	// local
	Dir string

	// gcs
	GCSBucket          string
	GCSCredentialsFile string

	// azblob
	AzblobServiceURL  string
	AzblobContainer   string
	AzblobAccountName string
	AzblobAccountKey  string
}

// New builds the Store named by cfg.Backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalStore(cfg.Dir)
	case BackendGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case BackendAzblob:
		return NewAzureBlobStore(cfg.AzblobServiceURL, cfg.AzblobContainer, cfg.AzblobAccountName, cfg.AzblobAccountKey)
	default:
		return nil, fmt.Errorf("unknown attachment backend %q", cfg.Backend)
	}
}

// validName rejects names that could escape the store namespace.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}
