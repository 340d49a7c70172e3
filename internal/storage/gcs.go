package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sbilibin2017/finance-flow/internal/logger"
)

// GCSStore keeps attachments as objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a storage client. Without a credentials file it relies
// on Application Default Credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required for the gcs backend")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Put uploads r under name with a does-not-exist precondition.
func (s *GCSStore) Put(ctx context.Context, name string, r io.Reader) error {
	if !validName(name) {
		return fmt.Errorf("invalid attachment name %q", name)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj := s.client.Bucket(s.bucket).Object(name).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)

	n, err := io.Copy(w, r)
	if err != nil {
		// Cancelling before Close aborts the upload.
		cancel()
		_ = w.Close()
	} else {
		err = w.Close()
	}

	logger.Log.Infow("attachment stored",
		"backend", BackendGCS,
		"bucket", s.bucket,
		"object", name,
		"size_bytes", n,
		"error", err,
	)

	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return fmt.Errorf("%w: %s", ErrExists, name)
		}
		return fmt.Errorf("upload gs://%s/%s: %w", s.bucket, name, err)
	}
	return nil
}

// Open returns a reader over the object.
func (s *GCSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrNotExist
	}
	rc, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read gs://%s/%s: %w", s.bucket, name, err)
	}
	return rc, nil
}

// Delete removes the object. Missing objects are not an error.
func (s *GCSStore) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete gs://%s/%s: %w", s.bucket, name, err)
	}
	return nil
}

// Close releases the storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
