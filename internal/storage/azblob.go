package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/sbilibin2017/finance-flow/internal/logger"
)

// AzureBlobStore keeps attachments as block blobs in one container.
type AzureBlobStore struct {
	client    *azblob.Client
	container string
}

// NewAzureBlobStore uses a shared key when accountKey is set (Azurite, local
// development) and the default Azure credential chain otherwise.
func NewAzureBlobStore(serviceURL, container, accountName, accountKey string) (*AzureBlobStore, error) {
	if serviceURL == "" || container == "" {
		return nil, errors.New("AZBLOB_SERVICE_URL and AZBLOB_CONTAINER are required for the azblob backend")
	}

	var client *azblob.Client
	if accountKey != "" {
		cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
		if err != nil {
			return nil, fmt.Errorf("create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create blob client with shared key: %w", err)
		}
	} else {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("create blob client: %w", err)
		}
	}

	return &AzureBlobStore{client: client, container: container}, nil
}

// Put uploads r with an If-None-Match: * condition so nothing is overwritten.
func (s *AzureBlobStore) Put(ctx context.Context, name string, r io.Reader) error {
	if !validName(name) {
		return fmt.Errorf("invalid attachment name %q", name)
	}

	_, err := s.client.UploadStream(ctx, s.container, name, r, &azblob.UploadStreamOptions{
		AccessConditions: &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{
				IfNoneMatch: to.Ptr(azcore.ETagAny),
			},
		},
	})

	logger.Log.Infow("attachment stored",
		"backend", BackendAzblob,
		"container", s.container,
		"blob_name", name,
		"error", err,
	)

	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobAlreadyExists, bloberror.ConditionNotMet) {
			return fmt.Errorf("%w: %s", ErrExists, name)
		}
		return fmt.Errorf("upload blob %s/%s: %w", s.container, name, err)
	}
	return nil
}

// Open streams the blob body.
func (s *AzureBlobStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrNotExist
	}
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("download blob %s/%s: %w", s.container, name, err)
	}
	return resp.Body, nil
}

// Delete removes the blob. Missing blobs are not an error.
func (s *AzureBlobStore) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	_, err := s.client.DeleteBlob(ctx, s.container, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("delete blob %s/%s: %w", s.container, name, err)
	}
	return nil
}
