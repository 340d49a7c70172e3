package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupFakeGCS(t *testing.T) *GCSStore {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "fsouza/fake-gcs-server:1.52.2",
		Cmd:          []string{"-scheme", "http", "-port", "4443", "-backend", "memory"},
		ExposedPorts: []string{"4443/tcp"},
		WaitingFor:   wait.ForListeningPort("4443/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "4443")
	require.NoError(t, err)

	// The storage client talks to the emulator without credentials
	t.Setenv("STORAGE_EMULATOR_HOST", fmt.Sprintf("http://%s:%s", host, port.Port()))

	store, err := NewGCSStore(ctx, "receipts", "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.client.Bucket("receipts").Create(ctx, "finance-flow", nil))
	return store
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestGCSStore(t *testing.T) {
	store := setupFakeGCS(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "receipt.png", strings.NewReader("png-bytes")))

	// The second write hits the does-not-exist precondition
	err := store.Put(ctx, "receipt.png", strings.NewReader("other"))
	assert.ErrorIs(t, err, ErrExists)

	rc, err := store.Open(ctx, "receipt.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "receipt.png"))
	_, err = store.Open(ctx, "receipt.png")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.NoError(t, store.Delete(ctx, "receipt.png"))
}

func TestGCSStore_AbortedUploadLeavesNothing(t *testing.T) {
	store := setupFakeGCS(t)
	ctx := context.Background()

	err := store.Put(ctx, "partial.png", failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExists)

	_, err = store.Open(ctx, "partial.png")
	assert.ErrorIs(t, err, ErrNotExist)

	// The name stays free for a complete upload
	assert.NoError(t, store.Put(ctx, "partial.png", strings.NewReader("png-bytes")))
}

func TestGCSStore_InvalidNames(t *testing.T) {
	store := &GCSStore{bucket: "receipts"}
	ctx := context.Background()

	assert.Error(t, store.Put(ctx, "../escape.png", strings.NewReader("x")))
	_, err := store.Open(ctx, "../escape.png")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.NoError(t, store.Delete(ctx, "../escape.png"))
}

func TestNewGCSStore_MissingBucket(t *testing.T) {
	_, err := NewGCSStore(context.Background(), "", "")
	assert.Error(t, err)
}
