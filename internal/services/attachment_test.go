package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/finance-flow/internal/storage"
)

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		filename string
		wantExt  string
	}{
		{filename: "receipt.png", wantExt: ".png"},
		{filename: "Taxi.JPG", wantExt: ".jpg"},
		{filename: "../../etc/passwd.pdf", wantExt: ".pdf"},
		{filename: "noext", wantExt: ""},
		{filename: "weird.p n g", wantExt: ""},
		{filename: "", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, err := attachmentName(tt.filename)
			require.NoError(t, err)
			assert.Len(t, name, 36+len(tt.wantExt))
			assert.True(t, strings.HasSuffix(name, tt.wantExt))
			assert.NotContains(t, name, "/")
		})
	}
}

func TestAttachmentService_Resolve(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockAttachmentStore(ctrl)
	svc := NewAttachmentService(store)
	svc.newName = func(string) (string, error) { return "fixed.png", nil }

	content := strings.NewReader("image-bytes")
	store.EXPECT().Put(ctx, "fixed.png", content).Return(nil)

	ref, err := svc.Resolve(ctx, &Upload{Filename: "receipt.png", Content: content})
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "/uploads/fixed.png", *ref)
}

func TestAttachmentService_Resolve_NoUpload(t *testing.T) {
	svc := NewAttachmentService(NewMockAttachmentStore(gomock.NewController(t)))

	ref, err := svc.Resolve(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, ref)

	ref, err = svc.Resolve(context.Background(), &Upload{Filename: "x.png"})
	assert.NoError(t, err)
	assert.Nil(t, ref)
}

func TestAttachmentService_Resolve_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("store fails", func(t *testing.T) {
		store := NewMockAttachmentStore(gomock.NewController(t))
		store.EXPECT().Put(ctx, gomock.Any(), gomock.Any()).Return(errors.New("no space left on device"))

		ref, err := NewAttachmentService(store).Resolve(ctx, &Upload{Filename: "r.png", Content: strings.NewReader("x")})
		assert.Nil(t, ref)
		assert.ErrorIs(t, err, ErrAttachmentWrite)
	})

	t.Run("name generation fails", func(t *testing.T) {
		svc := NewAttachmentService(NewMockAttachmentStore(gomock.NewController(t)))
		svc.newName = func(string) (string, error) { return "", errors.New("entropy exhausted") }

		ref, err := svc.Resolve(ctx, &Upload{Filename: "r.png", Content: strings.NewReader("x")})
		assert.Nil(t, ref)
		assert.ErrorIs(t, err, ErrAttachmentWrite)
	})
}

func TestAttachmentService_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewMockAttachmentStore(gomock.NewController(t))
	svc := NewAttachmentService(store)

	store.EXPECT().Delete(ctx, "abc.png").Return(nil)
	assert.NoError(t, svc.Remove(ctx, "/uploads/abc.png"))

	assert.Error(t, svc.Remove(ctx, "https://example.com/abc.png"))
}

func TestAttachmentService_SameFilenameConcurrently(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := NewAttachmentService(store)

	const n = 2
	refs := make([]string, n)
	bodies := []string{"first receipt", "second receipt"}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ref, err := svc.Resolve(ctx, &Upload{Filename: "receipt.jpg", Content: bytes.NewBufferString(bodies[i])})
			if assert.NoError(t, err) && assert.NotNil(t, ref) {
				refs[i] = *ref
			}
		}(i)
	}
	wg.Wait()

	require.NotEqual(t, refs[0], refs[1])
	for i, ref := range refs {
		rc, err := store.Open(ctx, strings.TrimPrefix(ref, AttachmentURLPrefix))
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, bodies[i], string(data))
	}
}
