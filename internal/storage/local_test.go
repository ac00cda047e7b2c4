package storage

import (
	"context"
	"encoding/base64"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var tinyPNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

func TestLocalImageStore_PutOpenDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalImageStore(fs, "uploads")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "ac-1-100.png", "image/png", tinyPNG))

	obj, err := store.Open(ctx, "ac-1-100.png")
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, tinyPNG, body)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(tinyPNG)), obj.Size)

	require.NoError(t, store.Delete(ctx, "ac-1-100.png"))
	_, err = store.Open(ctx, "ac-1-100.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "ac-1-100.png"), ErrObjectNotFound)
}

func TestLocalImageStore_KeysStayInsideDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalImageStore(fs, "uploads")
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "../../escape.png", "image/png", tinyPNG))
	exists, err := afero.Exists(fs, "uploads/escape.png")
	require.NoError(t, err)
	assert.True(t, exists)
}
