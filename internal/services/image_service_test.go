package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/storage"
)

func TestDetectImage(t *testing.T) {
	contentType, ext, err := DetectImage(tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, ".png", ext)

	_, _, err = DetectImage([]byte("just some text"))
	assert.ErrorIs(t, err, constants.ErrUnsupportedImage)

	_, _, err = DetectImage(nil)
	assert.ErrorIs(t, err, constants.ErrNoImageSelected)

	_, _, err = DetectImage(make([]byte, constants.MaxImageBytes+1))
	assert.ErrorIs(t, err, constants.ErrImageTooLarge)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`)
	contentType, ext, err = DetectImage(svg)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", contentType)
	assert.Equal(t, ".svg", ext)
}

func TestImageService_UploadReplaceOpenDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-IMG")

	tick := testNow
	env.images.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	contentType, err := env.images.Upload(ctx, alice, a.ID, tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	first, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ImageKey)
	assert.True(t, strings.HasPrefix(*first.ImageKey, a.ID+"-"))
	assert.True(t, strings.HasSuffix(*first.ImageKey, ".png"))

	_, err = env.images.Upload(ctx, alice, a.ID, tinyPNG)
	require.NoError(t, err)
	second, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, *first.ImageKey, *second.ImageKey)

	_, err = env.store.Open(ctx, *first.ImageKey)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	assert.Equal(t, float64(2*len(tinyPNG)), testutil.ToFloat64(env.metrics.ImageBytesUploaded))

	// anyone may view
	obj, err := env.images.Open(ctx, a.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	obj.Body.Close()
	assert.Equal(t, tinyPNG, body)
	assert.Equal(t, "image/png", obj.ContentType)

	assert.ErrorIs(t, env.images.Delete(ctx, bob, a.ID), constants.ErrNotOwner)
	require.NoError(t, env.images.Delete(ctx, alice, a.ID))
	_, err = env.images.Open(ctx, a.ID)
	assert.ErrorIs(t, err, constants.ErrImageNotFound)
	assert.ErrorIs(t, env.images.Delete(ctx, alice, a.ID), constants.ErrImageNotFound)
}

func TestImageService_UploadRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-REJ")

	_, err := env.images.Upload(ctx, alice, a.ID, []byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, constants.ErrUnsupportedImage)
	_, err = env.images.Upload(ctx, bob, a.ID, tinyPNG)
	assert.ErrorIs(t, err, constants.ErrNotOwner)
	_, err = env.images.Open(ctx, a.ID)
	assert.ErrorIs(t, err, constants.ErrImageNotFound)
}
