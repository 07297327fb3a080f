package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encoded(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{200, 10, 10, 255})
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func newTestLoader(t *testing.T) *Loader {
	pngData := encoded(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })
	bmpData := encoded(t, func(b *bytes.Buffer, i image.Image) error { return bmp.Encode(b, i) })
	return NewLoaderFS(fstest.MapFS{
		"town.png":    {Data: pngData},
		"frame.bmp":   {Data: bmpData},
		"broken.png":  {Data: []byte("not a picture")},
		"pin/pin.png": {Data: pngData},
	}, zerolog.Nop())
}

func wait(t *testing.T, p *Picture) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.Wait(ctx)
}

func TestLoadResolvesExtensions(t *testing.T) {
	l := newTestLoader(t)

	for _, name := range []string{"town", "frame", "pin/pin.png"} {
		p := l.Load(name)
		require.NoError(t, wait(t, p), name)
		img, ok := p.Image()
		require.True(t, ok, name)
		assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds(), name)
		_, _, _, a := img.At(1, 1).RGBA()
		assert.NotZero(t, a, name)
	}
}

func TestLoadIsCached(t *testing.T) {
	l := newTestLoader(t)
	assert.Same(t, l.Load("town"), l.Load("town"))
	assert.Nil(t, l.Load(""))
}

func TestFailedLoadNeverReady(t *testing.T) {
	l := newTestLoader(t)

	missing := l.Load("nothing")
	assert.ErrorIs(t, wait(t, missing), fs.ErrNotExist)
	assert.True(t, missing.Failed())
	_, ok := missing.Image()
	assert.False(t, ok)
	_, ok = missing.Image()
	assert.False(t, ok, "still not ready on the next poll")

	broken := l.Load("broken")
	assert.Error(t, wait(t, broken))
	assert.True(t, broken.Failed())
}

func TestNilPictureIsNotReady(t *testing.T) {
	var p *Picture
	_, ok := p.Image()
	assert.False(t, ok)
}
