package raster

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimate(t *testing.T) {
	frames := []image.Image{checkerboard(8, 6), image.NewRGBA(image.Rect(0, 0, 8, 6))}

	data, err := Animate(frames, 0.5)
	require.NoError(t, err)

	// a plain PNG decoder sees the first frame
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 6), img.Bounds().Size())
	assert.True(t, bytes.Contains(data, []byte("acTL")))
}

func TestAnimate_Errors(t *testing.T) {
	_, err := Animate(nil, 1)
	assert.Error(t, err)

	_, err = Animate([]image.Image{checkerboard(8, 6), checkerboard(6, 8)}, 1)
	assert.ErrorContains(t, err, "differ in size")
}

func TestWriteAnimation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.png")
	require.NoError(t, WriteAnimation(path, []image.Image{checkerboard(4, 4)}, 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
