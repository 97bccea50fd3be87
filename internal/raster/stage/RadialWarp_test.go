package stage

import (
	"image"
	"testing"

	"github.com/rm-hull/retro-image-converter/internal/raster"
	"github.com/stretchr/testify/assert"
)

func TestRadialWarp_ZeroStrengthIsIdentity(t *testing.T) {
	for _, size := range []image.Point{{40, 30}, {33, 17}, {1, 1}} {
		src := pattern(size.X, size.Y)
		out := RadialWarp(src, 0)
		assert.Equal(t, src.Pix, out.Pix, "size %v", size)
	}
}

func TestRadialWarp_PreservesDimensionsAndCentre(t *testing.T) {
	src := pattern(64, 48)
	out := RadialWarp(src, 0.1)

	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, src.RGBAAt(32, 24), out.RGBAAt(32, 24))
	for i := 3; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(0xff), out.Pix[i])
	}
}

func TestRadialWarp_SamplesTowardsCentre(t *testing.T) {
	src := pattern(100, 100)
	out := RadialWarp(src, 1.0)

	// at the corner the offset is halved: (0,0) samples from (25,25)
	assert.Equal(t, src.RGBAAt(25, 25), out.RGBAAt(0, 0))
}

func TestRadialWarp_NonZeroOrigin(t *testing.T) {
	src := pattern(20, 20).SubImage(image.Rect(5, 5, 15, 15))
	out := RadialWarp(src, 0)

	assert.Equal(t, image.Rect(0, 0, 10, 10), out.Bounds())
	assert.Equal(t, src.(*image.RGBA).RGBAAt(5, 5), out.RGBAAt(0, 0))
	assert.Equal(t, src.(*image.RGBA).RGBAAt(14, 14), out.RGBAAt(9, 9))
}

func TestRadialWarpStage_Validate(t *testing.T) {
	assert.NoError(t, (&RadialWarpStage{Strength: 0}).Validate())
	assert.NoError(t, (&RadialWarpStage{Strength: 0.1}).Validate())
	assert.ErrorIs(t, (&RadialWarpStage{Strength: -0.1}).Validate(), raster.ErrInvalidParameter)
}
