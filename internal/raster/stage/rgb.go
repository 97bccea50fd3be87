package stage

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// opaqueRGBA copies src into a zero-origin RGBA buffer with every alpha
// forced to 255. Translucent pixels end up composited over black.
func opaqueRGBA(src image.Image) *image.RGBA {
	dst := clone.AsRGBA(src)
	dst.Rect = dst.Rect.Sub(dst.Rect.Min)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

func clampUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func roundUint8(v float64) uint8 {
	return clampUint8(math.Round(v))
}
