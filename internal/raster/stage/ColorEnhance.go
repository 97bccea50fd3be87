package stage

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/rm-hull/retro-image-converter/internal/raster"
)

type ColorEnhanceStage struct {
	Factor float64
}

func (s *ColorEnhanceStage) Validate() error {
	if s.Factor < 0 || math.IsNaN(s.Factor) {
		return fmt.Errorf("%w: enhancement factor must not be negative, got %g", raster.ErrInvalidParameter, s.Factor)
	}
	return nil
}

// Process scales each pixel's distance from its own grey level by Factor:
// 0 gives greyscale, 1 leaves the image alone and larger values saturate
func (s *ColorEnhanceStage) Process(p *raster.RetroImage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.Replace(ColorEnhance(p.Img, s.Factor))
	return nil
}

// ColorEnhance blends each pixel with its grey level; blended values are
// truncated, not rounded.
func ColorEnhance(src image.Image, factor float64) *image.RGBA {
	return adjust.Apply(opaqueRGBA(src), func(c color.RGBA) color.RGBA {
		grey := float64(luma(c.R, c.G, c.B))
		return color.RGBA{
			R: clampUint8(grey + factor*(float64(c.R)-grey)),
			G: clampUint8(grey + factor*(float64(c.G)-grey)),
			B: clampUint8(grey + factor*(float64(c.B)-grey)),
			A: 0xff,
		}
	})
}

// luma is the ITU-R 601-2 transform in 16.16 fixed point.
func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}
