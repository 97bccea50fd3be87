package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/rm-hull/retro-image-converter/internal/raster"
)

type RadialWarpStage struct {
	Strength float64
}

func (s *RadialWarpStage) Validate() error {
	if s.Strength < 0 || math.IsNaN(s.Strength) {
		return fmt.Errorf("%w: warp strength must not be negative, got %g", raster.ErrInvalidParameter, s.Strength)
	}
	return nil
}

// Process bulges the image outwards from its centre, like the curved glass of a CRT
// Destination pixels whose source falls outside the image are left black
func (s *RadialWarpStage) Process(p *raster.RetroImage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.Replace(RadialWarp(p.Img, s.Strength))
	return nil
}

func RadialWarp(src image.Image, strength float64) *image.RGBA {
	in := opaqueRGBA(src)
	width, height := in.Rect.Dx(), in.Rect.Dy()
	out := image.NewRGBA(in.Rect)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}

	centerX, centerY := float64(width)/2, float64(height)/2
	maxDistance := math.Hypot(centerX, centerY)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-centerX, float64(y)-centerY
			distance := math.Hypot(dx, dy)
			ratio := distance / maxDistance
			distortion := 1 + strength*ratio*ratio

			srcX := centerX + dx/distortion
			srcY := centerY + dy/distortion
			x0, y0 := int(srcX), int(srcY)
			if x0 < 0 || x0 >= width || y0 < 0 || y0 >= height {
				continue
			}
			x1, y1 := min(x0+1, width-1), min(y0+1, height-1)
			a, b := srcX-float64(x0), srcY-float64(y0)

			p00 := in.PixOffset(x0, y0)
			p10 := in.PixOffset(x1, y0)
			p01 := in.PixOffset(x0, y1)
			p11 := in.PixOffset(x1, y1)
			o := out.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				v := (1-a)*(1-b)*float64(in.Pix[p00+c]) +
					a*(1-b)*float64(in.Pix[p10+c]) +
					(1-a)*b*float64(in.Pix[p01+c]) +
					a*b*float64(in.Pix[p11+c])
				out.Pix[o+c] = clampUint8(v)
			}
		}
	}
	return out
}
