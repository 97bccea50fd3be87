package stage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rm-hull/retro-image-converter/internal/raster"
	"golang.org/x/image/draw"
)

type CornerMaskStage struct {
	Radius int
}

func (s *CornerMaskStage) Validate() error {
	if s.Radius < 0 {
		return fmt.Errorf("%w: corner radius must not be negative, got %d", raster.ErrInvalidParameter, s.Radius)
	}
	return nil
}

// Process blacks out everything outside a rounded rectangle covering the image
func (s *CornerMaskStage) Process(p *raster.RetroImage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.Replace(RoundCorners(p.Img, s.Radius))
	return nil
}

func RoundCorners(src image.Image, radius int) *image.RGBA {
	in := opaqueRGBA(src)
	bounds := in.Rect

	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.DrawMask(out, bounds, in, bounds.Min, RoundedRectMask(bounds, radius), bounds.Min, draw.Over)
	return out
}

// RoundedRectMask is opaque inside the rectangle with its corners rounded
// off by radius and transparent outside. The radius is capped at half the
// shorter side, so below 4px on a side the corner pixel centres always land
// inside the circle and nothing is masked.
func RoundedRectMask(bounds image.Rectangle, radius int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	width, height := bounds.Dx(), bounds.Dy()
	radius = min(radius, width/2, height/2)
	r := float64(radius)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if insideRoundedRect(x, y, width, height, r) {
				mask.Pix[mask.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] = 0xff
			}
		}
	}
	return mask
}

func insideRoundedRect(x, y, width, height int, r float64) bool {
	// pixel centre, folded into the top-left quadrant
	px := min(float64(x)+0.5, float64(width)-float64(x)-0.5)
	py := min(float64(y)+0.5, float64(height)-float64(y)-0.5)
	if px >= r || py >= r {
		return true
	}
	dx, dy := r-px, r-py
	return dx*dx+dy*dy <= r*r
}
