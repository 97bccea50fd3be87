package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/rm-hull/retro-image-converter/internal/raster"
)

type ChannelShiftStage struct {
	Shift     int
	Intensity float64
}

func (s *ChannelShiftStage) Validate() error {
	if s.Intensity < 0 || s.Intensity > 1 || math.IsNaN(s.Intensity) {
		return fmt.Errorf("%w: glitch intensity must be within [0,1], got %g", raster.ErrInvalidParameter, s.Intensity)
	}
	return nil
}

// Process rolls the red plane sideways and the green plane upwards (wrapping
// around the edges) and blends them back over the originals
func (s *ChannelShiftStage) Process(p *raster.RetroImage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.Replace(ChannelShift(p.Img, s.Shift, s.Intensity))
	return nil
}

func ChannelShift(src image.Image, shift int, intensity float64) *image.RGBA {
	in := opaqueRGBA(src)
	width, height := in.Rect.Dx(), in.Rect.Dy()
	out := image.NewRGBA(in.Rect)
	copy(out.Pix, in.Pix)

	greenShift := floorDiv(-shift, 2)
	for y := 0; y < height; y++ {
		gy := wrap(y-greenShift, height)
		for x := 0; x < width; x++ {
			rx := wrap(x-shift, width)
			o := out.PixOffset(x, y)
			out.Pix[o] = blend(in.Pix[in.PixOffset(rx, y)], in.Pix[o], intensity)
			out.Pix[o+1] = blend(in.Pix[in.PixOffset(x, gy)+1], in.Pix[o+1], intensity)
		}
	}
	return out
}

func blend(shifted, original uint8, intensity float64) uint8 {
	return roundUint8(intensity*float64(shifted) + (1-intensity)*float64(original))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// floorDiv rounds towards negative infinity, so -5/2 is -3.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
