package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/rm-hull/retro-image-converter/internal/raster"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "v", "vertical":
		return Vertical, nil
	case "h", "horizontal":
		return Horizontal, nil
	}
	return "", fmt.Errorf("%w: orientation %q", raster.ErrInvalidParameter, s)
}

type SubpixelStage struct {
	BlockSize   int
	Brightness  float64
	Orientation Orientation
}

func (s *SubpixelStage) Validate() error {
	if s.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive, got %d", raster.ErrInvalidParameter, s.BlockSize)
	}
	if s.Brightness < 0 || math.IsNaN(s.Brightness) {
		return fmt.Errorf("%w: brightness must not be negative, got %g", raster.ErrInvalidParameter, s.Brightness)
	}
	if s.Orientation != Vertical && s.Orientation != Horizontal {
		return fmt.Errorf("%w: orientation %q", raster.ErrInvalidParameter, s.Orientation)
	}
	return nil
}

// Process renders every block-sized cell of the image as an LCD pixel: three
// stripes carrying only the red, green and blue component respectively.
func (s *SubpixelStage) Process(p *raster.RetroImage) error {
	if err := s.Validate(); err != nil {
		return err
	}
	out, err := RenderSubpixels(p.Img, s.BlockSize, s.Brightness, s.Orientation)
	if err != nil {
		return err
	}
	p.Replace(out)
	return nil
}

func RenderSubpixels(src image.Image, blockSize int, brightness float64, orientation Orientation) (*image.RGBA, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", raster.ErrInvalidParameter, blockSize)
	}
	w := src.Bounds().Dx() / blockSize
	h := src.Bounds().Dy() / blockSize
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: %v is smaller than one %dpx block", raster.ErrDegenerateImage, src.Bounds().Size(), blockSize)
	}

	small := opaqueRGBA(transform.Resize(src, w, h, transform.Box))
	out := image.NewRGBA(image.Rect(0, 0, w*blockSize, h*blockSize))

	// stripe boundaries within a block; the last stripe takes the remainder
	third := blockSize / 3
	edges := [4]int{0, third, 2 * third, blockSize}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := small.PixOffset(x, y)
			boosted := [3]uint8{
				roundUint8(float64(small.Pix[i]) * brightness),
				roundUint8(float64(small.Pix[i+1]) * brightness),
				roundUint8(float64(small.Pix[i+2]) * brightness),
			}

			baseX, baseY := x*blockSize, y*blockSize
			for by := 0; by < blockSize; by++ {
				row := out.PixOffset(baseX, baseY+by)
				for bx := 0; bx < blockSize; bx++ {
					pos := bx
					if orientation == Horizontal {
						pos = by
					}
					c := stripeOf(pos, edges)
					o := row + bx*4
					out.Pix[o+c] = boosted[c]
					out.Pix[o+3] = 0xff
				}
			}
		}
	}
	return out, nil
}

func stripeOf(pos int, edges [4]int) int {
	switch {
	case pos < edges[1]:
		return 0
	case pos < edges[2]:
		return 1
	default:
		return 2
	}
}
