package raster

import (
	"errors"
	"fmt"
	"image"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrDegenerateImage   = errors.New("degenerate image")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

type RetroImage struct {
	Img    image.Image
	Bounds image.Rectangle

	record bool
	frames []image.Image
}

type PipelineStage interface {
	Process(img *RetroImage) error
}

// Validator is implemented by stages whose parameters can be checked
// before any pixel is touched.
type Validator interface {
	Validate() error
}

func NewRetroImage(img image.Image) (*RetroImage, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateImage, bounds.Dx(), bounds.Dy())
	}
	return &RetroImage{
		Img:    img,
		Bounds: bounds,
	}, nil
}

// Record keeps a copy of the buffer produced by every subsequent stage.
func (p *RetroImage) Record() {
	p.record = true
}

func (p *RetroImage) Frames() []image.Image {
	return p.frames
}

// Replace swaps in the output of a stage.
func (p *RetroImage) Replace(img image.Image) {
	p.Img = img
	p.Bounds = img.Bounds()
}

func (p *RetroImage) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if v, ok := stage.(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%T: %w", stage, err)
			}
		}
	}

	for _, stage := range stages {
		start := time.Now()
		if err := stage.Process(p); err != nil {
			return fmt.Errorf("%T: %w", stage, err)
		}
		log.WithFields(log.Fields{
			"stage":   fmt.Sprintf("%T", stage),
			"size":    p.Bounds.Size(),
			"elapsed": time.Since(start),
		}).Debug("stage complete")

		if p.record {
			p.frames = append(p.frames, p.Img)
		}
	}
	return nil
}
