package raster

import (
	"bytes"
	"errors"
	"image"
	"io"

	"github.com/kettek/apng"
)

// Animate packs frames into an endlessly looping APNG, each frame shown
// for frameDelay seconds. All frames must share the first frame's size.
func Animate(frames []image.Image, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}

	size := frames[0].Bounds().Size()
	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, img := range frames {
		if img.Bounds().Size() != size {
			return nil, errors.New("animation frames differ in size")
		}
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteAnimation writes the APNG of frames to path atomically.
func WriteAnimation(path string, frames []image.Image, frameDelay float64) error {
	data, err := Animate(frames, frameDelay)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
