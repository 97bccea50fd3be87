package internal

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/rm-hull/retro-image-converter/internal/raster"
	"github.com/rm-hull/retro-image-converter/internal/raster/stage"
	log "github.com/sirupsen/logrus"
)

// Fixed filter settings.
const (
	BlockSize       = 10
	BrightnessBoost = 1.5
	WarpStrength    = 0.1
	GlitchShift     = 5
	GlitchIntensity = 0.8
	ColorFactor     = 1.5
	CornerRadius    = 100

	OutputSuffix = "_retro"
	previewDelay = 1.0
)

type Options struct {
	Orientation  stage.Orientation
	ApplyCRT     bool
	ApplyGlitch  bool
	ColorEnhance bool

	// StagesPath, when set, receives an animated PNG of the buffer after
	// each stage.
	StagesPath string
}

// Stages returns the filter chain for opts in its fixed order.
func Stages(opts Options) []raster.PipelineStage {
	stages := []raster.PipelineStage{
		&stage.SubpixelStage{BlockSize: BlockSize, Brightness: BrightnessBoost, Orientation: opts.Orientation},
	}
	if opts.ApplyCRT {
		stages = append(stages, &stage.RadialWarpStage{Strength: WarpStrength})
	}
	if opts.ApplyGlitch {
		stages = append(stages, &stage.ChannelShiftStage{Shift: GlitchShift, Intensity: GlitchIntensity})
	}
	if opts.ColorEnhance {
		stages = append(stages, &stage.ColorEnhanceStage{Factor: ColorFactor})
	}
	return append(stages, &stage.CornerMaskStage{Radius: CornerRadius})
}

// Validate rejects bad parameters before any image is decoded.
func (opts Options) Validate() error {
	for _, s := range Stages(opts) {
		if v, ok := s.(raster.Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Convert runs the filter chain over img and returns the final buffer.
func Convert(img *raster.RetroImage, opts Options) (image.Image, error) {
	if opts.StagesPath != "" {
		img.Record()
	}
	if err := img.Pipeline(Stages(opts)...); err != nil {
		return nil, fmt.Errorf("failed to process image pipeline: %w", err)
	}
	return img.Img, nil
}

// OutputPath derives <dir>/<base>_retro<ext> from the input path.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputSuffix + ext
}

// ConvertFile decodes inputPath, applies the filter chain and writes the
// result next to the input. It returns the path written.
func ConvertFile(inputPath string, opts Options) (string, error) {
	startTime := time.Now()

	if err := opts.Validate(); err != nil {
		return "", err
	}

	outputPath := OutputPath(inputPath)
	if _, err := raster.FormatFromPath(outputPath); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", outputPath, err)
	}
	if opts.StagesPath != "" {
		if format, err := raster.FormatFromPath(opts.StagesPath); err != nil || format != "png" {
			return "", fmt.Errorf("%w: stage preview must be a .png file, got %s", raster.ErrUnsupportedFormat, opts.StagesPath)
		}
	}

	img, format, err := raster.Open(inputPath)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{
		"path":   inputPath,
		"format": format,
		"size":   img.Bounds.Size(),
	}).Info("Loaded image")

	out, err := Convert(img, opts)
	if err != nil {
		return "", err
	}

	// the preview goes first so a failure leaves no converted image behind
	if opts.StagesPath != "" {
		if err := raster.WriteAnimation(opts.StagesPath, img.Frames(), previewDelay); err != nil {
			return "", fmt.Errorf("failed to write stage preview %s: %w", opts.StagesPath, err)
		}
		log.Infof("Stage preview written to %s", opts.StagesPath)
	}

	if err := raster.WriteFile(outputPath, out); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.WithFields(log.Fields{
		"path":    outputPath,
		"size":    out.Bounds().Size(),
		"elapsed": time.Since(startTime),
	}).Info("Converted image")
	return outputPath, nil
}
