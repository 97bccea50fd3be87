package cmd

import (
	"fmt"
	"io"

	"github.com/rm-hull/retro-image-converter/internal"
)

// Convert fills in opts interactively when in is non-nil, then converts
// inputPath and reports where the result went.
func Convert(inputPath string, opts internal.Options, in io.Reader, out io.Writer) error {
	if in != nil {
		if err := internal.Prompt(in, out, &opts); err != nil {
			return fmt.Errorf("failed to read answers: %w", err)
		}
	}

	outputPath, err := internal.ConvertFile(inputPath, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Converted image saved to: %s\n", outputPath)
	return err
}
