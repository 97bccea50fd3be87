package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rm-hull/retro-image-converter/internal/raster/stage"
)

// Prompt asks for the orientation and each optional effect in turn.
// Anything other than "v" selects horizontal stripes and anything other
// than "y" declines an effect.
func Prompt(in io.Reader, out io.Writer, opts *Options) error {
	scanner := bufio.NewScanner(in)

	ask := func(question string) (string, error) {
		if _, err := fmt.Fprint(out, question); err != nil {
			return "", err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.ToLower(strings.TrimSpace(scanner.Text())), nil
	}

	answer, err := ask("Stripe orientation, vertical (v) or horizontal (h): ")
	if err != nil {
		return err
	}
	opts.Orientation = stage.Horizontal
	if answer == "v" {
		opts.Orientation = stage.Vertical
	}

	for _, q := range []struct {
		question string
		flag     *bool
	}{
		{"Apply CRT warp? (y/n): ", &opts.ApplyCRT},
		{"Apply glitch effect? (y/n): ", &opts.ApplyGlitch},
		{"Enhance colour contrast? (y/n): ", &opts.ColorEnhance},
	} {
		answer, err := ask(q.question)
		if err != nil {
			return err
		}
		*q.flag = answer == "y"
	}
	return nil
}
