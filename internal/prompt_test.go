package internal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/rm-hull/retro-image-converter/internal/raster/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Options
	}{
		{"vertical with crt and enhance", "v\ny\nn\ny\n", Options{Orientation: stage.Vertical, ApplyCRT: true, ColorEnhance: true}},
		{"anything else is horizontal", "x\nn\nY\nno\n", Options{Orientation: stage.Horizontal, ApplyGlitch: true}},
		{"whitespace and case", "  V \n y\n y \nN\n", Options{Orientation: stage.Vertical, ApplyCRT: true, ApplyGlitch: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts := Options{ApplyCRT: true, ApplyGlitch: true, ColorEnhance: true}
			require.NoError(t, Prompt(strings.NewReader(tt.input), &out, &opts))
			assert.Equal(t, tt.want, opts)
			assert.Equal(t, 4, strings.Count(out.String(), ": "))
		})
	}
}

func TestPrompt_EarlyEOF(t *testing.T) {
	opts := Options{}
	err := Prompt(strings.NewReader("v\ny\n"), io.Discard, &opts)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
