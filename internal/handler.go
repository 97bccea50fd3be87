package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/retro-image-converter/internal/raster"
	"github.com/rm-hull/retro-image-converter/internal/raster/stage"
	log "github.com/sirupsen/logrus"
)

const DefaultMaxUploadBytes = 32 << 20

type ConvertHandler struct {
	maxBytes int64
	defaults Options
}

func NewConvertHandler(maxBytes int64, defaults Options) *ConvertHandler {
	return &ConvertHandler{maxBytes: maxBytes, defaults: defaults}
}

// Handle converts the uploaded image, taken either from the multipart
// field "image" or from the raw request body, and responds with the result
// in the same format family.
func (h *ConvertHandler) Handle(c *gin.Context) {
	opts, err := h.options(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	body, err := h.upload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("image exceeds %d bytes", h.maxBytes)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, format, err := raster.Decode(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := Convert(img, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, raster.ErrDegenerateImage) || errors.Is(err, raster.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := raster.Encode(&buf, out, format); err != nil {
		log.Errorf("failed to encode %s response: %v", format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode image"})
		return
	}
	c.Data(http.StatusOK, raster.ContentType(format), buf.Bytes())
}

func (h *ConvertHandler) upload(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("image")
		if err != nil {
			return nil, fmt.Errorf("missing image field: %w", err)
		}
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()
		return io.ReadAll(f)
	}
	return io.ReadAll(c.Request.Body)
}

func (h *ConvertHandler) options(c *gin.Context) (Options, error) {
	opts := h.defaults
	opts.StagesPath = ""

	if o, ok := c.GetQuery("orientation"); ok {
		orientation, err := stage.ParseOrientation(o)
		if err != nil {
			return opts, err
		}
		opts.Orientation = orientation
	}

	for name, flag := range map[string]*bool{
		"crt":     &opts.ApplyCRT,
		"glitch":  &opts.ApplyGlitch,
		"enhance": &opts.ColorEnhance,
	} {
		if v, ok := c.GetQuery(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, fmt.Errorf("%w: %s=%q", raster.ErrInvalidParameter, name, v)
			}
			*flag = b
		}
	}
	return opts, opts.Validate()
}
