package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
)

var ErrUndecodable = errors.New("image could not be decoded")

// allowedContentTypes are the upload types accepted for profile pictures.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// IsAllowedContentType reports whether contentType is JPEG or PNG, ignoring
// case and any parameters.
func IsAllowedContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return allowedContentTypes[ct]
}

// Processor turns uploads into bounded JPEGs.
type Processor struct {
	quality      int // JPEG quality (1-100)
	maxDimension int // longest side in pixels, 0 keeps the original size
	maxPixels    int // width*height ceiling checked from the header, 0 disables
}

func NewProcessor(quality, maxDimension, maxPixels int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxDimension < 0 {
		maxDimension = 0
	}
	if maxPixels < 0 {
		maxPixels = 0
	}
	return &Processor{
		quality:      quality,
		maxDimension: maxDimension,
		maxPixels:    maxPixels,
	}
}

// ToJPEG decodes a JPEG or PNG, downsizes it so its longest side fits
// maxDimension, flattens transparency onto white and re-encodes it as JPEG.
// Images whose header declares more than maxPixels are rejected before any
// pixel buffer is allocated.
func (p *Processor) ToJPEG(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if p.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUndecodable, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := img.Bounds()
	width, height := p.targetSize(bounds.Dx(), bounds.Dy())

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// targetSize keeps the aspect ratio and never upscales.
func (p *Processor) targetSize(width, height int) (int, int) {
	if p.maxDimension == 0 || (width <= p.maxDimension && height <= p.maxDimension) {
		return width, height
	}
	if width >= height {
		h := height * p.maxDimension / width
		if h < 1 {
			h = 1
		}
		return p.maxDimension, h
	}
	w := width * p.maxDimension / height
	if w < 1 {
		w = 1
	}
	return w, p.maxDimension
}
