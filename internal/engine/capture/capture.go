// Package capture writes rendered frames to PNG or BMP files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ParseFormat accepts "png" or "bmp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, BMP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q (want png or bmp)", s)
	}
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case BMP:
		return bmp.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}

// FromPixels builds an image from OpenGL RGBA pixels. OpenGL rows start
// at the bottom, so the rows are flipped.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Capture names and writes screenshot files.
type Capture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// New creates a capture writing prefix_<timestamp>.<format> into outputDir.
func New(outputDir, prefix string, format Format) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// Filename returns the next timestamped file name without writing.
func (c *Capture) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	return c.path(fmt.Sprintf("%s_%s.%s", c.prefix, timestamp, c.format))
}

// Numbered returns the file name for frame i of a sequence.
func (c *Capture) Numbered(i int) string {
	return c.path(fmt.Sprintf("%s_%04d.%s", c.prefix, i, c.format))
}

func (c *Capture) path(name string) string {
	if c.outputDir == "" {
		return name
	}
	return filepath.Join(c.outputDir, name)
}

// FromPixels writes a screenshot from OpenGL pixel data.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.FromImage(img)
}

// FromImage writes img to a timestamped file.
func (c *Capture) FromImage(img image.Image) (string, error) {
	filename := c.Filename()
	return filename, c.WriteFile(filename, img)
}

// WriteFile writes img to filename, creating the output directory.
func (c *Capture) WriteFile(filename string, img image.Image) error {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, c.format); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return file.Close()
}
