// Package framebuffer provides the CPU color buffer the renderer writes
// into and its conversions for presentation and screenshots.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/prayground/internal/engine/lighting"
)

// Framebuffer is a width x height grid of linear colors. Row 0 is the
// bottom of the image.
type Framebuffer struct {
	width  int
	height int
	pixels []lighting.Color
}

// New creates a black framebuffer. Sizes below 1 are raised to 1.
func New(width, height int) *Framebuffer {
	width = max(width, 1)
	height = max(height, 1)
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]lighting.Color, width*height),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Set stores the color of pixel (x, y).
func (fb *Framebuffer) Set(x, y int, c lighting.Color) {
	fb.pixels[y*fb.width+x] = c
}

// At returns the color of pixel (x, y).
func (fb *Framebuffer) At(x, y int) lighting.Color {
	return fb.pixels[y*fb.width+x]
}

// SetColumn stores colors into column x starting at row y0. Workers
// writing disjoint regions may call it concurrently.
func (fb *Framebuffer) SetColumn(x, y0 int, colors []lighting.Color) {
	for i, c := range colors {
		fb.pixels[(y0+i)*fb.width+x] = c
	}
}

// Clear sets every pixel to c.
func (fb *Framebuffer) Clear(c lighting.Color) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// Resize reallocates the buffer if the dimensions changed. Contents are
// discarded.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height
	fb.pixels = make([]lighting.Color, width*height)
}

// toByte maps [0,1] to [0,255], saturating. NaN maps to 0.
func toByte(v float32) byte {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return byte(v*255 + 0.5)
}

// RGB24 writes the image top row first as packed RGB bytes into dst,
// growing it if needed, and returns it.
func (fb *Framebuffer) RGB24(dst []byte) []byte {
	n := fb.width * fb.height * 3
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	rowSize := fb.width * 3
	for y := 0; y < fb.height; y++ {
		src := fb.pixels[(fb.height-1-y)*fb.width:][:fb.width]
		row := dst[y*rowSize:][:rowSize]
		for x, c := range src {
			row[3*x] = toByte(c.R)
			row[3*x+1] = toByte(c.G)
			row[3*x+2] = toByte(c.B)
		}
	}
	return dst
}

// Image returns an RGBA copy, flipped so that row 0 is the top.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		srcY := fb.height - 1 - y
		for x := 0; x < fb.width; x++ {
			c := fb.pixels[srcY*fb.width+x]
			img.SetRGBA(x, y, color.RGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: 255})
		}
	}
	return img
}

// Screenshots writes framebuffer snapshots as timestamped PNG files.
type Screenshots struct {
	outputDir string
	prefix    string
}

// NewScreenshots creates a screenshot writer. An empty outputDir writes
// to the working directory.
func NewScreenshots(outputDir, prefix string) *Screenshots {
	return &Screenshots{outputDir: outputDir, prefix: prefix}
}

// Filename returns the path the next capture at time ts would use.
func (s *Screenshots) Filename(ts time.Time) string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, ts.Format("2006-01-02_15-04-05.000"))
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// Capture encodes fb as PNG and returns the file name.
func (s *Screenshots) Capture(fb *Framebuffer) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename(time.Now())
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.Image()); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
