package terrain

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// Load decodes an image file into a heightmap. See FromImage. TGA files are
// recognised by their extension since the format carries no magic number.
func Load(path string, scale float32) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	var (
		img    image.Image
		format = "tga"
	)
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = decodeTGA(f)
	} else {
		img, format, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}

	hm, err := FromImage(img, scale)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s (%s): %w", path, format, err)
	}
	return hm, nil
}

// FromImage converts an image into heights: the mean of the R, G and B
// channels in [0,1] times scale. The bottom image row becomes y = 0.
func FromImage(img image.Image, scale float32) (*Heightmap, error) {
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("image %dx%d: %w", w, h, ErrTooSmall)
	}

	hm := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Max.Y-1-y).RGBA()
			// RGBA returns 16-bit channels
			sum := float32(r)/0xffff + float32(g)/0xffff + float32(bl)/0xffff
			hm.Set(x, y, sum*scale/3)
		}
	}
	return hm, nil
}
