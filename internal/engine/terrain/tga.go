package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

const tgaHeaderSize = 18

// ErrTGA is wrapped by every TGA decoding failure.
var ErrTGA = errors.New("invalid TGA")

// decodeTGA decodes uncompressed or RLE TGA images, either 8-bit grayscale
// or 24/32-bit true color. Grayscale input yields *image.Gray.
func decodeTGA(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header truncated", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	}

	gray := imageType == tgaGray || imageType == tgaGrayRLE
	switch {
	case imageType != tgaTrueColor && imageType != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("%w: image type %d not supported", ErrTGA, imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("%w: grayscale depth %d not supported", ErrTGA, bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: color depth %d not supported", ErrTGA, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: id field truncated", ErrTGA)
	}

	stride := bpp / 8
	var pix []byte
	if imageType == tgaTrueColorRLE || imageType == tgaGrayRLE {
		pix, err = unpackTGARLE(data[offset:], width*height, stride)
		if err != nil {
			return nil, err
		}
	} else {
		n := width * height * stride
		if len(data)-offset < n {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
		pix = data[offset : offset+n]
	}

	// Rows are stored bottom-up unless the descriptor says otherwise.
	row := func(y int) int {
		if topDown {
			return y
		}
		return height - 1 - y
	}

	if gray {
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			copy(img.Pix[row(y)*img.Stride:], pix[y*width:(y+1)*width])
		}
		return img, nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pix[(y*width+x)*stride:]
			c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
			if stride == 4 {
				c.A = p[3]
			}
			img.SetNRGBA(x, row(y), c)
		}
	}
	return img, nil
}

// unpackTGARLE expands run-length packets into count pixels of stride bytes.
func unpackTGARLE(src []byte, count, stride int) ([]byte, error) {
	out := make([]byte, 0, count*stride)
	for len(out) < count*stride {
		if len(src) == 0 {
			return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
		}
		header := src[0]
		src = src[1:]
		n := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if len(src) < stride {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
			}
			for i := 0; i < n; i++ {
				out = append(out, src[:stride]...)
			}
			src = src[stride:]
			continue
		}

		if len(src) < n*stride {
			return nil, fmt.Errorf("%w: RLE data truncated", ErrTGA)
		}
		out = append(out, src[:n*stride]...)
		src = src[n*stride:]
	}
	// A final run may overshoot the image.
	return out[:count*stride], nil
}
