package terrain

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tgaHeader(imageType, width, height, bpp int, descriptor byte) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = byte(imageType)
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = byte(bpp)
	h[17] = descriptor
	return h
}

func TestDecodeTGAGrayBottomUp(t *testing.T) {
	data := append(tgaHeader(tgaGray, 3, 2, 8, 0),
		10, 20, 30, // bottom row
		40, 50, 60, // top row
	)

	img, err := decodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	g, ok := img.(*image.Gray)
	require.True(t, ok)
	require.Equal(t, uint8(40), g.GrayAt(0, 0).Y)
	require.Equal(t, uint8(60), g.GrayAt(2, 0).Y)
	require.Equal(t, uint8(10), g.GrayAt(0, 1).Y)
}

func TestDecodeTGATopDown(t *testing.T) {
	data := append(tgaHeader(tgaGray, 2, 2, 8, 0x20), 1, 2, 3, 4)

	img, err := decodeTGA(bytes.NewReader(data))
	require.NoError(t, err)
	g := img.(*image.Gray)
	require.Equal(t, uint8(1), g.GrayAt(0, 0).Y)
	require.Equal(t, uint8(4), g.GrayAt(1, 1).Y)
}

func TestDecodeTGARLETrueColor(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 24, 0x20)
	// run of two blue-green-red pixels, then one raw pixel
	data = append(data, 0x81, 1, 2, 3)
	data = append(data, 0x00, 7, 8, 9)

	img, err := decodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	n := img.(*image.NRGBA)
	require.Equal(t, uint8(3), n.NRGBAAt(0, 0).R)
	require.Equal(t, uint8(1), n.NRGBAAt(1, 0).B)
	require.Equal(t, uint8(9), n.NRGBAAt(2, 0).R)
	require.Equal(t, uint8(0xff), n.NRGBAAt(2, 0).A)
}

func TestDecodeTGARLEOvershoot(t *testing.T) {
	data := append(tgaHeader(tgaGrayRLE, 2, 2, 8, 0), 0x87, 99)

	img, err := decodeTGA(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, uint8(99), img.(*image.Gray).GrayAt(1, 1).Y)
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			h := tgaHeader(tgaTrueColor, 1, 1, 24, 0)
			h[1] = 1
			return h
		}()},
		{"unsupported type", tgaHeader(1, 1, 1, 8, 0)},
		{"gray depth", tgaHeader(tgaGray, 1, 1, 16, 0)},
		{"color depth", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaGrayRLE, 4, 1, 8, 0), 0x01, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTGA(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, ErrTGA)
		})
	}
}

func TestLoadTGA(t *testing.T) {
	data := append(tgaHeader(tgaGray, 2, 2, 8, 0), 0, 0, 255, 255)
	path := filepath.Join(t.TempDir(), "map.TGA")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	hm, err := Load(path, 4)
	require.NoError(t, err)
	require.Equal(t, 2, hm.Width())
	// first stored row is the bottom of the image, which is y = 0
	require.InDelta(t, 0, hm.At(0, 0), 1e-5)
	require.InDelta(t, 4, hm.At(1, 1), 1e-5)
}
