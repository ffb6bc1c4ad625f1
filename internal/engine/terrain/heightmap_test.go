package terrain

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromSliceValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		data    []float32
		wantErr error
	}{
		{"ok", 2, 2, []float32{0, 1, 2, 3}, nil},
		{"too small", 1, 4, []float32{0, 1, 2, 3}, ErrTooSmall},
		{"mismatch", 2, 3, []float32{0, 1, 2, 3}, ErrSizeMismatch},
		{"nan", 2, 2, []float32{0, float32(math.NaN()), 2, 3}, ErrNonFinite},
		{"inf", 2, 2, []float32{0, 1, float32(math.Inf(-1)), 3}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm, err := FromSlice(tt.w, tt.h, tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.w, hm.Width())
			require.Equal(t, tt.h, hm.Height())
		})
	}
}

func TestHeightmapRowMajor(t *testing.T) {
	hm, err := FromSlice(3, 2, []float32{0, 1, 2, 10, 11, 12})
	require.NoError(t, err)

	require.Equal(t, float32(2), hm.At(2, 0))
	require.Equal(t, float32(10), hm.At(0, 1))

	lo, hi := hm.MinMax()
	require.Equal(t, float32(0), lo)
	require.Equal(t, float32(12), hi)

	require.Equal(t, float32(11), hm.MaxHeightX(1, 0, 2))
	require.Equal(t, float32(1), hm.MinHeightX(1, 0, 2))
	require.Equal(t, float32(12), hm.MaxHeightY(1, 0, 3))
	require.Equal(t, float32(10), hm.MinHeightY(1, 0, 3))
}

func TestHeightmapClone(t *testing.T) {
	hm := New(2, 2)
	c := hm.Clone()
	c.Set(0, 0, 5)
	require.Equal(t, float32(0), hm.At(0, 0))
}

func TestHeightmapInterpolate(t *testing.T) {
	hm := rampHeightmap(4, 4, 1, 2)
	require.InDelta(t, 1.5+2*2.25, hm.Interpolate(1.5, 2.25), 1e-5)
	// clamped outside the grid
	require.InDelta(t, 3+2*3, hm.Interpolate(10, 10), 1e-5)
}

func TestOptSplitFindsStep(t *testing.T) {
	hm := New(8, 3)
	for y := 0; y < 3; y++ {
		for x := 4; x < 8; x++ {
			hm.Set(x, y, 10)
		}
	}

	_, split, ok := hm.OptSplitX(0, 8, 0, 3)
	require.True(t, ok)
	require.Equal(t, 3, split)

	// three rows leave a single interior candidate
	_, splitY, ok := hm.OptSplitY(0, 8, 0, 3)
	require.True(t, ok)
	require.Equal(t, 1, splitY)
}

func TestOptSplitNoInteriorLine(t *testing.T) {
	hm := New(2, 5)
	_, _, ok := hm.OptSplitX(0, 2, 0, 5)
	require.False(t, ok)
}

func TestFromImageOrientation(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 3))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(1, 0, color.Gray{Y: 255})

	hm, err := FromImage(img, 6)
	require.NoError(t, err)

	// top image row is the far edge of the grid
	require.InDelta(t, 6, hm.At(0, 2), 1e-5)
	require.InDelta(t, 6, hm.At(1, 2), 1e-5)
	require.InDelta(t, 0, hm.At(0, 0), 1e-5)
}

func TestLoadPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	hm, err := Load(path, 3)
	require.NoError(t, err)
	require.Equal(t, 4, hm.Width())
	require.InDelta(t, 1, hm.At(2, 2), 1e-5)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"), 1)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestProceduralDeterministic(t *testing.T) {
	a := Procedural(33, 17, 42, 8)
	b := Procedural(33, 17, 42, 8)
	require.Equal(t, a.data, b.data)

	lo, hi := a.MinMax()
	require.GreaterOrEqual(t, lo, float32(0))
	require.LessOrEqual(t, hi, float32(8))
	require.Greater(t, hi, lo)
}
