// Package terrain provides the heightfield grid and the triangulated cells
// built from it.
package terrain

import (
	"fmt"
	"math"
)

// Heightmap is a dense row-major grid of height samples.
type Heightmap struct {
	width  int
	height int
	data   []float32
}

// New creates a zero-filled heightmap.
func New(width, height int) *Heightmap {
	return &Heightmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

// FromSlice wraps row-major samples. The slice is used directly, not copied.
func FromSlice(width, height int, data []float32) (*Heightmap, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("heightmap %dx%d: %w", width, height, ErrTooSmall)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("heightmap %dx%d with %d samples: %w", width, height, len(data), ErrSizeMismatch)
	}
	for i, h := range data {
		if math.IsNaN(float64(h)) || math.IsInf(float64(h), 0) {
			return nil, fmt.Errorf("sample %d (%d,%d) is %v: %w", i, i%width, i/width, h, ErrNonFinite)
		}
	}
	return &Heightmap{width: width, height: height, data: data}, nil
}

// Width returns the number of samples along x.
func (h *Heightmap) Width() int { return h.width }

// Height returns the number of samples along y.
func (h *Heightmap) Height() int { return h.height }

// At returns the sample at (x, y).
func (h *Heightmap) At(x, y int) float32 {
	return h.data[y*h.width+x]
}

// Set stores a sample at (x, y).
func (h *Heightmap) Set(x, y int, v float32) {
	h.data[y*h.width+x] = v
}

// Clone returns a deep copy.
func (h *Heightmap) Clone() *Heightmap {
	data := make([]float32, len(h.data))
	copy(data, h.data)
	return &Heightmap{width: h.width, height: h.height, data: data}
}

// MinMax returns the lowest and highest sample.
func (h *Heightmap) MinMax() (lo, hi float32) {
	lo = math.MaxFloat32
	hi = -math.MaxFloat32
	for _, v := range h.data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// MaxHeightX returns the highest sample on column x for y in [ymin, ymax).
func (h *Heightmap) MaxHeightX(x, ymin, ymax int) float32 {
	result := float32(-math.MaxFloat32)
	for y := ymin; y < ymax; y++ {
		result = max(result, h.At(x, y))
	}
	return result
}

// MinHeightX returns the lowest sample on column x for y in [ymin, ymax).
func (h *Heightmap) MinHeightX(x, ymin, ymax int) float32 {
	result := float32(math.MaxFloat32)
	for y := ymin; y < ymax; y++ {
		result = min(result, h.At(x, y))
	}
	return result
}

// MaxHeightY returns the highest sample on row y for x in [xmin, xmax).
func (h *Heightmap) MaxHeightY(y, xmin, xmax int) float32 {
	result := float32(-math.MaxFloat32)
	for x := xmin; x < xmax; x++ {
		result = max(result, h.At(x, y))
	}
	return result
}

// MinHeightY returns the lowest sample on row y for x in [xmin, xmax).
func (h *Heightmap) MinHeightY(y, xmin, xmax int) float32 {
	result := float32(math.MaxFloat32)
	for x := xmin; x < xmax; x++ {
		result = min(result, h.At(x, y))
	}
	return result
}

// Interpolate returns the bilinearly interpolated height at a grid
// position, clamped to the grid.
func (h *Heightmap) Interpolate(fx, fy float32) float32 {
	x := int(fx)
	y := int(fy)

	x = clampi(x, 0, h.width-2)
	y = clampi(y, 0, h.height-2)

	relX := clampf(fx-float32(x), 0, 1)
	relY := clampf(fy-float32(y), 0, 1)

	south := h.At(x, y)*(1-relX) + h.At(x+1, y)*relX
	north := h.At(x, y+1)*(1-relX) + h.At(x+1, y+1)*relX
	return south*(1-relY) + north*relY
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
