package renderer

import (
	"errors"
	"fmt"
)

// ErrUnsupportedThreadCount is returned for worker counts missing from
// the viewport partition table.
var ErrUnsupportedThreadCount = errors.New("unsupported thread count")

// grid is a viewport split into cols x rows regions.
type grid struct {
	cols, rows int
}

// partitions lists the supported worker counts.
var partitions = map[int]grid{
	2:   {1, 2},
	4:   {2, 2},
	8:   {2, 4},
	16:  {4, 4},
	32:  {4, 8},
	64:  {8, 8},
	128: {16, 8},
	256: {16, 16},
}

// Region is a half-open pixel rectangle [X0,X1) x [Y0,Y1).
type Region struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the number of columns.
func (r Region) Width() int { return r.X1 - r.X0 }

// Height returns the number of rows.
func (r Region) Height() int { return r.Y1 - r.Y0 }

// Pixels returns the pixel count.
func (r Region) Pixels() int { return r.Width() * r.Height() }

// SupportedThreads reports whether n workers can split the viewport.
// Counts of one or less render on the calling goroutine.
func SupportedThreads(n int) bool {
	if n <= 1 {
		return true
	}
	_, ok := partitions[n]
	return ok
}

// Partition splits a width x height viewport into one region per worker.
// The regions are disjoint and cover the viewport.
func Partition(width, height, threads int) ([]Region, error) {
	if threads <= 1 {
		return []Region{{0, 0, width, height}}, nil
	}

	g, ok := partitions[threads]
	if !ok {
		return nil, fmt.Errorf("%d threads: %w", threads, ErrUnsupportedThreadCount)
	}
	if width < g.cols || height < g.rows {
		return nil, fmt.Errorf("viewport %dx%d too small for %d threads", width, height, threads)
	}

	regions := make([]Region, 0, threads)
	for j := 0; j < g.rows; j++ {
		y0 := j * height / g.rows
		y1 := (j + 1) * height / g.rows
		for i := 0; i < g.cols; i++ {
			x0 := i * width / g.cols
			x1 := (i + 1) * width / g.cols
			regions = append(regions, Region{x0, y0, x1, y1})
		}
	}
	return regions, nil
}
