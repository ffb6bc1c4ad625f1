package scene

import (
	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

// Linear stores cells in a flat row-major array and tests every one of
// them per query. It is the reference the tree scenes are checked against.
type Linear struct {
	lightSet

	xsize int
	ysize int
	cells []terrain.TriCell
}

var _ Scene = (*Linear)(nil)

// NewLinear creates an empty linear scene.
func NewLinear(opts Options) *Linear {
	return &Linear{lightSet: lightSet{bias: opts.ShadowBias}}
}

// AssignHeightmap builds one cell per grid square.
func (s *Linear) AssignHeightmap(hm *terrain.Heightmap) {
	checkGrid(hm)

	s.xsize = hm.Width() - 1
	s.ysize = hm.Height() - 1
	s.cells = make([]terrain.TriCell, s.xsize*s.ysize)

	for y := 0; y < s.ysize; y++ {
		for x := 0; x < s.xsize; x++ {
			s.cells[y*s.xsize+x].SetFromHeightmap(hm, x, y)
		}
	}
}

// TraceIntersection keeps the nearest hit, shortening the ray as it goes.
func (s *Linear) TraceIntersection(ray math.Ray) terrain.Intersection {
	result := terrain.Miss()
	for i := range s.cells {
		if hit := s.cells[i].TraceRay(ray); hit.Valid() {
			result = hit
			ray = ray.WithTMax(hit.Time)
		}
	}
	return result
}

// TraceRay shades the nearest hit.
func (s *Linear) TraceRay(ray math.Ray) lighting.Color {
	return s.shade(s, s.TraceIntersection(ray))
}

// TraceShadowRay stops at the first cell that reports a hit.
func (s *Linear) TraceShadowRay(ray math.Ray) bool {
	for i := range s.cells {
		if s.cells[i].TraceShadowRay(ray) {
			return true
		}
	}
	return false
}

// TraceRayColumn traces each ray on its own.
func (s *Linear) TraceRayColumn(col RayColumn, out []lighting.Color) {
	traceRayColumn(s, col, out)
}

// TraceSlopeRayColumn traces each ray on its own.
func (s *Linear) TraceSlopeRayColumn(col SlopeRayColumn, out []lighting.Color) {
	traceSlopeRayColumn(s, col, out)
}

// Bounds returns the height range over all cells.
func (s *Linear) Bounds() (lo, hi float32) {
	lo, hi = s.cells[0].MinHeight(), s.cells[0].MaxHeight()
	for i := range s.cells {
		lo = min(lo, s.cells[i].MinHeight())
		hi = max(hi, s.cells[i].MaxHeight())
	}
	return lo, hi
}

// Stats reports the cell count; the grid has no nodes.
func (s *Linear) Stats() Stats {
	return Stats{Cells: len(s.cells)}
}
