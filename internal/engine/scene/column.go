package scene

import (
	"sort"

	"github.com/Faultbox/prayground/pkg/math"
)

// RayColumn is a batch of rays sharing an origin, typically one image
// column. XDir and YDir give the column's horizontal heading.
type RayColumn struct {
	Origin math.Vec3
	Dirs   []math.Vec3
	XDir   float32
	YDir   float32
}

// NewRayColumn wraps a caller-owned direction buffer.
func NewRayColumn(origin math.Vec3, dirs []math.Vec3, xdir, ydir float32) RayColumn {
	return RayColumn{Origin: origin, Dirs: dirs, XDir: xdir, YDir: ydir}
}

// Len returns the number of rays.
func (c RayColumn) Len() int { return len(c.Dirs) }

// Ray returns ray i.
func (c RayColumn) Ray(i int) math.Ray {
	return math.NewRay(c.Origin, c.Dirs[i])
}

// SlopeRayColumn is a batch of rays sharing an origin and a unit
// horizontal heading (XDir, YDir), differing only in their vertical slope.
// ZDirs must be sorted ascending.
type SlopeRayColumn struct {
	Origin math.Vec3
	XDir   float32
	YDir   float32
	ZDirs  []float32
}

// NewSlopeRayColumn wraps a caller-owned slope buffer. The buffer is not
// copied or sorted.
func NewSlopeRayColumn(origin math.Vec3, xdir, ydir float32, zdirs []float32) SlopeRayColumn {
	return SlopeRayColumn{Origin: origin, XDir: xdir, YDir: ydir, ZDirs: zdirs}
}

// Len returns the number of rays.
func (c SlopeRayColumn) Len() int { return len(c.ZDirs) }

// Ray returns ray i with a unit direction.
func (c SlopeRayColumn) Ray(i int) math.Ray {
	dir := math.Vec3{X: c.XDir, Y: c.YDir, Z: c.ZDirs[i]}.Normalize()
	return math.NewRay(c.Origin, dir)
}

// SlopeRay returns ray i with direction (XDir, YDir, slope). Its
// parameter measures horizontal distance.
func (c SlopeRayColumn) SlopeRay(i int) math.Ray {
	return math.NewRay(c.Origin, math.Vec3{X: c.XDir, Y: c.YDir, Z: c.ZDirs[i]})
}

// XYRay returns the horizontal ray shared by the column.
func (c SlopeRayColumn) XYRay() math.Ray {
	return math.NewRay(c.Origin, math.Vec3{X: c.XDir, Y: c.YDir})
}

// IsSorted reports whether the slopes are in ascending order.
func (c SlopeRayColumn) IsSorted() bool {
	return sort.SliceIsSorted(c.ZDirs, func(i, j int) bool { return c.ZDirs[i] < c.ZDirs[j] })
}
