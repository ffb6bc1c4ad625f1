package terrain

import "github.com/Faultbox/prayground/pkg/math"

// Cell is a terrain patch covering one unit grid square.
type Cell interface {
	MinHeight() float32
	MaxHeight() float32

	// TraceRay returns the first intersection with the patch.
	TraceRay(ray math.Ray) Intersection
	// TraceSlopeRay is TraceRay for rays given as a horizontal direction
	// plus a vertical slope instead of a unit direction.
	TraceSlopeRay(ray math.Ray) Intersection
	// TraceShadowRay reports whether the ray hits the patch.
	TraceShadowRay(ray math.Ray) bool

	SetFromHeightmap(hm *Heightmap, x, y int)
}

// TriCell splits the square [x,x+1]×[y,y+1] into two triangles along the
// diagonal from (x+1,y) to (x,y+1). The negative triangle holds the
// (x,y) corner, the positive one the (x+1,y+1) corner.
type TriCell struct {
	minHeight float32
	maxHeight float32

	// geometric normals of the negative and positive triangle
	gn0, gn1 math.Vec3

	// shading normals at the corners
	sn00, sn10, sn01, sn11 math.Vec3

	x, y float32

	// corner heights
	z00, z10, z01, z11 float32
	// edge deltas
	dx0, dx1, dy0, dy1 float32
}

var _ Cell = (*TriCell)(nil)

// MinHeight returns the lowest corner.
func (c *TriCell) MinHeight() float32 { return c.minHeight }

// MaxHeight returns the highest corner.
func (c *TriCell) MaxHeight() float32 { return c.maxHeight }

// Origin returns the grid coordinates of the (x,y) corner.
func (c *TriCell) Origin() (x, y float32) { return c.x, c.y }

// GeometricNormals returns the face normals of the negative and positive triangle.
func (c *TriCell) GeometricNormals() (negative, positive math.Vec3) { return c.gn0, c.gn1 }

// SetFromHeightmap reads the cell at (x, y) and its neighbours. Corner
// shading normals use central differences and fall back to the cell's own
// edge deltas at the grid border.
func (c *TriCell) SetFromHeightmap(hm *Heightmap, x, y int) {
	c.x = float32(x)
	c.y = float32(y)

	c.z00 = hm.At(x, y)
	c.z10 = hm.At(x+1, y)
	c.z01 = hm.At(x, y+1)
	c.z11 = hm.At(x+1, y+1)

	c.maxHeight = max(max(c.z00, c.z10), max(c.z01, c.z11))
	c.minHeight = min(min(c.z00, c.z10), min(c.z01, c.z11))

	c.dx0 = c.z10 - c.z00
	c.dx1 = c.z11 - c.z01
	c.dy0 = c.z01 - c.z00
	c.dy1 = c.z11 - c.z10

	c.gn0 = surfaceNormal(c.dx0, c.dy0)
	c.gn1 = surfaceNormal(c.dx1, c.dy1)

	w := hm.Width()
	h := hm.Height()

	var dx, dy float32

	// (x, y)
	if x > 0 {
		dx = (hm.At(x+1, y) - hm.At(x-1, y)) * 0.5
	} else {
		dx = c.dx0
	}
	if y > 0 {
		dy = (hm.At(x, y+1) - hm.At(x, y-1)) * 0.5
	} else {
		dy = c.dy0
	}
	c.sn00 = surfaceNormal(dx, dy)

	// (x+1, y)
	if x < w-2 {
		dx = (hm.At(x+2, y) - hm.At(x, y)) * 0.5
	} else {
		dx = c.dx0
	}
	if y > 0 {
		dy = (hm.At(x+1, y+1) - hm.At(x+1, y-1)) * 0.5
	} else {
		dy = c.dy1
	}
	c.sn10 = surfaceNormal(dx, dy)

	// (x, y+1)
	if x > 0 {
		dx = (hm.At(x+1, y+1) - hm.At(x-1, y+1)) * 0.5
	} else {
		dx = c.dx1
	}
	if y < h-2 {
		dy = (hm.At(x, y+2) - hm.At(x, y)) * 0.5
	} else {
		dy = c.dy0
	}
	c.sn01 = surfaceNormal(dx, dy)

	// (x+1, y+1)
	if x < w-2 {
		dx = (hm.At(x+2, y+1) - hm.At(x, y+1)) * 0.5
	} else {
		dx = c.dx1
	}
	if y < h-2 {
		dy = (hm.At(x+1, y+2) - hm.At(x+1, y)) * 0.5
	} else {
		dy = c.dy1
	}
	c.sn11 = surfaceNormal(dx, dy)
}

// surfaceNormal returns the unit normal of the plane spanned by the
// tangents (1,0,dx) and (0,1,dy).
func surfaceNormal(dx, dy float32) math.Vec3 {
	tx := math.Vec3{X: 1, Y: 0, Z: dx}
	ty := math.Vec3{X: 0, Y: 1, Z: dy}
	return tx.Cross(ty).Normalize()
}

// ShadingNormal interpolates the corner normals at local coordinates.
func (c *TriCell) ShadingNormal(relX, relY float32) math.Vec3 {
	s0 := c.sn00.Scale(1 - relY).Add(c.sn01.Scale(relY))
	s1 := c.sn10.Scale(1 - relY).Add(c.sn11.Scale(relY))
	return s0.Scale(1 - relX).Add(s1.Scale(relX)).Normalize()
}

// InNegative reports whether local coordinates fall in the negative triangle.
func InNegative(relX, relY float32) bool {
	return relX >= 0 && relY >= 0 && relX+relY <= 1
}

// InPositive reports whether local coordinates fall in the positive triangle.
func InPositive(relX, relY float32) bool {
	return relX <= 1 && relY <= 1 && relX+relY >= 1
}

func (c *TriCell) traceNegative(ray math.Ray) Intersection {
	diff := ray.Pos.Sub(math.Vec3{X: c.x, Y: c.y, Z: c.z00})
	dist := diff.Dot(c.gn0)
	d := c.gn0.Dot(ray.Dir)

	if d < 0 {
		t := -dist / d
		if ray.InRange(t) {
			hit := ray.Point(t)
			relX := hit.X - c.x
			relY := hit.Y - c.y
			if InNegative(relX, relY) {
				return Intersection{Pos: hit, GN: c.gn0, SN: c.ShadingNormal(relX, relY), Time: t}
			}
		}
	}
	return Miss()
}

func (c *TriCell) tracePositive(ray math.Ray) Intersection {
	diff := ray.Pos.Sub(math.Vec3{X: c.x + 1, Y: c.y + 1, Z: c.z11})
	dist := diff.Dot(c.gn1)
	d := c.gn1.Dot(ray.Dir)

	if d < 0 {
		t := -dist / d
		if ray.InRange(t) {
			hit := ray.Point(t)
			relX := hit.X - c.x
			relY := hit.Y - c.y
			if InPositive(relX, relY) {
				return Intersection{Pos: hit, GN: c.gn1, SN: c.ShadingNormal(relX, relY), Time: t}
			}
		}
	}
	return Miss()
}

func (c *TriCell) traceNegativeSlope(ray math.Ray) Intersection {
	dz := ray.Dir.Z - ray.Dir.X*c.dx0 - ray.Dir.Y*c.dy0
	if dz > 0 {
		return Miss()
	}

	t := (c.z00 + c.dx0*(ray.Pos.X-c.x) + c.dy0*(ray.Pos.Y-c.y) - ray.Pos.Z) / dz
	if t > 0 {
		hit := ray.Point(t)
		relX := hit.X - c.x
		relY := hit.Y - c.y
		if InNegative(relX, relY) {
			return Intersection{Pos: hit, GN: c.gn0, SN: c.ShadingNormal(relX, relY), Time: t}
		}
	}
	return Miss()
}

func (c *TriCell) tracePositiveSlope(ray math.Ray) Intersection {
	dz := ray.Dir.Z - ray.Dir.X*c.dx1 - ray.Dir.Y*c.dy1
	if dz > 0 {
		return Miss()
	}

	t := (c.z11 + c.dx1*(ray.Pos.X-c.x-1) + c.dy1*(ray.Pos.Y-c.y-1) - ray.Pos.Z) / dz
	if t > 0 {
		hit := ray.Point(t)
		relX := hit.X - c.x
		relY := hit.Y - c.y
		if InPositive(relX, relY) {
			return Intersection{Pos: hit, GN: c.gn1, SN: c.ShadingNormal(relX, relY), Time: t}
		}
	}
	return Miss()
}

// TraceRay tests the triangle facing the direction of travel first.
func (c *TriCell) TraceRay(ray math.Ray) Intersection {
	if ray.Dir.X+ray.Dir.Y > 0 {
		if hit := c.traceNegative(ray); hit.Valid() {
			return hit
		}
		return c.tracePositive(ray)
	}
	if hit := c.tracePositive(ray); hit.Valid() {
		return hit
	}
	return c.traceNegative(ray)
}

// TraceSlopeRay intersects a ray whose direction is (xdir, ydir, slope).
func (c *TriCell) TraceSlopeRay(ray math.Ray) Intersection {
	if ray.Dir.X+ray.Dir.Y > 0 {
		if hit := c.traceNegativeSlope(ray); hit.Valid() {
			return hit
		}
		return c.tracePositiveSlope(ray)
	}
	if hit := c.tracePositiveSlope(ray); hit.Valid() {
		return hit
	}
	return c.traceNegativeSlope(ray)
}

// TraceShadowRay reports whether TraceRay hits.
func (c *TriCell) TraceShadowRay(ray math.Ray) bool {
	return c.TraceRay(ray).Valid()
}
