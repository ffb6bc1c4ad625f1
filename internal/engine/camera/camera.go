// Package camera provides the viewer pose and turns image coordinates into
// rays, ray columns and slope columns.
package camera

import (
	gomath "math"

	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

// maxPitchZ keeps the view direction away from straight up or down, where
// the horizontal heading is undefined.
const maxPitchZ = 0.995

var worldUp = math.Vec3{Z: 1}

// Camera is a pinhole camera with z up. Image x grows to the right and
// image y grows upwards: row 0 is the bottom of the view.
type Camera struct {
	Pos math.Vec3
	Dir math.Vec3

	// FOV is in radians. The image plane at unit distance is tan(FOV/2)
	// wide.
	FOV float32

	Width  int
	Height int
}

// New creates a camera looking along dir. fovDeg is in degrees.
func New(pos, dir math.Vec3, fovDeg float32, width, height int) *Camera {
	return &Camera{
		Pos:    pos,
		Dir:    dir.Normalize(),
		FOV:    fovDeg * gomath.Pi / 180,
		Width:  width,
		Height: height,
	}
}

// Basis returns the forward, right and up unit vectors.
func (c *Camera) Basis() (fwd, right, up math.Vec3) {
	fwd = c.Dir.Normalize()
	right = fwd.Cross(worldUp).Normalize()
	up = right.Cross(fwd)
	return fwd, right, up
}

// Aspect returns width over height.
func (c *Camera) Aspect() float32 {
	return float32(c.Width) / float32(c.Height)
}

// Scale returns tan(FOV/2), the half-width of the image plane at unit
// distance.
func (c *Camera) Scale() float32 {
	return float32(gomath.Tan(float64(c.FOV) / 2))
}

// view is the per-frame projection state shared by the ray generators.
type view struct {
	fwd, right, up math.Vec3
	xscale         float32
	yscale         float32
	w, h           float32
}

func (c *Camera) view() view {
	fwd, right, up := c.Basis()
	s := c.Scale()
	return view{
		fwd:    fwd,
		right:  right,
		up:     up,
		xscale: s,
		yscale: s / c.Aspect(),
		w:      float32(c.Width),
		h:      float32(c.Height),
	}
}

func (v *view) xrel(x float32) float32 { return x/v.w - 0.5 }
func (v *view) yrel(y float32) float32 { return y/v.h - 0.5 }

// PixelDir returns the unit direction through image point (x, y).
// Coordinates are in pixels and may be fractional.
func (c *Camera) PixelDir(x, y float32) math.Vec3 {
	v := c.view()
	return v.fwd.
		Add(v.right.Scale(v.xrel(x) * v.xscale)).
		Add(v.up.Scale(v.yrel(y) * v.yscale)).
		Normalize()
}

// PixelRay returns the primary ray for pixel (x, y).
func (c *Camera) PixelRay(x, y int) math.Ray {
	return math.NewRay(c.Pos, c.PixelDir(float32(x), float32(y)))
}

// ColumnDirs fills dirs with the unit directions of image column x for
// rows y0, y0+1, ... and returns the column's unit horizontal heading.
func (c *Camera) ColumnDirs(x float32, y0 int, dirs []math.Vec3) math.Vec2 {
	v := c.view()
	center := v.fwd.Add(v.right.Scale(v.xrel(x) * v.xscale))

	for i := range dirs {
		y := float32(y0 + i)
		dirs[i] = center.Add(v.up.Scale(v.yrel(y) * v.yscale)).Normalize()
	}

	return center.XY().Normalize()
}

// Slopes fills zdirs with the vertical slope of each image row along the
// central column. Rows go bottom to top, so the slopes ascend.
func (c *Camera) Slopes(zdirs []float32) {
	v := c.view()
	for y := range zdirs {
		zdirs[y] = v.fwd.Add(v.up.Scale(v.yrel(float32(y)) * v.yscale)).Slope()
	}
}

// ColumnHeading returns the unit horizontal heading of image column x.
// Every slope column of a frame shares the slopes from Slopes and differs
// only in heading.
func (c *Camera) ColumnHeading(x float32) math.Vec2 {
	v := c.view()
	return v.fwd.Add(v.right.Scale(v.xrel(x) * v.xscale)).XY().Normalize()
}

// Move translates the camera along its view direction.
func (c *Camera) Move(dist float32) {
	c.Pos = c.Pos.Add(c.Dir.Scale(dist))
}

// Rotate yaws the view around z, then pitches it. A pitch that would
// bring the view near or past vertical is dropped.
func (c *Camera) Rotate(yaw, pitch float32) {
	dir := c.Dir.RotateZ(yaw)
	if pitch != 0 {
		pitched := dir.RotateXY(pitch).Normalize()
		sameHeading := pitched.X*dir.X+pitched.Y*dir.Y > 0
		if sameHeading && abs32(pitched.Z) < maxPitchZ {
			dir = pitched
		}
	}
	c.Dir = dir.Normalize()
}

// ClampAboveTerrain lifts the camera so it stays at least clearance above
// the interpolated terrain height below it. It reports whether the
// position changed.
func (c *Camera) ClampAboveTerrain(hm *terrain.Heightmap, clearance float32) bool {
	ground := hm.Interpolate(c.Pos.X, c.Pos.Y) + clearance
	if c.Pos.Z >= ground {
		return false
	}
	c.Pos.Z = ground
	return true
}

// Resize changes the image size.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
