// Package math provides the vector and ray primitives used by the tracer.
// The z axis points up; x and y span the heightfield grid.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar.
func (v Vec3) Div(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// LengthXY returns the magnitude of the horizontal component.
func (v Vec3) LengthXY() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector. A zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l > 0 {
		return Vec3{v.X / l, v.Y / l, v.Z / l}
	}
	return v
}

// NormalizeXY scales v so that its horizontal component has unit length.
// Z is left untouched.
func (v Vec3) NormalizeXY() Vec3 {
	l := v.LengthXY()
	if l > 0 {
		return Vec3{v.X / l, v.Y / l, v.Z}
	}
	return v
}

// Slope returns the vertical rise per unit of horizontal travel.
func (v Vec3) Slope() float32 {
	return v.Z / v.LengthXY()
}

// RotateZ rotates v counter-clockwise around the world z axis.
func (v Vec3) RotateZ(angle float32) Vec3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.Y*c + v.X*s,
		Z: v.Z,
	}
}

// RotateXY pitches v around the horizontal axis cross(v, z), keeping its
// heading. Positive angles tilt v upwards. A vertical v has no heading and
// is pitched as if it faced +x.
func (v Vec3) RotateXY(angle float32) Vec3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	heading := v.XY()
	curXY := heading.Length()
	if curXY == 0 {
		heading = Vec2{X: 1}
	} else {
		heading = Vec2{heading.X / curXY, heading.Y / curXY}
	}
	newXY := curXY*c - v.Z*s

	return Vec3{
		X: newXY * heading.X,
		Y: newXY * heading.Y,
		Z: v.Z*c + curXY*s,
	}
}

// XY returns the horizontal components as Vec2.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// TimeInRect clips the horizontal ray starting at v with direction
// (xdir, ydir) against the rectangle [xmin,xmax]×[ymin,ymax].
func (v Vec3) TimeInRect(xdir, ydir, xmin, xmax, ymin, ymax float32) (tmin, tmax float32, ok bool) {
	return NewRay(v, Vec3{xdir, ydir, 0}).TimeInRect(xmin, xmax, ymin, ymax)
}
