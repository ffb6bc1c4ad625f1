// Package lighting provides the light sources used for shading.
package lighting

import "github.com/Faultbox/prayground/pkg/math"

// Light is a light source the scene shades against.
type Light interface {
	// Direction returns the unit direction from pos towards the light.
	Direction(pos math.Vec3) math.Vec3
	Color() Color
	// Rotate turns the light by yaw around the z axis, then pitches it.
	Rotate(yaw, pitch float32)
}

// DirectionalLight is a light at infinity.
type DirectionalLight struct {
	dir   math.Vec3
	color Color
}

var _ Light = (*DirectionalLight)(nil)

// NewDirectionalLight creates a light shining from dir. dir is normalized.
func NewDirectionalLight(dir math.Vec3, color Color) *DirectionalLight {
	return &DirectionalLight{dir: dir.Normalize(), color: color}
}

// Direction returns the same direction for every position.
func (l *DirectionalLight) Direction(math.Vec3) math.Vec3 { return l.dir }

// Color returns the light color.
func (l *DirectionalLight) Color() Color { return l.color }

// Rotate applies a yaw then a pitch to the light direction.
func (l *DirectionalLight) Rotate(yaw, pitch float32) {
	l.dir = l.dir.RotateZ(yaw).RotateXY(pitch)
}
