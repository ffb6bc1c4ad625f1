package scene

import (
	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

const (
	// Ambient is the fraction of albedo added regardless of lighting.
	// Only shadow rays are traced, so this stands in for indirect light.
	Ambient = 0.25

	// DefaultShadowBias offsets grazing shadow rays by one cell.
	DefaultShadowBias = 1.0
)

// NormalColor maps a unit normal to RGB as 0.5*n + 0.5 per channel.
func NormalColor(n math.Vec3) lighting.Color {
	return lighting.Color{
		R: 0.5*n.X + 0.5,
		G: 0.5*n.Y + 0.5,
		B: 0.5*n.Z + 0.5,
	}
}

// occluder is what the shader needs from a scene.
type occluder interface {
	TraceShadowRay(ray math.Ray) bool
	TraceIntersection(ray math.Ray) terrain.Intersection
}

// lightSet is the light list shared by all scene kinds.
type lightSet struct {
	lights []lighting.Light
	bias   float32
}

// AssignLightSource appends a light.
func (ls *lightSet) AssignLightSource(l lighting.Light) {
	ls.lights = append(ls.lights, l)
}

// ModifyLightSource rotates light idx. It panics if idx is out of range.
func (ls *lightSet) ModifyLightSource(idx int, yaw, pitch float32) {
	ls.lights[idx].Rotate(yaw, pitch)
}

// Lights returns the assigned lights.
func (ls *lightSet) Lights() []lighting.Light {
	return ls.lights
}

// shade converts a hit into a color. The normal-mapped albedo gets a
// constant ambient share plus one diffuse term per unoccluded light.
//
// A light that the shading normal faces but the geometric normal does not
// is tested with a shadow ray pushed bias cells towards the light, so that
// smooth normals on faceted terrain do not shadow themselves. That ray
// uses a nearest-hit query and counts as unoccluded once it leaves the
// grid.
func (ls *lightSet) shade(o occluder, hit terrain.Intersection) lighting.Color {
	if !hit.Valid() {
		return lighting.Black
	}

	albedo := NormalColor(hit.SN)
	result := albedo.Scale(Ambient)

	for _, l := range ls.lights {
		dir := l.Direction(hit.Pos)

		obliquityG := hit.GN.Dot(dir)
		obliquityS := hit.SN.Dot(dir)
		if obliquityS <= 0 {
			continue
		}

		var occluded bool
		if obliquityG > 0 {
			occluded = o.TraceShadowRay(math.NewRay(hit.Pos, dir))
		} else {
			biased := math.NewRay(hit.Pos.Add(dir.Scale(ls.bias)), dir)
			occluded = o.TraceIntersection(biased).Valid()
		}

		if !occluded {
			result = result.Add(l.Color().Mul(albedo).Scale(obliquityS))
		}
	}

	return result
}
