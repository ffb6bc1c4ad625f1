package lighting

import (
	"math"

	pmath "github.com/Faultbox/prayground/pkg/math"
)

// SunDirection converts an azimuth (degrees counter-clockwise from +x) and
// an elevation above the horizon (degrees) into a unit vector pointing
// towards the sun. z is up.
func SunDirection(azimuth, elevation float32) pmath.Vec3 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	return pmath.Vec3{
		X: float32(math.Cos(elRad) * math.Cos(azRad)),
		Y: float32(math.Cos(elRad) * math.Sin(azRad)),
		Z: float32(math.Sin(elRad)),
	}
}
