package terrain

import "github.com/Faultbox/prayground/pkg/math"

// Intersection is the result of a ray query. A negative Time marks a miss.
type Intersection struct {
	Pos math.Vec3
	GN  math.Vec3 // geometric normal
	SN  math.Vec3 // shading normal
	// Time is the ray parameter of the hit.
	Time float32
}

// Miss returns the invalid intersection.
func Miss() Intersection {
	return Intersection{Time: -1}
}

// Valid reports whether the intersection is a hit.
func (i Intersection) Valid() bool {
	return i.Time >= 0
}

// Less orders valid hits before misses, then by time.
func (i Intersection) Less(other Intersection) bool {
	return i.Valid() && (!other.Valid() || i.Time < other.Time)
}

// LessEq is the non-strict form of Less; two misses compare equal.
func (i Intersection) LessEq(other Intersection) bool {
	if i.Valid() {
		return !other.Valid() || i.Time <= other.Time
	}
	return !other.Valid()
}
