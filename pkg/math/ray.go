package math

// Ray is a half-line or, when TMax >= 0, a segment.
type Ray struct {
	Pos Vec3
	Dir Vec3

	// TMax bounds the valid parameter range; negative means unbounded.
	TMax float32
}

// NewRay creates an unbounded ray.
func NewRay(pos, dir Vec3) Ray {
	return Ray{Pos: pos, Dir: dir, TMax: -1}
}

// NewSegment creates a ray limited to parameters below tmax.
func NewSegment(pos, dir Vec3, tmax float32) Ray {
	return Ray{Pos: pos, Dir: dir, TMax: tmax}
}

// Point returns the position at parameter t.
func (r Ray) Point(t float32) Vec3 {
	return r.Pos.Add(r.Dir.Scale(t))
}

// InRange reports whether t lies in the ray's open valid range.
func (r Ray) InRange(t float32) bool {
	return t > 0 && (t < r.TMax || r.TMax < 0)
}

// WithTMax returns a copy of r bounded at tmax.
func (r Ray) WithTMax(tmax float32) Ray {
	r.TMax = tmax
	return r
}

// TimeToX returns the parameter at which the ray crosses the plane x = const.
func (r Ray) TimeToX(x float32) float32 {
	return (x - r.Pos.X) / r.Dir.X
}

// TimeToY returns the parameter at which the ray crosses the plane y = const.
func (r Ray) TimeToY(y float32) float32 {
	return (y - r.Pos.Y) / r.Dir.Y
}

// ZAt returns the height of the ray at parameter t.
func (r Ray) ZAt(t float32) float32 {
	return r.Pos.Z + r.Dir.Z*t
}

// TimeInRect clips the ray against the vertical prism over
// [xmin,xmax]×[ymin,ymax] using the x and y slabs. The entry time is
// clamped to zero. Zero direction components yield infinite slab bounds
// and are resolved by ordinary IEEE-754 comparisons.
func (r Ray) TimeInRect(xmin, xmax, ymin, ymax float32) (tmin, tmax float32, ok bool) {
	tminX := (xmin - r.Pos.X) / r.Dir.X
	tmaxX := (xmax - r.Pos.X) / r.Dir.X
	tminY := (ymin - r.Pos.Y) / r.Dir.Y
	tmaxY := (ymax - r.Pos.Y) / r.Dir.Y

	if tminX > tmaxX {
		tminX, tmaxX = tmaxX, tminX
	}
	if tmaxX < 0 {
		return 0, 0, false
	}

	if tminY > tmaxY {
		tminY, tmaxY = tmaxY, tminY
	}
	if tmaxY < 0 {
		return 0, 0, false
	}

	// A NaN operand keeps the x bound, unlike the builtin min/max.
	tmin = tminX
	if tmin < tminY {
		tmin = tminY
	}
	tmax = tmaxX
	if tmaxY < tmax {
		tmax = tmaxY
	}

	if tmin > tmax {
		return 0, 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, tmax, true
}
