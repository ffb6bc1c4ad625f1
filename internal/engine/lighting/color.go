package lighting

// Color is a linear RGB triple, nominally in [0,1].
type Color struct {
	R, G, B float32
}

// Add returns c + other.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul returns the channel-wise product.
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns c * s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Black is the zero color.
var Black = Color{}
