package math

import (
	"math"
	"testing"
)

func TestVec2Normalize(t *testing.T) {
	if got := (Vec2{3, 4}).Normalize(); got != (Vec2{0.6, 0.8}) {
		t.Errorf("Vec2.Normalize() = %v, want {0.6 0.8}", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Vec2.Normalize() of zero = %v", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeIdempotent(t *testing.T) {
	vectors := []Vec3{
		{1, 0, 0},
		{0.6, 0.8, 0},
		{1, 2, 3},
		{-4, 0.5, 7},
		{1e-3, -2e-3, 5e-4},
	}

	for _, v := range vectors {
		n := v.Normalize()
		nn := n.Normalize()
		if d := nn.Sub(n).Length(); d > 1e-6 {
			t.Errorf("Normalize(%v) drifted by %g on second pass", v, d)
		}
		if l := n.Length(); math.Abs(float64(l)-1) > 1e-6 {
			t.Errorf("Normalize(%v).Length() = %v, want 1", v, l)
		}
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	var zero Vec3
	if got := zero.Normalize(); got != zero {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := zero.NormalizeXY(); got != zero {
		t.Errorf("NormalizeXY(zero) = %v, want zero", got)
	}
}

func TestVec3NormalizeXY(t *testing.T) {
	v := Vec3{3, 4, 10}.NormalizeXY()
	if l := v.LengthXY(); math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("LengthXY() = %v, want 1", l)
	}
	if v.Z != 10 {
		t.Errorf("NormalizeXY changed Z to %v", v.Z)
	}
}

func TestVec3Slope(t *testing.T) {
	v := Vec3{3, 4, -10}
	if got := v.Slope(); got != -2 {
		t.Errorf("Slope() = %v, want -2", got)
	}
}

func TestVec3RotateZ(t *testing.T) {
	got := Vec3{1, 0, 5}.RotateZ(math.Pi / 2)
	want := Vec3{0, 1, 5}
	if got.Sub(want).Length() > 1e-6 {
		t.Errorf("RotateZ(pi/2) = %v, want %v", got, want)
	}
}

func TestVec3RotateXY(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		angle float32
		want  Vec3
	}{
		{"pitch up", Vec3{1, 0, 0}, math.Pi / 2, Vec3{0, 0, 1}},
		{"pitch down", Vec3{0, 1, 0}, -math.Pi / 4, Vec3{0, float32(math.Sqrt2 / 2), -float32(math.Sqrt2 / 2)}},
		{"keeps heading", Vec3{0.6, 0.8, 0}, math.Pi / 6, Vec3{0.6 * 0.8660254, 0.8 * 0.8660254, 0.5}},
		{"straight up", Vec3{0, 0, 1}, math.Pi / 2, Vec3{-1, 0, 0}},
		{"straight down", Vec3{0, 0, -1}, math.Pi / 2, Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.RotateXY(tt.angle)
			if got.Sub(tt.want).Length() > 1e-5 {
				t.Errorf("RotateXY() = %v, want %v", got, tt.want)
			}
			if l := got.Length(); math.Abs(float64(l-tt.v.Length())) > 1e-5 {
				t.Errorf("RotateXY changed length to %v", l)
			}
		})
	}
}

func TestVec3RotateXYVerticalRoundTrip(t *testing.T) {
	v := Vec3{0, 0, 1}.RotateXY(0.1).RotateXY(-0.1)
	for _, c := range []float32{v.X, v.Y, v.Z} {
		if math.IsNaN(float64(c)) {
			t.Fatalf("RotateXY produced %v", v)
		}
	}
	if l := v.Length(); math.Abs(float64(l-1)) > 1e-5 {
		t.Errorf("length %v after pitching a vertical vector", l)
	}
}
