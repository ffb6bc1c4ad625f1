package math

import (
	"math"
	"testing"
)

func TestRayInRange(t *testing.T) {
	unbounded := NewRay(Vec3{}, Vec3{1, 0, 0})
	segment := NewSegment(Vec3{}, Vec3{1, 0, 0}, 2)

	tests := []struct {
		name string
		ray  Ray
		t    float32
		want bool
	}{
		{"unbounded positive", unbounded, 100, true},
		{"unbounded zero", unbounded, 0, false},
		{"unbounded negative", unbounded, -1, false},
		{"segment inside", segment, 1.5, true},
		{"segment at end", segment, 2, false},
		{"segment beyond", segment, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ray.InRange(tt.t); got != tt.want {
				t.Errorf("InRange(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRayTimeInRect(t *testing.T) {
	tests := []struct {
		name     string
		ray      Ray
		wantOK   bool
		wantTMin float32
		wantTMax float32
	}{
		{
			name:     "crosses from outside",
			ray:      NewRay(Vec3{-1, 0.5, 0}, Vec3{1, 0, 0}),
			wantOK:   true,
			wantTMin: 1,
			wantTMax: 3,
		},
		{
			name:     "starts inside",
			ray:      NewRay(Vec3{0.5, 0.5, 3}, Vec3{1, 1, -1}),
			wantOK:   true,
			wantTMin: 0,
			wantTMax: 1.5,
		},
		{
			name:   "points away",
			ray:    NewRay(Vec3{-1, 0.5, 0}, Vec3{-1, 0, 0}),
			wantOK: false,
		},
		{
			name:   "misses corner",
			ray:    NewRay(Vec3{-1, 3, 0}, Vec3{1, 1, 0}),
			wantOK: false,
		},
		{
			name:     "vertical inside",
			ray:      NewRay(Vec3{0.5, 0.5, 10}, Vec3{0, 0, -1}),
			wantOK:   true,
			wantTMin: 0,
			wantTMax: float32(math.Inf(1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmin, tmax, ok := tt.ray.TimeInRect(0, 2, 0, 2)
			if ok != tt.wantOK {
				t.Fatalf("TimeInRect() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if tmin != tt.wantTMin || tmax != tt.wantTMax {
				t.Errorf("TimeInRect() = [%v, %v], want [%v, %v]", tmin, tmax, tt.wantTMin, tt.wantTMax)
			}
		})
	}
}

func TestRayVerticalOutsideRect(t *testing.T) {
	r := NewRay(Vec3{5, 0.5, 10}, Vec3{0, 0, -1})
	if _, _, ok := r.TimeInRect(0, 2, 0, 2); ok {
		t.Error("vertical ray outside the rectangle should not clip")
	}
}

func TestRayPoint(t *testing.T) {
	r := NewRay(Vec3{1, 2, 3}, Vec3{0, 0, -1})
	if got := r.Point(3); got != (Vec3{1, 2, 0}) {
		t.Errorf("Point(3) = %v", got)
	}
	if got := r.ZAt(1); got != 2 {
		t.Errorf("ZAt(1) = %v, want 2", got)
	}
}
