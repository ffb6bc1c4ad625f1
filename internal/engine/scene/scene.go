// Package scene builds spatial acceleration structures over a heightfield
// and traces rays against them.
//
// Three strategies share one contract: a linear grid scan, a quadtree and a
// kd-tree. Structures are built once by AssignHeightmap and are read-only
// afterwards, so any number of goroutines may trace concurrently as long as
// lights are not modified at the same time.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

// Scene is a heightfield with an imposed subdivision structure.
type Scene interface {
	// AssignHeightmap builds the acceleration structure. It panics on grids
	// smaller than 2x2.
	AssignHeightmap(hm *terrain.Heightmap)

	AssignLightSource(l lighting.Light)
	// ModifyLightSource rotates light idx by yaw and pitch.
	ModifyLightSource(idx int, yaw, pitch float32)

	// TraceRay returns the shaded color seen along ray.
	TraceRay(ray math.Ray) lighting.Color
	// TraceIntersection returns the nearest hit along ray.
	TraceIntersection(ray math.Ray) terrain.Intersection
	// TraceShadowRay reports whether anything blocks ray.
	TraceShadowRay(ray math.Ray) bool

	// TraceRayColumn writes one color per direction of col into out.
	TraceRayColumn(col RayColumn, out []lighting.Color)
	// TraceSlopeRayColumn writes one color per slope of col into out.
	TraceSlopeRayColumn(col SlopeRayColumn, out []lighting.Color)

	// Bounds returns the lowest and highest terrain height.
	Bounds() (lo, hi float32)
	Stats() Stats
}

// Stats describes a built structure.
type Stats struct {
	Cells int
	Nodes int
	Depth int
}

// Kind selects a scene strategy.
type Kind int

const (
	KindLinear Kind = iota
	KindQuadtree
	KindKDTree
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown scene type")

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindQuadtree:
		return "quadtree"
	case KindKDTree:
		return "kdtree"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "grid":
		return KindLinear, nil
	case "quadtree", "quad":
		return KindQuadtree, nil
	case "kdtree", "kd", "kd-tree":
		return KindKDTree, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Options tunes scene construction and shading.
type Options struct {
	// ShadowBias is how far a shadow ray is pushed towards the light when
	// the shading normal faces the light but the geometric normal does not.
	// It is measured in grid cells.
	ShadowBias float32
	// Split selects how the kd-tree picks split planes.
	Split SplitStrategy
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		ShadowBias: DefaultShadowBias,
		Split:      SplitEven,
	}
}

// New creates an empty scene of the given kind.
func New(kind Kind, opts Options) (Scene, error) {
	switch kind {
	case KindLinear:
		return NewLinear(opts), nil
	case KindQuadtree:
		return NewQuadtree(opts), nil
	case KindKDTree:
		return NewKDTree(opts), nil
	}
	return nil, fmt.Errorf("scene kind %d: %w", int(kind), ErrUnknownKind)
}

// checkGrid panics when hm has no cells.
func checkGrid(hm *terrain.Heightmap) {
	if hm == nil || hm.Width() < 2 || hm.Height() < 2 {
		panic("scene: heightmap must have at least 2x2 samples")
	}
}

// traceRayColumn is the per-ray fallback for TraceRayColumn.
func traceRayColumn(s Scene, col RayColumn, out []lighting.Color) {
	for i, dir := range col.Dirs {
		out[i] = s.TraceRay(math.NewRay(col.Origin, dir))
	}
}

// traceSlopeRayColumn is the per-ray fallback for TraceSlopeRayColumn.
func traceSlopeRayColumn(s Scene, col SlopeRayColumn, out []lighting.Color) {
	for i := range col.ZDirs {
		out[i] = s.TraceRay(col.Ray(i))
	}
}
