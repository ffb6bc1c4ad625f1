package scene

import (
	stdmath "math"

	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

// ShadowEpsilon widens the height bounds tested by shadow traversal.
const ShadowEpsilon = 0.001

// SplitStrategy chooses kd-tree split planes.
type SplitStrategy int

const (
	// SplitEven halves the longer side of each node.
	SplitEven SplitStrategy = iota
	// SplitSAH uses the heightmap's surface-area heuristic
	// (terrain.Heightmap.OptSplitX/OptSplitY).
	SplitSAH
)

func (s SplitStrategy) String() string {
	if s == SplitSAH {
		return "sah"
	}
	return "even"
}

// kdNode is an arena entry. Leaves have cell >= 0; internal nodes have
// cell == -1 and both children set. left covers coordinates below split.
type kdNode struct {
	left, right int32
	cell        int32

	split float32
	axisY bool

	minHeight float32
	maxHeight float32
}

// KDTree splits the grid in two along alternating axis-aligned planes
// down to single cells and traverses front to back.
type KDTree struct {
	lightSet

	split SplitStrategy

	nodes []kdNode
	cells []terrain.TriCell
	root  int32
	depth int

	// grid extent of the root
	xmax, ymax float32
}

var _ Scene = (*KDTree)(nil)

// NewKDTree creates an empty kd-tree scene.
func NewKDTree(opts Options) *KDTree {
	return &KDTree{
		lightSet: lightSet{bias: opts.ShadowBias},
		split:    opts.Split,
		root:     -1,
	}
}

// AssignHeightmap builds the tree over the whole grid.
func (s *KDTree) AssignHeightmap(hm *terrain.Heightmap) {
	checkGrid(hm)

	xmax := hm.Width() - 1
	ymax := hm.Height() - 1
	s.xmax = float32(xmax)
	s.ymax = float32(ymax)

	ncells := xmax * ymax
	s.cells = make([]terrain.TriCell, 0, ncells)
	s.nodes = make([]kdNode, 0, 2*ncells-1)
	s.depth = 0
	s.root = s.build(hm, 0, xmax, 0, ymax, 1)
}

func (s *KDTree) build(hm *terrain.Heightmap, xmin, xmax, ymin, ymax, depth int) int32 {
	s.depth = max(s.depth, depth)

	idx := int32(len(s.nodes))
	s.nodes = append(s.nodes, kdNode{left: -1, right: -1, cell: -1})

	if xmax == xmin+1 && ymax == ymin+1 {
		var c terrain.TriCell
		c.SetFromHeightmap(hm, xmin, ymin)
		s.cells = append(s.cells, c)

		n := &s.nodes[idx]
		n.cell = int32(len(s.cells) - 1)
		n.minHeight = c.MinHeight()
		n.maxHeight = c.MaxHeight()
		return idx
	}

	axisY, split := s.chooseSplit(hm, xmin, xmax, ymin, ymax)

	var left, right int32
	if axisY {
		left = s.build(hm, xmin, xmax, ymin, split, depth+1)
		right = s.build(hm, xmin, xmax, split, ymax, depth+1)
	} else {
		left = s.build(hm, xmin, split, ymin, ymax, depth+1)
		right = s.build(hm, split, xmax, ymin, ymax, depth+1)
	}

	n := &s.nodes[idx]
	n.left = left
	n.right = right
	n.split = float32(split)
	n.axisY = axisY
	n.minHeight = min(s.nodes[left].minHeight, s.nodes[right].minHeight)
	n.maxHeight = max(s.nodes[left].maxHeight, s.nodes[right].maxHeight)
	return idx
}

// chooseSplit picks the axis with the lower score. An axis one cell wide
// cannot be split and scores MaxFloat32. Under SplitEven the score of an
// axis is the extent of the other one, so the longer side is halved and
// ties go to y.
func (s *KDTree) chooseSplit(hm *terrain.Heightmap, xmin, xmax, ymin, ymax int) (axisY bool, split int) {
	scoreX := float32(stdmath.MaxFloat32)
	scoreY := float32(stdmath.MaxFloat32)
	splitX, splitY := 0, 0

	if xmax > xmin+1 {
		splitX = (xmax + xmin) / 2
		scoreX = float32(ymax - ymin)
		if s.split == SplitSAH {
			if sc, sp, ok := hm.OptSplitX(xmin, xmax+1, ymin, ymax+1); ok {
				scoreX, splitX = sc, sp
			}
		}
	}

	if ymax > ymin+1 {
		splitY = (ymin + ymax) / 2
		scoreY = float32(xmax - xmin)
		if s.split == SplitSAH {
			if sc, sp, ok := hm.OptSplitY(xmin, xmax+1, ymin, ymax+1); ok {
				scoreY, splitY = sc, sp
			}
		}
	}

	if scoreX < scoreY {
		return false, splitX
	}
	return true, splitY
}

// findSplit returns the child the ray visits first, the other child and
// the ray parameter at the split plane.
func (n *kdNode) findSplit(ray math.Ray) (near, far int32, tSplit float32) {
	if n.axisY {
		tSplit = ray.TimeToY(n.split)
		if ray.Dir.Y > 0 {
			return n.left, n.right, tSplit
		}
		return n.right, n.left, tSplit
	}

	tSplit = ray.TimeToX(n.split)
	if ray.Dir.X > 0 {
		return n.left, n.right, tSplit
	}
	return n.right, n.left, tSplit
}

// trace visits the ray interval [tmin, tmax] front to back. zmin is the
// lowest ray height on the interval; nodes entirely below it are skipped.
func (s *KDTree) trace(idx int32, ray math.Ray, tmin, tmax, zmin float32) terrain.Intersection {
	n := &s.nodes[idx]
	if zmin > n.maxHeight {
		return terrain.Miss()
	}
	if n.cell >= 0 {
		return s.cells[n.cell].TraceRay(ray)
	}

	near, far, tSplit := n.findSplit(ray)
	result := terrain.Miss()

	if tmin <= tSplit {
		tmaxNear := tmax
		zminNear := zmin
		if tSplit < tmax {
			tmaxNear = tSplit
			if ray.Dir.Z < 0 {
				zminNear = ray.ZAt(tmaxNear)
			}
		}
		result = s.trace(near, ray, tmin, tmaxNear, zminNear)
	}

	if result.Valid() {
		return result
	}

	if tSplit <= tmax {
		tminFar := tmin
		zminFar := zmin
		if tSplit > tmin {
			tminFar = tSplit
			if ray.Dir.Z > 0 {
				zminFar = ray.ZAt(tminFar)
			}
		}
		result = s.trace(far, ray, tminFar, tmax, zminFar)
	}

	return result
}

// traceShadow is trace with a height range [zmin, zmax] per interval. An
// interval above the node cannot hit it; one entirely below it must have
// crossed the surface already.
func (s *KDTree) traceShadow(idx int32, ray math.Ray, tmin, tmax, zmin, zmax float32) bool {
	n := &s.nodes[idx]
	if zmin > n.maxHeight-ShadowEpsilon {
		return false
	}
	if zmax < n.minHeight+ShadowEpsilon {
		return true
	}
	if n.cell >= 0 {
		return s.cells[n.cell].TraceShadowRay(ray)
	}

	near, far, tSplit := n.findSplit(ray)

	if tmin <= tSplit {
		tmaxNear := tmax
		zminNear, zmaxNear := zmin, zmax
		if tSplit < tmax {
			tmaxNear = tSplit
			if ray.Dir.Z < 0 {
				zminNear = ray.ZAt(tmaxNear)
			} else {
				zmaxNear = ray.ZAt(tmaxNear)
			}
		}
		if s.traceShadow(near, ray, tmin, tmaxNear, zminNear, zmaxNear) {
			return true
		}
	}

	if tSplit <= tmax {
		tminFar := tmin
		zminFar, zmaxFar := zmin, zmax
		if tSplit > tmin {
			tminFar = tSplit
			if ray.Dir.Z > 0 {
				zminFar = ray.ZAt(tminFar)
			} else {
				zmaxFar = ray.ZAt(tminFar)
			}
		}
		if s.traceShadow(far, ray, tminFar, tmax, zminFar, zmaxFar) {
			return true
		}
	}

	return false
}

// traceSlopeColumn walks the column's horizontal ray through the tree.
// Rays before start are settled. At a leaf, rays from start on are traced
// until the first miss: with slopes ascending, every later ray passes
// above this cell too. It returns the advanced cursor.
func (s *KDTree) traceSlopeColumn(idx int32, col *SlopeRayColumn, xy math.Ray, hits []terrain.Intersection, tmin, tmax float32, start int) int {
	if start >= len(col.ZDirs) {
		return start
	}

	n := &s.nodes[idx]

	slope := col.ZDirs[start]
	zmin := col.Origin.Z + tmin*slope
	zmax := col.Origin.Z + tmax*slope
	zmin = min(zmin, zmax)

	if zmin > n.maxHeight {
		return start
	}

	if n.cell >= 0 {
		cell := &s.cells[n.cell]
		for ; start < len(col.ZDirs); start++ {
			hit := cell.TraceRay(col.Ray(start))
			if !hit.Valid() {
				break
			}
			hits[start] = hit
		}
		return start
	}

	near, far, tSplit := n.findSplit(xy)

	if tmin <= tSplit {
		start = s.traceSlopeColumn(near, col, xy, hits, tmin, min(tSplit, tmax), start)
	}
	if tSplit <= tmax {
		start = s.traceSlopeColumn(far, col, xy, hits, max(tSplit, tmin), tmax, start)
	}
	return start
}

// clip intersects ray with the grid footprint and returns the interval
// and the ray heights at its ends, ordered low to high.
func (s *KDTree) clip(ray math.Ray) (tmin, tmax, zlo, zhi float32, ok bool) {
	tmin, tmax, ok = ray.TimeInRect(0, s.xmax, 0, s.ymax)
	if !ok {
		return 0, 0, 0, 0, false
	}
	zlo = ray.ZAt(tmin)
	zhi = ray.ZAt(tmax)
	if zlo > zhi {
		zlo, zhi = zhi, zlo
	}
	return tmin, tmax, zlo, zhi, true
}

// TraceIntersection clips the ray to the grid and returns the first hit.
func (s *KDTree) TraceIntersection(ray math.Ray) terrain.Intersection {
	tmin, tmax, zmin, _, ok := s.clip(ray)
	if !ok {
		return terrain.Miss()
	}
	return s.trace(s.root, ray, tmin, tmax, zmin)
}

// TraceRay shades the first hit; rays that miss the grid are black.
func (s *KDTree) TraceRay(ray math.Ray) lighting.Color {
	return s.shade(s, s.TraceIntersection(ray))
}

// TraceShadowRay reports whether the ray is blocked inside the grid.
func (s *KDTree) TraceShadowRay(ray math.Ray) bool {
	tmin, tmax, zmin, zmax, ok := s.clip(ray)
	if !ok {
		return false
	}
	return s.traceShadow(s.root, ray, tmin, tmax, zmin, zmax)
}

// TraceRayColumn traces each ray on its own.
func (s *KDTree) TraceRayColumn(col RayColumn, out []lighting.Color) {
	traceRayColumn(s, col, out)
}

// TraceSlopeIntersections traces a whole slope column in one traversal,
// writing one intersection per slope into hits. Rays the traversal never
// settles are misses.
func (s *KDTree) TraceSlopeIntersections(col SlopeRayColumn, hits []terrain.Intersection) {
	for i := range hits[:len(col.ZDirs)] {
		hits[i] = terrain.Miss()
	}

	xy := col.XYRay()
	tmin, tmax, ok := xy.TimeInRect(0, s.xmax, 0, s.ymax)
	if !ok {
		return
	}
	s.traceSlopeColumn(s.root, &col, xy, hits, tmin, tmax, 0)
}

// TraceSlopeRayColumn shades the hits of TraceSlopeIntersections.
func (s *KDTree) TraceSlopeRayColumn(col SlopeRayColumn, out []lighting.Color) {
	hits := make([]terrain.Intersection, len(col.ZDirs))
	s.TraceSlopeIntersections(col, hits)
	for i := range hits {
		out[i] = s.shade(s, hits[i])
	}
}

// Bounds returns the root height bounds.
func (s *KDTree) Bounds() (lo, hi float32) {
	n := &s.nodes[s.root]
	return n.minHeight, n.maxHeight
}

// Stats reports arena sizes and tree depth.
func (s *KDTree) Stats() Stats {
	return Stats{Cells: len(s.cells), Nodes: len(s.nodes), Depth: s.depth}
}
