package scene

import (
	"github.com/Faultbox/prayground/internal/engine/lighting"
	"github.com/Faultbox/prayground/internal/engine/terrain"
	"github.com/Faultbox/prayground/pkg/math"
)

// quadNode is an arena entry. Leaves have cell >= 0 and no children;
// internal nodes have cell == -1 and two or four children. Absent
// children are -1.
type quadNode struct {
	children [4]int32
	cell     int32

	minHeight float32
	maxHeight float32

	xmin, xmax float32
	ymin, ymax float32
}

// Quadtree subdivides the grid into quarters down to single cells.
// Strips one cell wide are halved instead.
type Quadtree struct {
	lightSet

	nodes []quadNode
	cells []terrain.TriCell
	root  int32
	depth int
}

var _ Scene = (*Quadtree)(nil)

// NewQuadtree creates an empty quadtree scene.
func NewQuadtree(opts Options) *Quadtree {
	return &Quadtree{lightSet: lightSet{bias: opts.ShadowBias}, root: -1}
}

// AssignHeightmap builds the tree over the whole grid.
func (s *Quadtree) AssignHeightmap(hm *terrain.Heightmap) {
	checkGrid(hm)

	ncells := (hm.Width() - 1) * (hm.Height() - 1)
	s.cells = make([]terrain.TriCell, 0, ncells)
	s.nodes = make([]quadNode, 0, 2*ncells)
	s.depth = 0
	s.root = s.build(hm, 0, hm.Width()-1, 0, hm.Height()-1, 1)
}

func (s *Quadtree) build(hm *terrain.Heightmap, xmin, xmax, ymin, ymax, depth int) int32 {
	s.depth = max(s.depth, depth)

	idx := int32(len(s.nodes))
	s.nodes = append(s.nodes, quadNode{
		children: [4]int32{-1, -1, -1, -1},
		cell:     -1,
		xmin:     float32(xmin),
		xmax:     float32(xmax),
		ymin:     float32(ymin),
		ymax:     float32(ymax),
	})

	children := [4]int32{-1, -1, -1, -1}

	splitX := xmax > xmin+1
	splitY := ymax > ymin+1
	xmid := (xmin + xmax) >> 1
	ymid := (ymin + ymax) >> 1

	switch {
	case splitX && splitY:
		children[0] = s.build(hm, xmin, xmid, ymin, ymid, depth+1)
		children[1] = s.build(hm, xmid, xmax, ymin, ymid, depth+1)
		children[2] = s.build(hm, xmin, xmid, ymid, ymax, depth+1)
		children[3] = s.build(hm, xmid, xmax, ymid, ymax, depth+1)
	case splitX:
		children[0] = s.build(hm, xmin, xmid, ymin, ymax, depth+1)
		children[1] = s.build(hm, xmid, xmax, ymin, ymax, depth+1)
	case splitY:
		children[0] = s.build(hm, xmin, xmax, ymin, ymid, depth+1)
		children[3] = s.build(hm, xmin, xmax, ymid, ymax, depth+1)
	default:
		var c terrain.TriCell
		c.SetFromHeightmap(hm, xmin, ymin)
		s.cells = append(s.cells, c)

		n := &s.nodes[idx]
		n.cell = int32(len(s.cells) - 1)
		n.minHeight = c.MinHeight()
		n.maxHeight = c.MaxHeight()
		return idx
	}

	// s.nodes may have grown; take the pointer after recursion
	n := &s.nodes[idx]
	n.children = children
	first := true
	for _, ch := range children {
		if ch < 0 {
			continue
		}
		child := &s.nodes[ch]
		if first {
			n.minHeight, n.maxHeight = child.minHeight, child.maxHeight
			first = false
			continue
		}
		n.minHeight = min(n.minHeight, child.minHeight)
		n.maxHeight = max(n.maxHeight, child.maxHeight)
	}
	return idx
}

// trace culls node idx with a slab test on its footprint, capped by its
// highest point, then keeps the nearest hit among its children.
func (s *Quadtree) trace(idx int32, ray math.Ray) terrain.Intersection {
	n := &s.nodes[idx]
	if n.cell >= 0 {
		return s.cells[n.cell].TraceRay(ray)
	}

	result := terrain.Miss()

	tminX := (n.xmin - ray.Pos.X) / ray.Dir.X
	tmaxX := (n.xmax - ray.Pos.X) / ray.Dir.X
	tminY := (n.ymin - ray.Pos.Y) / ray.Dir.Y
	tmaxY := (n.ymax - ray.Pos.Y) / ray.Dir.Y

	if tminX > tmaxX {
		tminX, tmaxX = tmaxX, tminX
	}
	if tminY > tmaxY {
		tminY, tmaxY = tmaxY, tminY
	}
	if tminX > tmaxY || tminY > tmaxX {
		return result
	}

	switch {
	case ray.Dir.Z < 0:
		tminZ := (n.maxHeight - ray.Pos.Z) / ray.Dir.Z
		if tminZ > tmaxX || tminZ > tmaxY {
			return result
		}
	case ray.Dir.Z > 0:
		tmaxZ := (n.maxHeight - ray.Pos.Z) / ray.Dir.Z
		if tminX > tmaxZ || tminY > tmaxZ {
			return result
		}
	default:
		if ray.Pos.Z > n.maxHeight {
			return result
		}
	}

	for _, ch := range n.children {
		if ch < 0 {
			continue
		}
		if hit := s.trace(ch, ray); hit.Valid() {
			result = hit
			ray = ray.WithTMax(hit.Time)
		}
	}
	return result
}

// TraceIntersection returns the nearest hit.
func (s *Quadtree) TraceIntersection(ray math.Ray) terrain.Intersection {
	return s.trace(s.root, ray)
}

// TraceRay shades the nearest hit.
func (s *Quadtree) TraceRay(ray math.Ray) lighting.Color {
	return s.shade(s, s.trace(s.root, ray))
}

// TraceShadowRay reports whether a nearest-hit query succeeds.
func (s *Quadtree) TraceShadowRay(ray math.Ray) bool {
	return s.trace(s.root, ray).Valid()
}

// TraceRayColumn traces each ray on its own.
func (s *Quadtree) TraceRayColumn(col RayColumn, out []lighting.Color) {
	traceRayColumn(s, col, out)
}

// TraceSlopeRayColumn traces each ray on its own.
func (s *Quadtree) TraceSlopeRayColumn(col SlopeRayColumn, out []lighting.Color) {
	traceSlopeRayColumn(s, col, out)
}

// Bounds returns the root height bounds.
func (s *Quadtree) Bounds() (lo, hi float32) {
	n := &s.nodes[s.root]
	return n.minHeight, n.maxHeight
}

// Stats reports arena sizes and tree depth.
func (s *Quadtree) Stats() Stats {
	return Stats{Cells: len(s.cells), Nodes: len(s.nodes), Depth: s.depth}
}
