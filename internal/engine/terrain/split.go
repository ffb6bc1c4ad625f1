package terrain

import "math"

// OptSplitX searches for the column that best splits the sample range
// [xmin,xmax)×[ymin,ymax) into two boxes. Each side is scored by its
// height range times its side edge plus its footprint area, weighted by
// that area; the lowest total wins. ok is false when the range has no
// interior column.
func (h *Heightmap) OptSplitX(xmin, xmax, ymin, ymax int) (score float32, split int, ok bool) {
	return optSplit(xmax-xmin, ymax-ymin, xmin,
		func(i int) float32 { return h.MaxHeightX(xmin+i, ymin, ymax) },
		func(i int) float32 { return h.MinHeightX(xmin+i, ymin, ymax) },
	)
}

// OptSplitY is OptSplitX along the y axis.
func (h *Heightmap) OptSplitY(xmin, xmax, ymin, ymax int) (score float32, split int, ok bool) {
	return optSplit(ymax-ymin, xmax-xmin, ymin,
		func(i int) float32 { return h.MaxHeightY(ymin+i, xmin, xmax) },
		func(i int) float32 { return h.MinHeightY(ymin+i, xmin, xmax) },
	)
}

// optSplit scores the n-2 interior lines of a range n samples long and
// width samples wide. lineMax and lineMin report the bounds of line i.
func optSplit(n, width, offset int, lineMax, lineMin func(i int) float32) (float32, int, bool) {
	if n < 3 {
		return math.MaxFloat32, 0, false
	}

	maxPos := make([]float32, n-2)
	minPos := make([]float32, n-2)
	maxNeg := make([]float32, n-2)
	minNeg := make([]float32, n-2)

	hi := lineMax(0)
	lo := lineMin(0)
	for i := 1; i < n-1; i++ {
		hi = max(hi, lineMax(i))
		lo = min(lo, lineMin(i))
		maxPos[i-1] = hi
		minPos[i-1] = lo
	}

	hi = lineMax(n - 1)
	lo = lineMin(n - 1)
	for i := n - 2; i >= 1; i-- {
		hi = max(hi, lineMax(i))
		lo = min(lo, lineMin(i))
		maxNeg[i-1] = hi
		minNeg[i-1] = lo
	}

	best := float32(math.MaxFloat32)
	split := 0
	found := false
	w := float32(width)

	for i := 1; i < n-1; i++ {
		rangePos := maxPos[i-1] - minPos[i-1]
		rangeNeg := maxNeg[i-1] - minNeg[i-1]

		edgePos := float32(i) + w
		edgeNeg := float32(n-1-i) + w
		areaPos := float32(i) * w
		areaNeg := float32(n-1-i) * w

		scorePos := rangePos*edgePos + areaPos
		scoreNeg := rangeNeg*edgeNeg + areaNeg
		score := scorePos*areaPos + scoreNeg*areaNeg

		if score < best {
			best = score
			split = offset + i
			found = true
		}
	}

	return best, split, found
}
