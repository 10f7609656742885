package spatial

import (
	"math"
	"sort"

	"github.com/ciechowoj/haste-go/pkg/core"
)

const leafAxis = 3

// KDTree is a balanced, implicit kd-tree over a fixed set of records: the
// median of the current range always lands at the midpoint index of the
// backing array, so no child pointers are stored — only the split axis per
// node. Build picks the longest axis of the range's bounding box at every
// level, per spec.md §4.6.
type KDTree[T Record] struct {
	data  []T
	points []core.Vec3
	axes  []int8
}

// NewKDTree builds a tree from records. Unlike HashGrid, radius is not
// needed at build time: the tree adapts to whatever radius RadiusQuery is
// later called with.
func NewKDTree[T Record](records []T) *KDTree[T] {
	t := &KDTree[T]{
		data:   append([]T(nil), records...),
		points: make([]core.Vec3, len(records)),
		axes:   make([]int8, len(records)),
	}

	for i, rec := range t.data {
		t.points[i] = rec.Position()
	}

	if len(t.data) > 0 {
		lower, upper := t.points[0], t.points[0]
		for _, p := range t.points {
			lower = minVec3(lower, p)
			upper = maxVec3(upper, p)
		}
		t.build(0, len(t.data), lower, upper)
	}

	return t
}

func minVec3(a, b core.Vec3) core.Vec3 {
	return core.Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec3(a, b core.Vec3) core.Vec3 {
	return core.Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func longestAxis(lower, upper core.Vec3) int {
	dx := math.Abs(upper.X - lower.X)
	dy := math.Abs(upper.Y - lower.Y)
	dz := math.Abs(upper.Z - lower.Z)

	if dx < dy {
		if dy < dz {
			return 2
		}
		return 1
	}
	if dx < dz {
		return 2
	}
	return 0
}

func axisOf(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// build recursively partitions data[begin:end] around the median of the
// longest axis, storing that axis at the median index and recursing on
// both halves. A range of size 1 is marked as a leaf.
func (t *KDTree[T]) build(begin, end int, lower, upper core.Vec3) {
	size := end - begin
	if size <= 0 {
		return
	}
	if size == 1 {
		t.axes[begin] = leafAxis
		return
	}

	axis := longestAxis(lower, upper)
	median := begin + size/2

	idx := make([]int, size)
	for i := range idx {
		idx[i] = begin + i
	}
	sort.Slice(idx, func(i, j int) bool {
		return axisOf(t.points[idx[i]], axis) < axisOf(t.points[idx[j]], axis)
	})

	reordered := make([]T, size)
	reorderedPts := make([]core.Vec3, size)
	for i, src := range idx {
		reordered[i] = t.data[src]
		reorderedPts[i] = t.points[src]
	}
	copy(t.data[begin:end], reordered)
	copy(t.points[begin:end], reorderedPts)

	t.axes[median] = int8(axis)
	splitValue := axisOf(t.points[median], axis)

	leftUpper, rightLower := upper, lower
	setAxis(&leftUpper, axis, splitValue)
	setAxis(&rightLower, axis, splitValue)

	t.build(begin, median, lower, leftUpper)
	t.build(median+1, end, rightLower, upper)
}

func setAxis(v *core.Vec3, axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

// stackDepth returns the maximum number of simultaneously pending ranges a
// radius query over n balanced elements can push: ceil(log2(n)) + 1, per
// spec.md §4.6.
func stackDepth(n int) int {
	if n <= 1 {
		return 1
	}
	depth := 1
	for size := 1; size < n; size *= 2 {
		depth++
	}
	return depth + 1
}

type kdRange struct {
	begin, end int
}

// RadiusQuery visits every record within radius of query, descending the
// tree with the standard axis-distance prune: a child subtree is only
// visited if the query point's distance to the splitting plane is less
// than radius.
func (t *KDTree[T]) RadiusQuery(query core.Vec3, radius float64, callback func(T)) {
	if len(t.data) == 0 {
		return
	}

	radiusSq := radius * radius
	stack := make([]kdRange, 0, stackDepth(len(t.data)))
	stack = append(stack, kdRange{begin: 0, end: len(t.data)})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		begin, end := top.begin, top.end
		if begin >= end {
			continue
		}

		median := begin + (end-begin)/2
		axis := t.axes[median]
		point := t.points[median]

		distSq := point.Subtract(query).LengthSquared()
		if distSq < radiusSq {
			callback(t.data[median])
		}

		if axis == leafAxis {
			continue
		}

		axisDist := axisOf(query, int(axis)) - axisOf(point, int(axis))
		axisDistSq := axisDist * axisDist

		if axisDist < 0 {
			stack = append(stack, kdRange{begin: begin, end: median})
			if axisDistSq < radiusSq {
				stack = append(stack, kdRange{begin: median + 1, end: end})
			}
		} else {
			stack = append(stack, kdRange{begin: median + 1, end: end})
			if axisDistSq < radiusSq {
				stack = append(stack, kdRange{begin: begin, end: median})
			}
		}
	}
}

// Len returns the number of indexed records.
func (t *KDTree[T]) Len() int { return len(t.data) }
