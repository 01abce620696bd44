package finder

import (
	"sort"

	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
)

// DefaultLeafSize is the KdTree leaf size spec.md §4.4 names explicitly.
const DefaultLeafSize = 20

type kdBox struct {
	lo, hi quantity.Vec3
}

func (b kdBox) distSqr(p quantity.Vec3) float64 {
	d := 0.0
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo - v
		}
		if v > hi {
			return v - hi
		}
		return 0
	}
	dx := clamp(p.X, b.lo.X, b.hi.X)
	dy := clamp(p.Y, b.lo.Y, b.hi.Y)
	dz := clamp(p.Z, b.lo.Z, b.hi.Z)
	d = dx*dx + dy*dy + dz*dz
	return d
}

type kdNode struct {
	box         kdBox
	leaf        []int // non-nil iff this is a leaf
	left, right *kdNode
}

// KdTree is a static (rebuilt every Build call) k-d tree NeighborFinder,
// splitting along the widest axis at each level and bottoming out at
// LeafSize points per leaf (spec.md §4.4).
type KdTree struct {
	LeafSize int

	points []quantity.Vec3
	rank   []int
	root   *kdNode
}

func NewKdTree() *KdTree { return &KdTree{LeafSize: DefaultLeafSize} }

func (f *KdTree) Build(sched scheduler.Scheduler, points []quantity.Vec3, flags BuildFlags) error {
	f.points = points
	leaf := f.LeafSize
	if leaf <= 0 {
		leaf = DefaultLeafSize
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	f.root = f.build(idx, leaf)
	if flags == MakeRank {
		f.rank = rankOf(points)
	} else {
		f.rank = nil
	}
	return nil
}

func boundingBox(points []quantity.Vec3, idx []int) kdBox {
	lo := points[idx[0]]
	hi := points[idx[0]]
	for _, i := range idx[1:] {
		p := points[i]
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.Z < lo.Z {
			lo.Z = p.Z
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
		if p.Z > hi.Z {
			hi.Z = p.Z
		}
	}
	return kdBox{lo: lo, hi: hi}
}

func (f *KdTree) build(idx []int, leafSize int) *kdNode {
	box := boundingBox(f.points, idx)
	if len(idx) <= leafSize {
		return &kdNode{box: box, leaf: idx}
	}
	spanX := box.hi.X - box.lo.X
	spanY := box.hi.Y - box.lo.Y
	spanZ := box.hi.Z - box.lo.Z
	axis := 0
	if spanY > spanX && spanY >= spanZ {
		axis = 1
	} else if spanZ > spanX && spanZ > spanY {
		axis = 2
	}
	sort.Slice(idx, func(a, b int) bool {
		return axisOf(f.points[idx[a]], axis) < axisOf(f.points[idx[b]], axis)
	})
	mid := len(idx) / 2
	return &kdNode{
		box:   box,
		left:  f.build(append([]int(nil), idx[:mid]...), leafSize),
		right: f.build(append([]int(nil), idx[mid:]...), leafSize),
	}
}

func axisOf(p quantity.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (f *KdTree) visit(node *kdNode, p quantity.Vec3, radius, r2 float64, accept func(j int, d2 float64)) {
	if node == nil || node.box.distSqr(p) > r2 {
		return
	}
	if node.leaf != nil {
		for _, j := range node.leaf {
			d2 := p.Sub(f.points[j]).LengthSqr()
			if d2 < r2 {
				accept(j, d2)
			}
		}
		return
	}
	f.visit(node.left, p, radius, r2, accept)
	f.visit(node.right, p, radius, r2, accept)
}

func (f *KdTree) FindAll(i int, radius float64, out []Hit) []Hit {
	return f.FindAllPoint(f.points[i], radius, out)
}

func (f *KdTree) FindAllPoint(p quantity.Vec3, radius float64, out []Hit) []Hit {
	out = out[:0]
	f.visit(f.root, p, radius, radius*radius, func(j int, d2 float64) {
		out = append(out, Hit{Index: j, DistSqr: d2})
	})
	return out
}

func (f *KdTree) FindLowerRank(i int, radius float64, out []Hit) []Hit {
	out = out[:0]
	ri := f.rank[i]
	f.visit(f.root, f.points[i], radius, radius*radius, func(j int, d2 float64) {
		if f.rank[j] < ri {
			out = append(out, Hit{Index: j, DistSqr: d2})
		}
	})
	return out
}
