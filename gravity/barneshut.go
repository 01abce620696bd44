package gravity

import (
	"sort"

	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// box is a bounding box, reused from finder.KdTree's own bounding-box/
// widest-axis-split idiom: a hierarchical space partition built by
// recursively splitting the widest axis at the median keeps the tree
// balanced and terminating even for coincident points, which a literal
// fixed 8-way octant split does not guarantee.
type box struct {
	lo, hi quantity.Vec3
}

// size is the opening-angle criterion's cell size s (the box's longest
// edge).
func (b box) size() float64 {
	s := b.hi.X - b.lo.X
	if d := b.hi.Y - b.lo.Y; d > s {
		s = d
	}
	if d := b.hi.Z - b.lo.Z; d > s {
		s = d
	}
	return s
}

func boundingBox(points []quantity.Vec3, idx []int) box {
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
	return box{lo: lo, hi: hi}
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

type bhNode struct {
	box         box
	leaf        []int // non-nil iff this is a leaf
	left, right *bhNode

	mass float64
	com  quantity.Vec3
	quad quantity.SymTensor3
}

// pointQuad is m*(3*d(x)d - |d|^2*I), the point-mass contribution to a
// trace-free quadrupole moment about an origin displaced by d. Used both
// directly (leaf particles relative to their own center of mass) and as
// the parallel-axis shift of a child cell's moment onto its parent's
// center of mass.
func pointQuad(m float64, d quantity.Vec3) quantity.SymTensor3 {
	r2 := d.LengthSqr()
	return quantity.SymTensor3{
		XX: m * (3*d.X*d.X - r2),
		YY: m * (3*d.Y*d.Y - r2),
		ZZ: m * (3*d.Z*d.Z - r2),
		XY: m * 3 * d.X * d.Y,
		XZ: m * 3 * d.X * d.Z,
		YZ: m * 3 * d.Y * d.Z,
	}
}

// BarnesHut is the opening-angle-gated tree solver of spec.md §4.7:
// quadrupole-order multipoles accumulated bottom-up over a balanced
// space-partitioning tree, descending into a cell only while its
// size/distance ratio exceeds Config.Theta.
type BarnesHut struct {
	Config Config

	points []quantity.Vec3
	masses []float64
	root   *bhNode
}

// Build indexes st's particle positions and masses into the tree. Must be
// called before Accelerations; safe to call again after positions move.
// sched is accepted for symmetry with finder.NeighborFinder.Build (the
// construction below is sequential; a future parallel build would split
// work across it the same way finder's does for its own indices).
func (bh *BarnesHut) Build(sched scheduler.Scheduler, st *storage.Storage) {
	pos := st.Get(storage.POSITION)
	mass := st.GetOrNil(storage.MASS)
	n := pos.N

	bh.points = make([]quantity.Vec3, n)
	bh.masses = make([]float64, n)
	for i := 0; i < n; i++ {
		bh.points[i] = pos.Vector(i)
		if mass != nil {
			bh.masses[i] = mass.Scalar(i)
		}
	}

	if n == 0 {
		bh.root = nil
		return
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	bh.root = bh.build(idx, bh.Config.leafSize())
}

func (bh *BarnesHut) build(idx []int, leafSize int) *bhNode {
	b := boundingBox(bh.points, idx)
	if len(idx) <= leafSize {
		node := &bhNode{box: b, leaf: idx}
		bh.moments(node)
		return node
	}
	span := func(axis int) float64 {
		switch axis {
		case 0:
			return b.hi.X - b.lo.X
		case 1:
			return b.hi.Y - b.lo.Y
		default:
			return b.hi.Z - b.lo.Z
		}
	}
	axis := 0
	if span(1) > span(axis) {
		axis = 1
	}
	if span(2) > span(axis) {
		axis = 2
	}
	sort.Slice(idx, func(a, c int) bool {
		return axisOf(bh.points[idx[a]], axis) < axisOf(bh.points[idx[c]], axis)
	})
	mid := len(idx) / 2
	node := &bhNode{
		box:  b,
		left: bh.build(append([]int(nil), idx[:mid]...), leafSize),
	}
	node.right = bh.build(append([]int(nil), idx[mid:]...), leafSize)
	node.mass = node.left.mass + node.right.mass
	if node.mass > 0 {
		node.com = node.left.com.Scale(node.left.mass / node.mass).Add(node.right.com.Scale(node.right.mass / node.mass))
	}
	node.quad = node.left.quad.Add(pointQuad(node.left.mass, node.left.com.Sub(node.com))).
		Add(node.right.quad.Add(pointQuad(node.right.mass, node.right.com.Sub(node.com))))
	return node
}

// moments computes a leaf's own mass, center of mass and quadrupole
// moment directly from its particles.
func (bh *BarnesHut) moments(node *bhNode) {
	mass := 0.0
	com := quantity.Vec3{}
	for _, i := range node.leaf {
		m := bh.masses[i]
		mass += m
		com = com.Add(bh.points[i].Scale(m))
	}
	if mass > 0 {
		com = com.Scale(1 / mass)
	}
	quad := quantity.SymTensor3{}
	for _, i := range node.leaf {
		quad = quad.Add(pointQuad(bh.masses[i], bh.points[i].Sub(com)))
	}
	node.mass = mass
	node.com = com
	node.quad = quad
}

func (bh *BarnesHut) Accelerations(sched scheduler.Scheduler, st *storage.Storage) (Stats, error) {
	stats := Stats{}

	if bh.root != nil {
		pos := st.Get(storage.POSITION)
		n := pos.N

		locals := scheduler.NewThreadLocal[Stats](sched.NumWorkers())

		err := sched.ParallelForIndexed(n, func(workerID, lo, hi int) error {
			local := locals.Get(workerID)
			for i := lo; i < hi; i++ {
				ri := pos.Vector(i)
				a := pos.VectorD2t(i)
				a = a.Add(bh.accelAt(bh.root, i, ri, ri.H, local))
				pos.SetVectorD2t(i, a)
			}
			return nil
		})
		if err != nil {
			return Stats{}, err
		}

		for _, s := range locals.All() {
			stats.add(s)
		}
	}

	attractorAccelerations(bh.Config, st)

	return stats, nil
}

// accelAt returns the acceleration node exerts on particle i (excluding i
// itself), recursing into children whenever the opening-angle criterion
// size/distance >= Theta fails to accept node as a single multipole
// source.
func (bh *BarnesHut) accelAt(node *bhNode, i int, ri quantity.Vec3, h float64, stats *Stats) quantity.Vec3 {
	if node.leaf != nil {
		stats.CellsExact++
		a := quantity.Vec3{}
		for _, j := range node.leaf {
			if j == i {
				continue
			}
			d := ri.Sub(bh.points[j])
			a = a.Add(pointAccel(bh.Config, bh.masses[j], d, h))
		}
		return a
	}

	d := ri.Sub(node.com)
	dist := d.Length()
	if dist > 0 && node.box.size()/dist < bh.Config.Theta {
		stats.CellsApprox++
		a := pointAccel(bh.Config, node.mass, d, 0)
		a = a.Add(quadrupoleCorrection(bh.Config, node.quad, d))
		return a
	}

	return bh.accelAt(node.left, i, ri, h, stats).Add(bh.accelAt(node.right, i, ri, h, stats))
}
