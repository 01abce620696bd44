package finder

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
)

// Periodic wraps another NeighborFinder and repeats every query against
// up to 27 periodic image offsets of the domain box (spec.md §4.4),
// summing the (duplicate-free, provided the box is at least twice the
// query radius) results.
type Periodic struct {
	Inner NeighborFinder
	Box   quantity.Vec3 // domain period along each axis; 0 disables wrap on that axis

	points  []quantity.Vec3
	rank    []int
	scratch []Hit
}

func NewPeriodic(inner NeighborFinder, box quantity.Vec3) *Periodic {
	return &Periodic{Inner: inner, Box: box}
}

func (f *Periodic) Build(sched scheduler.Scheduler, points []quantity.Vec3, flags BuildFlags) error {
	f.points = points
	if flags == MakeRank {
		f.rank = rankOf(points)
	} else {
		f.rank = nil
	}
	// the wrapped finder never needs rank filtering itself: Periodic
	// always filters by rank on the unwrapped point set after gathering
	// hits across every image offset.
	return f.Inner.Build(sched, points, NoRank)
}

func (f *Periodic) offsets() []quantity.Vec3 {
	axisOffsets := func(period float64) []float64 {
		if period <= 0 {
			return []float64{0}
		}
		return []float64{-period, 0, period}
	}
	xs := axisOffsets(f.Box.X)
	ys := axisOffsets(f.Box.Y)
	zs := axisOffsets(f.Box.Z)
	out := make([]quantity.Vec3, 0, len(xs)*len(ys)*len(zs))
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				out = append(out, quantity.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

func (f *Periodic) FindAll(i int, radius float64, out []Hit) []Hit {
	return f.FindAllPoint(f.points[i], radius, out)
}

func (f *Periodic) FindAllPoint(p quantity.Vec3, radius float64, out []Hit) []Hit {
	out = out[:0]
	for _, off := range f.offsets() {
		q := quantity.Vec3{X: p.X + off.X, Y: p.Y + off.Y, Z: p.Z + off.Z, H: p.H}
		f.scratch = f.Inner.FindAllPoint(q, radius, f.scratch)
		out = append(out, f.scratch...)
	}
	return out
}

func (f *Periodic) FindLowerRank(i int, radius float64, out []Hit) []Hit {
	out = out[:0]
	ri := f.rank[i]
	p := f.points[i]
	for _, off := range f.offsets() {
		q := quantity.Vec3{X: p.X + off.X, Y: p.Y + off.Y, Z: p.Z + off.Z, H: p.H}
		f.scratch = f.Inner.FindAllPoint(q, radius, f.scratch)
		for _, h := range f.scratch {
			if f.rank[h.Index] < ri {
				out = append(out, h)
			}
		}
	}
	return out
}
