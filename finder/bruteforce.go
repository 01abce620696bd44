package finder

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
)

// BruteForce is the O(N²) reference NeighborFinder of spec.md §4.4,
// against which UniformGrid and KdTree results are checked in tests.
type BruteForce struct {
	points []quantity.Vec3
	rank   []int
}

func NewBruteForce() *BruteForce { return &BruteForce{} }

func (f *BruteForce) Build(sched scheduler.Scheduler, points []quantity.Vec3, flags BuildFlags) error {
	f.points = points
	if flags == MakeRank {
		f.rank = rankOf(points)
	} else {
		f.rank = nil
	}
	return nil
}

func (f *BruteForce) FindAll(i int, radius float64, out []Hit) []Hit {
	return f.FindAllPoint(f.points[i], radius, out)
}

func (f *BruteForce) FindAllPoint(p quantity.Vec3, radius float64, out []Hit) []Hit {
	out = out[:0]
	r2 := radius * radius
	for j, q := range f.points {
		d2 := p.Sub(q).LengthSqr()
		if d2 < r2 {
			out = append(out, Hit{Index: j, DistSqr: d2})
		}
	}
	return out
}

func (f *BruteForce) FindLowerRank(i int, radius float64, out []Hit) []Hit {
	out = out[:0]
	r2 := radius * radius
	ri := f.rank[i]
	pi := f.points[i]
	for j, q := range f.points {
		if f.rank[j] >= ri {
			continue
		}
		d2 := pi.Sub(q).LengthSqr()
		if d2 < r2 {
			out = append(out, Hit{Index: j, DistSqr: d2})
		}
	}
	return out
}
