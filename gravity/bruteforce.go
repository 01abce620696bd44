package gravity

import (
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// BruteForce is the O(N^2) direct-sum gravity solver, kept as the
// correctness oracle BarnesHut is checked against (spec.md §8.2's
// 4%-agreement test). Every pair's acceleration is computed independently
// at each side from the same closed-form odd function of the separation
// vector, so a_i and a_j already obey Newton's third law to machine
// precision without any explicit symmetrization bookkeeping.
type BruteForce struct {
	Config Config
}

func (b *BruteForce) Accelerations(sched scheduler.Scheduler, st *storage.Storage) (Stats, error) {
	pos := st.Get(storage.POSITION)
	mass := st.GetOrNil(storage.MASS)
	n := pos.N

	err := sched.ParallelFor(n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			ri := pos.Vector(i)
			smoothing := ri.H
			a := pos.VectorD2t(i)
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				mj := 0.0
				if mass != nil {
					mj = mass.Scalar(j)
				}
				d := ri.Sub(pos.Vector(j))
				a = a.Add(pointAccel(b.Config, mj, d, smoothing))
			}
			pos.SetVectorD2t(i, a)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	attractorAccelerations(b.Config, st)

	return Stats{CellsExact: n * n}, nil
}
