package boundary

import (
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// endCount is how many particles at each end of the range Projection1D
// treats as fixed ends, per original_source's Boundary.cpp
// Projection1D::apply ({0,1,2,3,4} and the mirrored last five indices).
const endCount = 5

// Projection1D is the Projection1D boundary condition of spec.md §4.8,
// grounded on original_source/lib/sph/boundary/Boundary.cpp's
// Projection1D::apply: clamps every particle onto a 1D interval along X
// (Y and Z collapse to zero) and, every step, nulls the highest
// derivative of the first and last few particles to emulate fixed ends.
// Particles are assumed already sorted along X by whatever built the
// initial conditions; Projection1D does not sort them itself.
type Projection1D struct {
	Range material.Interval
}

func (p Projection1D) Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		r := pos.Vector(i)
		x, _ := p.Range.Clamp(r.X)
		v := pos.VectorDt(i)
		pos.SetVector(i, quantity.Vec3{X: x, H: r.H})
		pos.SetVectorDt(i, quantity.Vec3{X: v.X})
	}
	return nil
}

func (p Projection1D) Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	n := pos.N
	if n < 2*endCount {
		return nil
	}
	for k := 0; k < endCount; k++ {
		zeroEveryHighestDerivative(st, k)
		zeroEveryHighestDerivative(st, n-1-k)
	}
	return nil
}
