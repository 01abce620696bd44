package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// XSPH accumulates the position correction delta_r = eps*m*(vj-vi)/rhobar
// * W(r,hbar) of spec.md §4.3, applied as a velocity shift the time
// integrator folds in around the position update rather than a genuine
// acceleration.
type XSPH struct {
	Kernel  kernel.Kernel
	Epsilon float64
}

func (d *XSPH) Key() string { return "XSPH" }

func (d *XSPH) Create(acc *equation.Accumulated) {
	acc.Declare(storage.XSPH_VELOCITIES, quantity.Vector, quantity.Zero, equation.Shared)
}

func (d *XSPH) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *XSPH) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	ri, vi := pos.Vector(i), pos.VectorDt(i)
	hi := ri.H
	mi, rhoi := mass.Scalar(i), dens.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		rj, vj := pos.Vector(j), pos.VectorDt(j)
		hj := rj.H
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)

		hbar := 0.5 * (hi + hj)
		rhobar := 0.5 * (rhoi + rhoj)
		w := d.Kernel.Value(ri.Sub(rj), hbar)
		dv := vj.Sub(vi)

		acc.AddVector(storage.XSPH_VELOCITIES, i, dv.Scale(d.Epsilon*mj/rhobar*w))
		acc.AddVector(storage.XSPH_VELOCITIES, j, dv.Scale(-d.Epsilon*mi/rhobar*w))
	}
}
