package derivative

import (
	"fmt"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// PressureGradient is the −∇p/ρ term of spec.md §4.3.
type PressureGradient struct {
	Mode equation.Discretization
}

func (d *PressureGradient) Key() string { return fmt.Sprintf("PressureGradient(%v)", d.Mode) }

func (d *PressureGradient) Create(acc *equation.Accumulated) {
	acc.Declare(storage.POSITION, quantity.Vector, quantity.Second, equation.Shared)
}

func (d *PressureGradient) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *PressureGradient) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	pres := st.Get(storage.PRESSURE)

	mi, rhoi, pi := mass.Scalar(i), dens.Scalar(i), pres.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		mj, rhoj, pj := mass.Scalar(j), dens.Scalar(j), pres.Scalar(j)
		f := discr(d.Mode, pi, pj, rhoi, rhoj)
		acc.AddVectorD2t(storage.POSITION, i, nb.Grad.Scale(-mj*f))
		acc.AddVectorD2t(storage.POSITION, j, nb.Grad.Scale(mi*f))
	}
}
