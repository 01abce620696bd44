package derivative

import (
	"fmt"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// StressDivergence is the ∇·σ_dev/ρ term of spec.md §4.3, gated by the
// SUM_ONLY_UNDAMAGED flag so a fully-damaged interface cannot transmit
// deviatoric stress.
type StressDivergence struct {
	Mode             equation.Discretization
	SumOnlyUndamaged bool
}

func (d *StressDivergence) Key() string {
	return fmt.Sprintf("StressDivergence(%v,%v)", d.Mode, d.SumOnlyUndamaged)
}

func (d *StressDivergence) Create(acc *equation.Accumulated) {
	acc.Declare(storage.POSITION, quantity.Vector, quantity.Second, equation.Shared)
}

func (d *StressDivergence) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *StressDivergence) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	stress := st.Get(storage.DEVIATORIC_STRESS)

	mi, rhoi := mass.Scalar(i), dens.Scalar(i)
	si := stress.Traceless(i).Full()
	for _, nb := range neighs {
		j := nb.J
		if d.SumOnlyUndamaged && !sumOnlyUndamagedOK(st, i, j) {
			continue
		}
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		sj := stress.Traceless(j).Full()

		// discr is applied component-wise: build the combined stress the
		// same way the scalar discr combines pressure, then contract with
		// the kernel gradient (sigma . gradW).
		combined := quantity.SymTensor3{
			XX: discr(d.Mode, si.XX, sj.XX, rhoi, rhoj),
			YY: discr(d.Mode, si.YY, sj.YY, rhoi, rhoj),
			ZZ: discr(d.Mode, si.ZZ, sj.ZZ, rhoi, rhoj),
			XY: discr(d.Mode, si.XY, sj.XY, rhoi, rhoj),
			XZ: discr(d.Mode, si.XZ, sj.XZ, rhoi, rhoj),
			YZ: discr(d.Mode, si.YZ, sj.YZ, rhoi, rhoj),
		}
		acc.AddVectorD2t(storage.POSITION, i, combined.Apply(nb.Grad).Scale(mj))
		acc.AddVectorD2t(storage.POSITION, j, combined.Apply(nb.Grad).Scale(-mi))
	}
}
