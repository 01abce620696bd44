package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// CorrectionTensor accumulates the raw (pre-inversion) renormalization
// matrix of spec.md §4.3: -sym_outer(rj-ri, gradW)*mj/rhoj. It must run
// and merge before any derivative that consumes the CORRECTED gradient,
// and its accumulator is inverted in place by
// equation.EquationTerm.Finalize of the term that declares it (the
// inversion itself is not part of the pairwise contract).
type CorrectionTensor struct{}

func (d *CorrectionTensor) Key() string { return "CorrectionTensor" }

func (d *CorrectionTensor) Create(acc *equation.Accumulated) {
	acc.Declare(storage.STRAIN_RATE_CORRECTION_TENSOR, quantity.SymTensor, quantity.Zero, equation.Shared)
}

func (d *CorrectionTensor) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *CorrectionTensor) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	ri := pos.Vector(i)
	for _, nb := range neighs {
		j := nb.J
		rj := pos.Vector(j)
		dr := rj.Sub(ri)
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		mi, rhoi := mass.Scalar(i), dens.Scalar(i)
		acc.AddSymTensor(storage.STRAIN_RATE_CORRECTION_TENSOR, i, quantity.SymOuter(dr, nb.Grad).Scale(-mj/rhoj))
		acc.AddSymTensor(storage.STRAIN_RATE_CORRECTION_TENSOR, j, quantity.SymOuter(dr, nb.Grad).Scale(-mi/rhoi))
	}
}
