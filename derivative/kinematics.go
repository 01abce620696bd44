package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// VelocityDivergence writes div(v) (spec.md §4.3), used by continuity
// (dRho = -Rho*divv) and the Balsara switch.
type VelocityDivergence struct{}

func (d *VelocityDivergence) Key() string { return "VelocityDivergence" }

func (d *VelocityDivergence) Create(acc *equation.Accumulated) {
	acc.Declare(storage.VELOCITY_DIVERGENCE, quantity.Scalar, quantity.Zero, equation.Shared)
}

func (d *VelocityDivergence) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *VelocityDivergence) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	vi := pos.VectorDt(i)
	rhoi, mi := dens.Scalar(i), mass.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		vj := pos.VectorDt(j)
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		dv := vj.Sub(vi)
		acc.AddScalar(storage.VELOCITY_DIVERGENCE, i, mj/rhoi*dv.Dot(nb.Grad))
		acc.AddScalar(storage.VELOCITY_DIVERGENCE, j, mi/rhoj*dv.Dot(nb.Grad))
	}
}

// VelocityGradient writes the symmetric velocity-gradient tensor
// sym_outer(vj-vi, gradW)*m/rho, optionally pre-multiplied by the
// correction tensor C when the solver's Settings.Corrected flag is set
// (the grad passed in by the solver is already C.gradW in that case, so
// this derivative itself needs no awareness of the flag).
type VelocityGradient struct{}

func (d *VelocityGradient) Key() string { return "VelocityGradient" }

func (d *VelocityGradient) Create(acc *equation.Accumulated) {
	acc.Declare(storage.VELOCITY_GRADIENT, quantity.SymTensor, quantity.Zero, equation.Shared)
}

func (d *VelocityGradient) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *VelocityGradient) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	vi := pos.VectorDt(i)
	rhoi, mi := dens.Scalar(i), mass.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		vj := pos.VectorDt(j)
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		dv := vj.Sub(vi)
		acc.AddSymTensor(storage.VELOCITY_GRADIENT, i, quantity.SymOuter(dv, nb.Grad).Scale(mj/rhoi))
		acc.AddSymTensor(storage.VELOCITY_GRADIENT, j, quantity.SymOuter(dv, nb.Grad).Scale(mi/rhoj))
	}
}

// VelocityRotation writes rot(v) = m/rho * cross(gradW, vj-vi).
type VelocityRotation struct{}

func (d *VelocityRotation) Key() string { return "VelocityRotation" }

func (d *VelocityRotation) Create(acc *equation.Accumulated) {
	acc.Declare(storage.VELOCITY_ROTATION, quantity.Vector, quantity.Zero, equation.Shared)
}

func (d *VelocityRotation) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *VelocityRotation) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	vi := pos.VectorDt(i)
	rhoi, mi := dens.Scalar(i), mass.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		vj := pos.VectorDt(j)
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		dv := vj.Sub(vi)
		acc.AddVector(storage.VELOCITY_ROTATION, i, nb.Grad.Cross(dv).Scale(mj/rhoi))
		acc.AddVector(storage.VELOCITY_ROTATION, j, nb.Grad.Cross(dv).Scale(mi/rhoj))
	}
}
