package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// DeltaSPHDensity is the density-diffusion term of spec.md §4.3, damping
// the checkerboard density noise standard SPH continuity otherwise
// accumulates. It needs DELTASPH_DENSITY_GRADIENT (grad(rho), computed the
// same pairwise way as VelocityGradient but scalar-valued) already merged
// from the previous step, read here as a precomputed input.
type DeltaSPHDensity struct {
	Delta float64
}

func (d *DeltaSPHDensity) Key() string { return "DeltaSPHDensity" }

func (d *DeltaSPHDensity) Create(acc *equation.Accumulated) {
	acc.Declare(storage.DENSITY, quantity.Scalar, quantity.First, equation.Shared)
}

func (d *DeltaSPHDensity) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *DeltaSPHDensity) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	cs := st.Get(storage.SOUND_SPEED)
	gradRho := st.Get(storage.DELTASPH_DENSITY_GRADIENT)

	ri := pos.Vector(i)
	hi := ri.H
	mi, rhoi, csi := mass.Scalar(i), dens.Scalar(i), cs.Scalar(i)
	gi := gradRho.Vector(i)
	for _, nb := range neighs {
		j := nb.J
		rj := pos.Vector(j)
		hj := rj.H
		mj, rhoj, csj := mass.Scalar(j), dens.Scalar(j), cs.Scalar(j)
		gj := gradRho.Vector(j)

		dr := ri.Sub(rj)
		rr := dr.LengthSqr()
		if rr < 1e-300 {
			continue
		}
		hbar := 0.5 * (hi + hj)
		csbar := 0.5 * (csi + csj)
		psi := dr.Scale(2 * (rhoj - rhoi) / rr).Sub(gi.Add(gj))
		flux := d.Delta * hbar * csbar * psi.Dot(nb.Grad)

		acc.AddScalarDt(storage.DENSITY, i, mj/rhoj*flux)
		acc.AddScalarDt(storage.DENSITY, j, -mi/rhoi*flux)
	}
}

// DeltaSPHVelocity damps spurious velocity oscillations the same way
// DeltaSPHDensity damps density oscillations (spec.md §4.3).
type DeltaSPHVelocity struct {
	Alpha float64
}

func (d *DeltaSPHVelocity) Key() string { return "DeltaSPHVelocity" }

func (d *DeltaSPHVelocity) Create(acc *equation.Accumulated) {
	acc.Declare(storage.POSITION, quantity.Vector, quantity.Second, equation.Shared)
}

func (d *DeltaSPHVelocity) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *DeltaSPHVelocity) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	cs := st.Get(storage.SOUND_SPEED)

	ri, vi := pos.Vector(i), pos.VectorDt(i)
	hi := ri.H
	mi, rhoi, csi := mass.Scalar(i), dens.Scalar(i), cs.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		rj, vj := pos.Vector(j), pos.VectorDt(j)
		hj := rj.H
		mj, rhoj, csj := mass.Scalar(j), dens.Scalar(j), cs.Scalar(j)

		dr := ri.Sub(rj)
		rr := dr.LengthSqr()
		if rr < 1e-300 {
			continue
		}
		dv := vi.Sub(vj)
		hbar := 0.5 * (hi + hj)
		csbar := 0.5 * (csi + csj)
		factor := d.Alpha * hbar * csbar * dv.Dot(dr) / rr

		acc.AddVectorD2t(storage.POSITION, i, nb.Grad.Scale(mj/rhoi*factor))
		acc.AddVectorD2t(storage.POSITION, j, nb.Grad.Scale(-mi/rhoj*factor))
	}
}
