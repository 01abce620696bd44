package derivative

import (
	"fmt"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// MorrisMonaghanAV is the Morris-Monaghan (1997) variant of
// ArtificialViscosity: alpha is per-particle (AV_ALPHA) instead of a
// fixed constant, symmetrized as 0.5*(alpha_i+alpha_j) per pair. Beta is
// fixed at 2*alpha per the original formulation. AV_ALPHA's own
// evolution (decay/source) is not pairwise and is driven instead by
// AVAlphaTerm's Finalize (terms.go).
type MorrisMonaghanAV struct {
	Balsara bool
}

func (d *MorrisMonaghanAV) Key() string { return fmt.Sprintf("MorrisMonaghanAV(%v)", d.Balsara) }

func (d *MorrisMonaghanAV) Create(acc *equation.Accumulated) {
	acc.Declare(storage.POSITION, quantity.Vector, quantity.Second, equation.Shared)
	acc.Declare(storage.ENERGY, quantity.Scalar, quantity.First, equation.Shared)
}

func (d *MorrisMonaghanAV) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *MorrisMonaghanAV) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	cs := st.Get(storage.SOUND_SPEED)
	alpha := st.Get(storage.AV_ALPHA)

	ri, vi := pos.Vector(i), pos.VectorDt(i)
	hi := ri.H
	mi, rhoi, csi, ai := mass.Scalar(i), dens.Scalar(i), cs.Scalar(i), alpha.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		rj, vj := pos.Vector(j), pos.VectorDt(j)
		hj := rj.H
		mj, rhoj, csj, aj := mass.Scalar(j), dens.Scalar(j), cs.Scalar(j), alpha.Scalar(j)

		dr := ri.Sub(rj)
		dv := vi.Sub(vj)
		hbar := 0.5 * (hi + hj)
		rhobar := 0.5 * (rhoi + rhoj)
		csbar := 0.5 * (csi + csj)
		abar := 0.5 * (ai + aj)

		mu := muAV(dv.Dot(dr), dr.LengthSqr(), hbar)
		if mu == 0 {
			continue
		}
		pi_ij := (-abar*csbar*mu + 2*abar*mu*mu) / rhobar
		if d.Balsara {
			pi_ij *= balsaraFactor(st, i, j)
		}

		acc.AddVectorD2t(storage.POSITION, i, nb.Grad.Scale(-mj*pi_ij))
		acc.AddVectorD2t(storage.POSITION, j, nb.Grad.Scale(mi*pi_ij))

		du := 0.5 * pi_ij * dv.Dot(nb.Grad)
		acc.AddScalarDt(storage.ENERGY, i, mj*du)
		acc.AddScalarDt(storage.ENERGY, j, mi*du)
	}
}
