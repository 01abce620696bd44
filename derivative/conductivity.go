package derivative

import (
	"math"

	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// ArtificialConductivity transports internal energy between particles
// using a pressure-based signal velocity, smoothing out the post-shock
// energy spikes AV alone leaves behind (spec.md §4.3).
type ArtificialConductivity struct {
	Alpha float64
}

func (d *ArtificialConductivity) Key() string { return "ArtificialConductivity" }

func (d *ArtificialConductivity) Create(acc *equation.Accumulated) {
	acc.Declare(storage.ENERGY, quantity.Scalar, quantity.First, equation.Shared)
}

func (d *ArtificialConductivity) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *ArtificialConductivity) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	pres := st.Get(storage.PRESSURE)
	energy := st.Get(storage.ENERGY)

	ri := pos.Vector(i)
	mi, rhoi, pi, ui := mass.Scalar(i), dens.Scalar(i), pres.Scalar(i), energy.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		rj := pos.Vector(j)
		mj, rhoj, pj, uj := mass.Scalar(j), dens.Scalar(j), pres.Scalar(j), energy.Scalar(j)

		dr := ri.Sub(rj)
		// pressure-based signal velocity vsig = sqrt(|pi-pj|/rhobar)
		rhobar := 0.5 * (rhoi + rhoj)
		vsig := math.Sqrt(math.Abs(pi-pj) / rhobar)

		r := dr.Length()
		if r < 1e-300 {
			continue
		}
		// projection of gradW along the separation unit vector, the
		// standard conductivity kernel-gradient contraction.
		gradDotRhat := nb.Grad.Dot(dr) / r

		termI := d.Alpha * vsig * (ui - uj) * mj / rhobar * gradDotRhat
		termJ := d.Alpha * vsig * (uj - ui) * mi / rhobar * gradDotRhat
		acc.AddScalarDt(storage.ENERGY, i, termI)
		acc.AddScalarDt(storage.ENERGY, j, termJ)
	}
}
