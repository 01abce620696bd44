package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// EnergyLaplacian computes the standard SPH Laplacian of the internal
// energy field, 2(uj-ui)(rj-ri).gradW/|r|^2 weighted by m/rho (spec.md
// §4.3), used by heat-conduction-like equation terms.
type EnergyLaplacian struct{}

func (d *EnergyLaplacian) Key() string { return "EnergyLaplacian" }

func (d *EnergyLaplacian) Create(acc *equation.Accumulated) {
	acc.Declare(storage.ENERGY_LAPLACIAN, quantity.Scalar, quantity.Zero, equation.Shared)
}

func (d *EnergyLaplacian) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *EnergyLaplacian) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	energy := st.Get(storage.ENERGY)

	ri := pos.Vector(i)
	mi, rhoi, ui := mass.Scalar(i), dens.Scalar(i), energy.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		rj := pos.Vector(j)
		mj, rhoj, uj := mass.Scalar(j), dens.Scalar(j), energy.Scalar(j)

		dr := ri.Sub(rj)
		rr := dr.LengthSqr()
		if rr < 1e-300 {
			continue
		}
		term := 2 * (uj - ui) * dr.Dot(nb.Grad) / rr
		acc.AddScalar(storage.ENERGY_LAPLACIAN, i, mj/rhoj*term)
		acc.AddScalar(storage.ENERGY_LAPLACIAN, j, -mi/rhoi*term)
	}
}
