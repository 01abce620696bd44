package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// DensityGradient computes grad(rho), the feeder quantity DeltaSPHDensity
// needs (spec.md §4.3's psi term reads grad(rho_i)+grad(rho_j)).
type DensityGradient struct{}

func (d *DensityGradient) Key() string { return "DensityGradient" }

func (d *DensityGradient) Create(acc *equation.Accumulated) {
	acc.Declare(storage.DELTASPH_DENSITY_GRADIENT, quantity.Vector, quantity.Zero, equation.Shared)
}

func (d *DensityGradient) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *DensityGradient) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)

	rhoi, mi := dens.Scalar(i), mass.Scalar(i)
	for _, nb := range neighs {
		j := nb.J
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)
		acc.AddVector(storage.DELTASPH_DENSITY_GRADIENT, i, nb.Grad.Scale(mj/rhoj*(rhoj-rhoi)))
		acc.AddVector(storage.DELTASPH_DENSITY_GRADIENT, j, nb.Grad.Scale(mi/rhoi*(rhoj-rhoi)))
	}
}
