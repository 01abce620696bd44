package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// Cohesion is the surface-tension-like attractive term for fluids (spec.md
// §4.3): a lens-shaped kernel C(r) pulls particles together, balanced by
// a curvature correction built from each particle's surface normal n.
type Cohesion struct {
	Gamma  float64
	Lens   kernel.Kernel // the lens-shaped (e.g. CoreTriangle-family) kernel
}

func (d *Cohesion) Key() string { return "Cohesion" }

func (d *Cohesion) Create(acc *equation.Accumulated) {
	acc.Declare(storage.POSITION, quantity.Vector, quantity.Second, equation.Shared)
	acc.Declare(storage.SURFACE_NORMAL, quantity.Vector, quantity.Zero, equation.Shared)
}

func (d *Cohesion) Initialize(st *storage.Storage, acc *equation.Accumulated) error {
	return nil
}

func (d *Cohesion) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	dens := st.Get(storage.DENSITY)
	normal := st.GetOrNil(storage.SURFACE_NORMAL)

	ri := pos.Vector(i)
	hi := ri.H
	mi, rhoi := mass.Scalar(i), dens.Scalar(i)
	var ni quantity.Vec3
	if normal != nil {
		ni = normal.Vector(i)
	}
	for _, nb := range neighs {
		j := nb.J
		rj := pos.Vector(j)
		mj, rhoj := mass.Scalar(j), dens.Scalar(j)

		// accumulate the (pre-normal) surface-field contribution n_i += h *
		// mj/rhoj * gradW, per spec.md's n = h*sum(mj/rhoj*gradW).
		acc.AddVector(storage.SURFACE_NORMAL, i, nb.Grad.Scale(hi*mj/rhoj))
		hj := rj.H
		acc.AddVector(storage.SURFACE_NORMAL, j, nb.Grad.Scale(-hj*mi/rhoi))

		dr := ri.Sub(rj)
		r := dr.Length()
		if r < 1e-300 {
			continue
		}
		rhat := dr.Scale(1 / r)
		c := d.Lens.Value(dr, 1)

		var nj quantity.Vec3
		if normal != nil {
			nj = normal.Vector(j)
		}
		kij := 2 * rhoi / (rhoi + rhoj)
		force := rhat.Scale(-d.Gamma * c).Sub(ni.Sub(nj).Scale(d.Gamma))
		acc.AddVectorD2t(storage.POSITION, i, force.Scale(kij*mj))
		acc.AddVectorD2t(storage.POSITION, j, force.Scale(-kij*mi))
	}
}
