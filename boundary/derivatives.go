package boundary

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// zeroHighestDerivative nulls particle i's highest derivative in q (d2t
// for a SECOND order quantity, dt for FIRST order, a no-op otherwise),
// the per-particle equivalent of Quantity.ZeroHighestDerivative. Used by
// Frozen, Fixed and Projection1D to emulate "keeps the value given by
// initial conditions" for selected particles, per
// original_source/lib/sph/boundary/Boundary.h's FrozenParticles/
// Projection1D comment ("null all highest derivatives of selected
// particles").
func zeroHighestDerivative(q *quantity.Quantity, i int) {
	switch q.Type {
	case quantity.Scalar:
		switch q.Order {
		case quantity.Second:
			q.SetScalarD2t(i, 0)
		case quantity.First:
			q.SetScalarDt(i, 0)
		}
	case quantity.Vector:
		switch q.Order {
		case quantity.Second:
			q.SetVectorD2t(i, quantity.Vec3{})
		case quantity.First:
			q.SetVectorDt(i, quantity.Vec3{})
		}
	case quantity.SymTensor:
		if q.Order >= quantity.First {
			q.SetSymTensorDt(i, quantity.SymTensor3{})
		}
	case quantity.TracelessTensor:
		if q.Order >= quantity.First {
			q.SetTracelessDt(i, quantity.TracelessTensor3{})
		}
	}
}

// zeroEveryHighestDerivative calls zeroHighestDerivative for particle i
// across every quantity currently declared in st.
func zeroEveryHighestDerivative(st *storage.Storage, i int) {
	for _, id := range st.Ids() {
		zeroHighestDerivative(st.Get(id), i)
	}
}
