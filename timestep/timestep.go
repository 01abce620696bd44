// package timestep implements the integrators and adaptive-step criteria
// of spec.md §4.6: every evolved quantity advances using its own highest
// derivative, except POSITION, whose velocity lives in its own dt buffer
// (spec.md §3.2) rather than a separate quantity, making it the system's
// one second-order state (r,v); every other evolved quantity is first
// order (q,dq/dt). No Derivative in this module writes into POSITION's dt
// buffer directly -- velocity is integrator-owned state, and a correction
// like XSPH folds into the position drift via the auxiliary
// XSPH_VELOCITIES buffer instead (spec.md §4.3's "integrator folds in
// around the position update" note).
package timestep

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// Evaluator is the small interface an Integrator drives to refresh
// derivatives at a given storage state; solver.SymmetricSolver and
// solver.AsymmetricSolver both satisfy it. Kept local (rather than
// importing solver) the same way solver.BoundaryCondition avoids
// importing boundary.
type Evaluator interface {
	Step(st *storage.Storage, t float64) error
}

// Collider is a position-reflection hook an Integrator may run between
// its drift substeps (spec.md §4.6's "collide hooks at both drifts" for
// Leapfrog, and Euler's "after collide"); boundary.Reflective implements
// it without timestep importing boundary.
type Collider interface {
	Collide(st *storage.Storage) error
}

func runColliders(colliders []Collider, st *storage.Storage) error {
	for _, c := range colliders {
		if err := c.Collide(st); err != nil {
			return err
		}
	}
	return nil
}

// Integrator is one time-marching scheme of spec.md §4.6's table.
type Integrator interface {
	// Advance steps st from t to t+dt in place, calling ev.Step as many
	// times as the scheme requires.
	Advance(st *storage.Storage, ev Evaluator, t, dt float64) error
}

var allocators = map[string]func() Integrator{
	"euler":               func() Integrator { return &Euler{} },
	"predictor-corrector": func() Integrator { return &PredictorCorrector{} },
	"leapfrog":            func() Integrator { return &Leapfrog{} },
	"rk4":                 func() Integrator { return &RK4{} },
	"modified-midpoint":   func() Integrator { return &ModifiedMidpoint{Substeps: 2} },
	"bulirsch-stoer":      func() Integrator { return &BulirschStoer{} },
}

// New returns a newly constructed Integrator registered under name,
// following the same self-registering factory-map idiom as kernel.New.
func New(name string) (Integrator, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("timestep: integrator %q is not available", name)
	}
	return alloc(), nil
}

// kickVelocity advances POSITION's velocity (its dt buffer) by a*h.
func kickVelocity(pos *quantity.Quantity, h float64) {
	for i := 0; i < pos.N; i++ {
		pos.SetVectorDt(i, pos.VectorDt(i).Add(pos.VectorD2t(i).Scale(h)))
	}
}

// predictPosition advances POSITION's value by a second-order Taylor step
// r+=v*h+0.5*a*h^2 using the CURRENT (not-yet-kicked) velocity and
// acceleration; PredictorCorrector calls this before kickVelocity so both
// terms still refer to the same old state.
func predictPosition(pos *quantity.Quantity, h float64) {
	for i := 0; i < pos.N; i++ {
		v := pos.VectorDt(i)
		a := pos.VectorD2t(i)
		pos.SetVector(i, pos.Vector(i).Add(v.Scale(h)).Add(a.Scale(0.5*h*h)))
	}
}

// driftPosition advances POSITION's value by its current velocity (plus
// any pending XSPH_VELOCITIES correction, folded in here only, never into
// the persisted velocity) times h.
func driftPosition(st *storage.Storage, h float64) {
	pos := st.Get(storage.POSITION)
	xsph := st.GetOrNil(storage.XSPH_VELOCITIES)
	for i := 0; i < pos.N; i++ {
		v := pos.VectorDt(i)
		if xsph != nil {
			v = v.Add(xsph.Vector(i))
		}
		pos.SetVector(i, pos.Vector(i).Add(v.Scale(h)))
	}
}

// advanceFirstOrder applies the simple forward step q+=h*dq to every
// FIRST-order quantity other than POSITION, which is handled separately
// by kickVelocity/driftPosition since it is the system's only
// SECOND-order state.
func advanceFirstOrder(st *storage.Storage, h float64) {
	for _, id := range st.Ids() {
		if id == storage.POSITION {
			continue
		}
		q := st.Get(id)
		switch q.Type {
		case quantity.Scalar:
			if q.Order == quantity.First {
				for i := 0; i < q.N; i++ {
					q.SetScalar(i, q.Scalar(i)+h*q.ScalarDt(i))
				}
			}
		case quantity.Vector:
			if q.Order == quantity.First {
				for i := 0; i < q.N; i++ {
					q.SetVector(i, q.Vector(i).Add(q.VectorDt(i).Scale(h)))
				}
			}
		case quantity.SymTensor:
			if q.Order == quantity.First {
				for i := 0; i < q.N; i++ {
					q.SetSymTensor(i, q.SymTensor(i).Add(q.SymTensorDt(i).Scale(h)))
				}
			}
		case quantity.TracelessTensor:
			if q.Order == quantity.First {
				for i := 0; i < q.N; i++ {
					q.SetTraceless(i, q.Traceless(i).Add(q.TracelessDt(i).Scale(h)))
				}
			}
		}
	}
}

// clampStorage clamps every Scalar quantity to its owning material's
// declared Range, zeroing the companion derivative when a clamp binds so
// the quantity cannot drift back into the forbidden region next step
// (spec.md §4.6). Only Scalar quantities are clamped: material.Material's
// ranges are only ever set for scalar ids (DENSITY, ENERGY, DAMAGE, ...),
// so extending clamping to Vector/SymTensor has no grounded use case yet.
func clampStorage(st *storage.Storage) {
	n := st.N()
	for i := 0; i < n; i++ {
		mat, ok := st.MaterialOf(i).(*material.Material)
		if !ok {
			continue
		}
		for _, id := range st.Ids() {
			iv, ok := mat.Range(id)
			if !ok {
				continue
			}
			q := st.Get(id)
			if q.Type != quantity.Scalar {
				continue
			}
			v, bound := iv.Clamp(q.Scalar(i))
			if !bound {
				continue
			}
			q.SetScalar(i, v)
			if q.Order == quantity.First {
				q.SetScalarDt(i, 0)
			}
		}
	}
}
