package timestep

import "github.com/cpmech/gosph/storage"

// Euler is the first-order explicit (symplectic) integrator of spec.md
// §4.6's table: v<-v+dv*dt; r<-r+v*dt (using the already-updated v),
// with an optional collision hook run between the two.
type Euler struct {
	Colliders []Collider
}

func (e *Euler) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	if err := ev.Step(st, t); err != nil {
		return err
	}
	kickVelocity(st.Get(storage.POSITION), dt)
	if err := runColliders(e.Colliders, st); err != nil {
		return err
	}
	driftPosition(st, dt)
	advanceFirstOrder(st, dt)
	clampStorage(st)
	return nil
}
