package timestep

import "github.com/cpmech/gosph/storage"

// Leapfrog is the drift-kick-drift scheme of spec.md §4.6's table: drift
// POSITION by dt/2, evaluate derivatives at the mid-point, kick velocity by
// the full dt, drift the remaining dt/2, with colliders run after each
// drift (this is why driftPosition/kickVelocity are kept separate from
// advanceFirstOrder rather than folded into one combined step, unlike
// Euler which only needs a single kick-then-drift).
type Leapfrog struct {
	Colliders []Collider
}

func (l *Leapfrog) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	half := 0.5 * dt

	driftPosition(st, half)
	if err := runColliders(l.Colliders, st); err != nil {
		return err
	}

	if err := ev.Step(st, t+half); err != nil {
		return err
	}

	kickVelocity(st.Get(storage.POSITION), dt)
	advanceFirstOrder(st, dt)

	driftPosition(st, half)
	if err := runColliders(l.Colliders, st); err != nil {
		return err
	}

	clampStorage(st)
	return nil
}
