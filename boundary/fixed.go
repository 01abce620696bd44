package boundary

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Fixed is a FixedParticles boundary condition (spec.md §4.8), grounded
// on original_source/lib/sph/boundary/Boundary.h's FixedParticles: a
// permanent, immovable band of dummy particles grafted into the run's
// Storage once at setup (positions and material supplied by the caller,
// typically package initial, to avoid a forward dependency from boundary
// on initial). Unlike Frozen, a Fixed particle's velocity itself is held
// at zero, not merely its acceleration: these particles never move.
type Fixed struct {
	indices []int
}

// NewFixed grafts dummy's particles into st via Storage.Merge and returns
// a Fixed tracking the indices they land at.
func NewFixed(st *storage.Storage, dummy *storage.Storage) *Fixed {
	return &Fixed{indices: st.Merge(dummy)}
}

func (f *Fixed) Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	return nil
}

// Finalize nulls both velocity and acceleration of every fixed particle,
// and every other quantity's highest derivative, so nothing about them
// ever changes.
func (f *Fixed) Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	for _, i := range f.indices {
		pos.SetVectorDt(i, quantity.Vec3{})
		zeroEveryHighestDerivative(st, i)
	}
	return nil
}
