package boundary

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Frozen is a FrozenParticles boundary condition (spec.md §4.8), grounded
// on original_source/lib/sph/boundary/Boundary.h's FrozenParticles: every
// particle within Radius*h of Domain's boundary, plus every index
// explicitly Frozen, keeps the quantity values and derivatives it already
// has -- its highest derivative is nulled every step so it "keeps
// quantity values given by initial conditions and moves with [whatever]
// velocity it already has" (unlike Fixed, a frozen particle's existing
// velocity is left alone, only its acceleration is suppressed).
type Frozen struct {
	Domain Domain
	Radius float64

	explicit map[int]bool
}

// Freeze marks particle i as frozen regardless of its distance to Domain.
func (f *Frozen) Freeze(i int) {
	if f.explicit == nil {
		f.explicit = map[int]bool{}
	}
	f.explicit[i] = true
}

// Thaw removes an explicit freeze set by Freeze; a particle within Radius
// of Domain is still frozen.
func (f *Frozen) Thaw(i int) {
	delete(f.explicit, i)
}

func (f *Frozen) Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	return nil
}

// Finalize nulls the highest derivative of every frozen particle.
func (f *Frozen) Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		if !f.isFrozen(pos, i) {
			continue
		}
		zeroEveryHighestDerivative(st, i)
	}
	return nil
}

func (f *Frozen) isFrozen(pos *quantity.Quantity, i int) bool {
	if f.explicit[i] {
		return true
	}
	if f.Domain == nil {
		return false
	}
	p := pos.Vector(i)
	return f.Domain.DistanceToBoundary(p) < f.Radius*p.H
}
