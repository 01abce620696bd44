// package boundary implements the boundary conditions of spec.md §4.8:
// geometric Domains a run is bounded by, and Conditions that enforce them
// against a storage.Storage once per step. Grounded on
// original_source/lib/sph/boundary/Boundary.h's IBoundaryCondition, whose
// initialize()/finalize() split this package keeps verbatim -- initialize
// runs before derivatives are computed (so ghost particles are in place
// for the neighbor search and pair sums), finalize runs after (so it can
// remove them again, or null out derivatives computed during the step).
// Condition's methods take a scheduler.Scheduler and the current time the
// same way equation.EquationTerm's do (solver.SymmetricSolver.Step and
// solver.AsymmetricSolver.Step run both loops side by side with identical
// arguments), even though the C++ original's initialize()/finalize() take
// only a Storage -- gosph's term and boundary conditions share one calling
// convention.
package boundary

import (
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Condition is a single boundary enforcement mechanism.
type Condition interface {
	// Initialize runs before derivatives are computed for a step.
	Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
	// Finalize runs after derivatives are computed for a step.
	Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
}

// Set runs a group of Conditions together, in order, for both halves of a
// step. A nil Set is valid and does nothing.
type Set []Condition

func (s Set) Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	for _, c := range s {
		if err := c.Initialize(sched, st, t); err != nil {
			return err
		}
	}
	return nil
}

func (s Set) Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	for _, c := range s {
		if err := c.Finalize(sched, st, t); err != nil {
			return err
		}
	}
	return nil
}
