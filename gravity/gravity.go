// package gravity implements the self-gravity solvers of spec.md §4.7:
// BruteForce as the O(N^2) correctness reference and BarnesHut as the
// opening-angle-gated tree approximation, both writing accelerations into
// storage.POSITION's d2t buffer on top of whatever an equation.Solver
// already accumulated there, plus into any storage.Attractor point
// masses' own Acceleration field. Gravity is long-range and does not fit
// the kernel-support pair loop of equation/solver, so it runs as its own
// pass rather than as an equation.EquationTerm.
package gravity

import (
	"math"

	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Config is the run-wide gravity configuration (spec.md §4.7).
type Config struct {
	// G is Newton's gravitational constant, in whatever unit system the
	// run uses.
	G float64
	// Theta is the Barnes-Hut opening angle: a cell of size s at
	// distance d is accepted as a single multipole source when
	// s/d < Theta. Ignored by BruteForce.
	Theta float64
	// LeafSize bounds the number of particles held directly by a
	// BarnesHut tree leaf before it is split further. Ignored by
	// BruteForce. Zero means DefaultLeafSize.
	LeafSize int
	// Kernel softens the point-mass 1/r^2 singularity within its
	// support, matched to the run's SPH kernel (spec.md §4.7's "a(r)
	// transitions smoothly to the non-singular interior potential").
	// Nil means unsoftened Newtonian gravity.
	Kernel *kernel.GravityKernel
}

// DefaultLeafSize is used when Config.LeafSize is unset.
const DefaultLeafSize = 20

func (c Config) leafSize() int {
	if c.LeafSize > 0 {
		return c.LeafSize
	}
	return DefaultLeafSize
}

// Stats reports how many tree cells an Accelerations call resolved
// exactly (direct particle-particle sums) versus approximately (a single
// multipole accepted by the opening-angle test); spec.md §4.7's "{cells_
// exact, cells_approx}".
type Stats struct {
	CellsExact  int
	CellsApprox int
}

func (s *Stats) add(o Stats) {
	s.CellsExact += o.CellsExact
	s.CellsApprox += o.CellsApprox
}

// Solver computes gravitational accelerations for every particle in st
// (added into storage.POSITION's d2t buffer) and for every
// storage.Attractor (added into its own Acceleration field), returning
// aggregate Stats for the evaluation. BarnesHut additionally requires its
// Build method to be called first, once per step, against st's current
// positions.
type Solver interface {
	Accelerations(sched scheduler.Scheduler, st *storage.Storage) (Stats, error)
}

// pointAccel returns the acceleration a source of mass m at the origin of
// d exerts on a point at d = r_target - r_source, optionally softened by
// cfg.Kernel evaluated at smoothing length h (h<=0 or cfg.Kernel==nil
// means unsoftened).
func pointAccel(cfg Config, m float64, d quantity.Vec3, h float64) quantity.Vec3 {
	if cfg.Kernel != nil && h > 0 {
		return cfg.Kernel.Grad(d, h).Scale(-cfg.G * m)
	}
	r2 := d.LengthSqr()
	if r2 == 0 {
		return quantity.Vec3{}
	}
	r := math.Sqrt(r2)
	return d.Scale(-cfg.G * m / (r2 * r))
}

// quadrupoleCorrection adds the trace-free quadrupole term to the
// monopole acceleration a source cell (mass m, quadrupole moment quad
// about its own center of mass) exerts at d = r_target - com, following
// the standard multipole expansion a_quad = G*(quad.d)/r^5 -
// (5G/2)*(d.quad.d)*d/r^7.
func quadrupoleCorrection(cfg Config, quad quantity.SymTensor3, d quantity.Vec3) quantity.Vec3 {
	r2 := d.LengthSqr()
	if r2 == 0 {
		return quantity.Vec3{}
	}
	r := math.Sqrt(r2)
	r5 := r2 * r2 * r
	r7 := r5 * r2
	qd := quad.Apply(d)
	dqd := qd.Dot(d)
	return qd.Scale(cfg.G / r5).Sub(d.Scale(5 * cfg.G * dqd / (2 * r7)))
}

// attractorAccelerations adds every storage.Attractor's contribution into
// every particle's POSITION.d2t, accumulates every particle's reaction
// into the attractor's own Acceleration field, and sums attractor-
// attractor contributions directly (there are typically few attractors,
// so this stays O(N_attractors^2)). Softening never applies to
// attractors: they have no smoothing length of their own.
func attractorAccelerations(cfg Config, st *storage.Storage) {
	attractors := st.Attractors()
	if len(attractors) == 0 {
		return
	}
	pos := st.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		ri := pos.Vector(i)
		a := pos.VectorD2t(i)
		for k := range attractors {
			d := ri.Sub(attractors[k].Position)
			a = a.Add(pointAccel(cfg, attractors[k].Mass, d, 0))
		}
		pos.SetVectorD2t(i, a)
	}

	for k := range attractors {
		a := attractors[k].Acceleration
		for i := 0; i < pos.N; i++ {
			d := attractors[k].Position.Sub(pos.Vector(i))
			mi := 0.0
			if mass := st.GetOrNil(storage.MASS); mass != nil {
				mi = mass.Scalar(i)
			}
			a = a.Add(pointAccel(cfg, mi, d, 0))
		}
		for l := range attractors {
			if l == k {
				continue
			}
			d := attractors[k].Position.Sub(attractors[l].Position)
			a = a.Add(pointAccel(cfg, attractors[l].Mass, d, 0))
		}
		attractors[k].Acceleration = a
	}
}
