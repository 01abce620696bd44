package equation

import (
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Settings is the run-wide configuration an EquationTerm may consult when
// declaring its derivatives (discretization choice, CORRECTED/
// SUM_ONLY_UNDAMAGED flags, artificial-viscosity coefficients, ...). It is
// deliberately a plain struct rather than an interface: every equation
// term in this package reads from the same shared knob set, the way
// gofem's `inp.Sim` parameter block is read by every element.
type Settings struct {
	Discretization Discretization
	Corrected      bool
	SumOnlyUndamaged bool

	AVAlpha, AVBeta float64
	XSPHEpsilon     float64
	DeltaSPHDelta   float64

	ArtificialStressEpsilon float64
	ArtificialStressN       float64
}

// Discretization selects the pairwise pressure/stress-gradient form
// (spec.md §4.3).
type Discretization int

const (
	Standard Discretization = iota
	BenzAsphaug
)

// EquationTerm is a physical law (spec.md §3.4): it declares its
// Derivatives, runs pre/post-pair-loop bookkeeping, and declares the
// auxiliary Storage quantities it owns.
type EquationTerm interface {
	// SetDerivatives declares the Derivatives this term needs into
	// holder. Idempotent: safe to call once per solver construction.
	SetDerivatives(holder *DerivativeHolder, settings Settings)
	// Create declares and initializes any auxiliary quantities this term
	// owns (e.g. AV_ALPHA for Morris-Monaghan) on st, given the material
	// that owns the particles it runs over.
	Create(st *storage.Storage, mat *material.Material) error
	// Initialize runs before the pair loop (clamp inputs, reset auxiliary
	// fields).
	Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
	// Finalize runs after the pair loop, reading accumulated buffers
	// (divv, gradv, ...) and producing the term's actual highest-order
	// contributions (e.g. dRho = -Rho*divv, dU = p/Rho*divv).
	Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
}
