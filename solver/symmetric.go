// package solver implements the pair-evaluation core of spec.md §4.5: a
// SymmetricSolver (Newton's-third-law pairwise loop, the normal case) and
// an AsymmetricSolver (single-sided, for corrected forms that can't
// exploit symmetry). Both take a scheduler.Scheduler, a
// finder.NeighborFinder, a kernel.Kernel and an ordered
// []equation.EquationTerm, and perform their sanity checks eagerly at
// construction (spec.md §4.5's "verifies ... at construction").
package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/finder"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// BoundaryCondition is the small interface boundary/'s four
// implementations satisfy; solver depends on this local shape rather than
// importing boundary directly, the way `ele.Element` lets gofem's
// `fem.Domain` drive arbitrary element kinds without an import cycle.
type BoundaryCondition interface {
	Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
	Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error
}

// neighborCount is a solver-owned pseudo-derivative maintaining
// NEIGHBOR_CNT (spec.md §4.5's "update NEIGHBOR_CNT from pair counts,
// each endpoint increments"); registered automatically, not
// user-configurable.
type neighborCount struct{}

func (neighborCount) Key() string { return "__solver.NeighborCount" }
func (neighborCount) Create(acc *equation.Accumulated) {
	acc.Declare(storage.NEIGHBOR_CNT, quantity.Index, quantity.Zero, equation.Shared)
}
func (neighborCount) Initialize(st *storage.Storage, acc *equation.Accumulated) error { return nil }
func (neighborCount) EvalSymmetric(st *storage.Storage, acc *equation.Accumulated, i int, neighs []equation.Pair) {
	for _, nb := range neighs {
		acc.Increment(storage.NEIGHBOR_CNT, i)
		acc.Increment(storage.NEIGHBOR_CNT, nb.J)
	}
}

// SymmetricSolver is the normal pairwise solver of spec.md §4.5.
type SymmetricSolver struct {
	Sched    scheduler.Scheduler
	Finder   finder.NeighborFinder
	Kernel   kernel.Kernel
	Settings equation.Settings

	Boundaries []BoundaryCondition

	terms   []equation.EquationTerm
	holder  *equation.DerivativeHolder
	symDers []equation.SymmetricDerivative

	locals *scheduler.ThreadLocal[workerScratch]
}

type workerScratch struct {
	acc   *equation.Accumulated
	hits  []finder.Hit
	pairs []equation.Pair
}

// NewSymmetricSolver wires terms into a pairwise solver, running the
// construction-time sanity checks of spec.md §4.5: every derivative the
// terms require must be a SymmetricDerivative (chk.Panic otherwise); a
// UNIQUE-accumulator collision across derivatives is caught by
// equation.Accumulated.Declare's own panic, exercised here by building one
// throwaway Accumulated.
func NewSymmetricSolver(sched scheduler.Scheduler, find finder.NeighborFinder, kern kernel.Kernel, settings equation.Settings, terms []equation.EquationTerm) *SymmetricSolver {
	holder := equation.NewDerivativeHolder()
	holder.Require(neighborCount{})
	for _, t := range terms {
		t.SetDerivatives(holder, settings)
	}
	syms := make([]equation.SymmetricDerivative, 0, holder.Len())
	probe := equation.NewAccumulated(0)
	for _, d := range holder.All() {
		sd, ok := d.(equation.SymmetricDerivative)
		if !ok {
			chk.Panic("solver: derivative %q is not symmetric; cannot be used with SymmetricSolver", d.Key())
		}
		syms = append(syms, sd)
		d.Create(probe)
	}

	s := &SymmetricSolver{
		Sched:    sched,
		Finder:   find,
		Kernel:   kern,
		Settings: settings,
		terms:    terms,
		holder:   holder,
		symDers:  syms,
	}
	return s
}

// Create runs every term's Create against st (spec.md §4.5's setup path,
// called once before the first Step, not per step).
func (s *SymmetricSolver) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.NEIGHBOR_CNT) {
		st.Insert(storage.NEIGHBOR_CNT)
	}
	for _, t := range s.terms {
		if err := t.Create(st, mat); err != nil {
			return err
		}
	}
	return nil
}

func (s *SymmetricSolver) ensureLocals(n int) {
	if s.locals != nil {
		return
	}
	s.locals = scheduler.NewThreadLocal[workerScratch](s.Sched.NumWorkers())
	s.locals.Init(func() workerScratch {
		return workerScratch{acc: equation.NewAccumulated(n)}
	})
	for _, ws := range s.locals.All() {
		for _, d := range s.symDers {
			d.Create(ws.acc)
		}
	}
}

// Step runs one full pass of spec.md §4.5's beforeLoop/build/pair-loop/
// afterLoop/finalize/boundary pipeline.
func (s *SymmetricSolver) Step(st *storage.Storage, t float64) error {
	n := st.N()
	s.ensureLocals(n)

	for _, t2 := range s.terms {
		if err := t2.Initialize(s.Sched, st, t); err != nil {
			return err
		}
	}
	for _, bc := range s.Boundaries {
		if err := bc.Initialize(s.Sched, st, t); err != nil {
			return err
		}
	}
	st.ZeroHighestDerivatives()
	for _, ws := range s.locals.All() {
		ws.acc.Reset()
		// Initialize runs once per worker's own accumulator, not once
		// globally: a derivative like ArtificialStress precomputes a
		// UNIQUE buffer here, and UNIQUE's overwrite-merge semantics are
		// only safe when every worker's copy is independently identical
		// (see equation.Accumulated.MergeInto).
		for _, d := range s.symDers {
			if err := d.Initialize(st, ws.acc); err != nil {
				return err
			}
		}
	}

	if err := s.Finder.Build(s.Sched, positionsOf(st), finder.MakeRank); err != nil {
		return err
	}

	support := s.Kernel.Support()
	corrected := s.Settings.Corrected
	pos := st.Get(storage.POSITION)

	err := s.Sched.ParallelForIndexed(n, func(workerID, lo, hi int) error {
		ws := s.locals.Get(workerID)
		var corr *quantity.Quantity
		if corrected {
			corr = st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR)
		}
		for i := lo; i < hi; i++ {
			ri := pos.Vector(i)
			hi_ := ri.H
			ws.hits = s.Finder.FindLowerRank(i, support*hi_, ws.hits)
			ws.pairs = ws.pairs[:0]
			for _, hit := range ws.hits {
				j := hit.Index
				rj := pos.Vector(j)
				hbar := 0.5 * (ri.H + rj.H)
				radius := support * hbar
				if hit.DistSqr >= radius*radius {
					continue
				}
				grad := s.Kernel.Grad(ri.Sub(rj), hbar)
				if corrected {
					grad = corr.SymTensor(i).Apply(grad)
				}
				ws.pairs = append(ws.pairs, equation.Pair{J: j, Grad: grad})
			}
			for _, d := range s.symDers {
				d.EvalSymmetric(st, ws.acc, i, ws.pairs)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, ws := range s.locals.All() {
		ws.acc.MergeInto(st)
	}

	for _, t2 := range s.terms {
		if err := t2.Finalize(s.Sched, st, t); err != nil {
			return err
		}
	}
	for _, bc := range s.Boundaries {
		if err := bc.Finalize(s.Sched, st, t); err != nil {
			return err
		}
	}
	return nil
}

func positionsOf(st *storage.Storage) []quantity.Vec3 {
	pos := st.Get(storage.POSITION)
	pts := make([]quantity.Vec3, st.N())
	for i := range pts {
		pts[i] = pos.Vector(i)
	}
	return pts
}
