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

// AsymmetricSolver is the single-sided pair solver of spec.md §4.5: each
// particle writes only its own accumulator slot, so there is no
// cross-thread hazard and no symmetric-pair-only constraint -- it enables
// derivatives that cannot be written Newton's-third-law style (e.g. some
// corrected forms). Because writes never cross into another worker's
// index range, a single shared Accumulated (not one per worker) is
// enough: distinct particle indices never alias.
type AsymmetricSolver struct {
	Sched    scheduler.Scheduler
	Finder   finder.NeighborFinder
	Kernel   kernel.Kernel
	Settings equation.Settings

	Boundaries []BoundaryCondition

	terms  []equation.EquationTerm
	holder *equation.DerivativeHolder
	asyms  []equation.AsymmetricDerivative
	acc    *equation.Accumulated
}

// NewAsymmetricSolver mirrors NewSymmetricSolver's construction-time
// checks, but requires every derivative to be asymmetric instead.
func NewAsymmetricSolver(sched scheduler.Scheduler, find finder.NeighborFinder, kern kernel.Kernel, settings equation.Settings, terms []equation.EquationTerm) *AsymmetricSolver {
	holder := equation.NewDerivativeHolder()
	for _, t := range terms {
		t.SetDerivatives(holder, settings)
	}
	asyms := make([]equation.AsymmetricDerivative, 0, holder.Len())
	probe := equation.NewAccumulated(0)
	for _, d := range holder.All() {
		ad, ok := d.(equation.AsymmetricDerivative)
		if !ok {
			chk.Panic("solver: derivative %q is not asymmetric; cannot be used with AsymmetricSolver", d.Key())
		}
		asyms = append(asyms, ad)
		d.Create(probe)
	}
	return &AsymmetricSolver{
		Sched:    sched,
		Finder:   find,
		Kernel:   kern,
		Settings: settings,
		terms:    terms,
		holder:   holder,
		asyms:    asyms,
	}
}

func (s *AsymmetricSolver) Create(st *storage.Storage, mat *material.Material) error {
	for _, t := range s.terms {
		if err := t.Create(st, mat); err != nil {
			return err
		}
	}
	return nil
}

func (s *AsymmetricSolver) Step(st *storage.Storage, t float64) error {
	n := st.N()
	if s.acc == nil {
		s.acc = equation.NewAccumulated(n)
		for _, d := range s.asyms {
			d.Create(s.acc)
		}
	}

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
	s.acc.Reset()
	for _, d := range s.asyms {
		if err := d.Initialize(st, s.acc); err != nil {
			return err
		}
	}

	if err := s.Finder.Build(s.Sched, positionsOf(st), finder.NoRank); err != nil {
		return err
	}

	support := s.Kernel.Support()
	corrected := s.Settings.Corrected
	pos := st.Get(storage.POSITION)

	err := s.Sched.ParallelFor(n, func(lo, hi int) error {
		var hits []finder.Hit
		var pairs []equation.Pair
		var corr *quantity.Quantity
		if corrected {
			corr = st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR)
		}
		for i := lo; i < hi; i++ {
			ri := pos.Vector(i)
			hits = s.Finder.FindAll(i, support*ri.H, hits)
			pairs = pairs[:0]
			for _, hit := range hits {
				j := hit.Index
				if j == i {
					continue
				}
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
				pairs = append(pairs, equation.Pair{J: j, Grad: grad})
			}
			for _, d := range s.asyms {
				d.EvalNeighs(st, s.acc, i, pairs)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.acc.MergeInto(st)

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
