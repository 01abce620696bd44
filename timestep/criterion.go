package timestep

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// CriterionKind identifies which Criterion bound a particle's timestep;
// persisted into storage.TIME_STEP_CRITERION when MultiCriterion.Persist
// is set, and reported by MultiCriterion.Compute.
type CriterionKind int

const (
	CourantKind CriterionKind = iota
	AccelerationKind
	DerivativeKind
)

// Criterion computes a candidate timestep bound for a single particle;
// math.Inf(1) means "no constraint from this particle".
type Criterion interface {
	Kind() CriterionKind
	Eval(st *storage.Storage, i int) float64
}

// CourantCriterion bounds dt by courantNumber*H/cs, the signal-crossing
// time across a particle's smoothing length.
type CourantCriterion struct {
	Number float64
}

func (CourantCriterion) Kind() CriterionKind { return CourantKind }

func (c CourantCriterion) Eval(st *storage.Storage, i int) float64 {
	h := st.Get(storage.POSITION).Vector(i).H
	cs := st.Get(storage.SOUND_SPEED).Scalar(i)
	if cs <= 0 {
		return math.Inf(1)
	}
	return c.Number * h / cs
}

// AccelerationCriterion bounds dt by sqrt(H/|a|), limiting how far a
// particle's velocity can change relative to its smoothing length in one
// step.
type AccelerationCriterion struct{}

func (AccelerationCriterion) Kind() CriterionKind { return AccelerationKind }

func (AccelerationCriterion) Eval(st *storage.Storage, i int) float64 {
	pos := st.Get(storage.POSITION)
	a := pos.VectorD2t(i)
	mag := math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
	if mag <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(pos.Vector(i).H / mag)
}

// DerivativeCriterion bounds dt for one evolved scalar quantity q by
// factor*max(|q|,q_min)/max(|dq/dt|,eps), where q_min is the owning
// material's declared Minimal(id) scale.
type DerivativeCriterion struct {
	Id     storage.Id
	Factor float64
	Eps    float64
}

func (DerivativeCriterion) Kind() CriterionKind { return DerivativeKind }

func (d DerivativeCriterion) Eval(st *storage.Storage, i int) float64 {
	q := st.GetOrNil(d.Id)
	if q == nil || q.Type != quantity.Scalar || q.Order != quantity.First {
		return math.Inf(1)
	}
	eps := d.Eps
	if eps <= 0 {
		eps = 1e-30
	}
	dq := math.Abs(q.ScalarDt(i))
	if dq <= eps {
		dq = eps
	}
	qmin := 0.0
	if mat, ok := st.MaterialOf(i).(*material.Material); ok {
		qmin = mat.Minimal(d.Id)
	}
	return d.Factor * math.Max(math.Abs(q.Scalar(i)), qmin) / dq
}

// MultiCriterion takes the minimum over every enabled Criterion, over
// every particle, clamped to [TinyTimeStep, MaxTimeStep]. When Persist is
// set, each particle's own bound and the Criterion that produced it are
// written into storage.TIME_STEP / storage.TIME_STEP_CRITERION.
type MultiCriterion struct {
	Criteria     []Criterion
	MaxTimeStep  float64
	TinyTimeStep float64
	Persist      bool
}

// Compute returns the global adaptive timestep and which Criterion bound
// it, reducing per-worker partial minimums computed over st's particles.
func (m *MultiCriterion) Compute(st *storage.Storage, sched scheduler.Scheduler) (float64, CriterionKind) {
	if len(m.Criteria) == 0 {
		chk.Panic("timestep: MultiCriterion requires at least one Criterion")
	}

	n := st.N()
	var timeStep, timeStepKind *quantity.Quantity
	if m.Persist {
		timeStep = st.GetOrNil(storage.TIME_STEP)
		timeStepKind = st.GetOrNil(storage.TIME_STEP_CRITERION)
	}

	type partial struct {
		dt   float64
		kind CriterionKind
	}
	locals := scheduler.NewThreadLocal[partial](sched.NumWorkers())
	locals.Init(func() partial { return partial{dt: math.Inf(1)} })

	sched.ParallelForIndexed(n, func(workerID, lo, hi int) error {
		local := locals.Get(workerID)
		for i := lo; i < hi; i++ {
			best := math.Inf(1)
			bestKind := m.Criteria[0].Kind()
			for _, c := range m.Criteria {
				if v := c.Eval(st, i); v < best {
					best = v
					bestKind = c.Kind()
				}
			}
			if timeStep != nil {
				timeStep.SetScalar(i, best)
			}
			if timeStepKind != nil {
				timeStepKind.SetIndex(i, int(bestKind))
			}
			if best < local.dt {
				local.dt = best
				local.kind = bestKind
			}
		}
		return nil
	})

	dt := math.Inf(1)
	var kind CriterionKind
	for _, p := range locals.All() {
		if p.dt < dt {
			dt = p.dt
			kind = p.kind
		}
	}

	if dt > m.MaxTimeStep {
		dt = m.MaxTimeStep
	}
	if dt < m.TinyTimeStep {
		dt = m.TinyTimeStep
	}
	return dt, kind
}
