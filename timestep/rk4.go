package timestep

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// RK4 is the classic four-stage Runge-Kutta integrator of spec.md §4.6's
// table. Its k1..k4 auxiliary storages are Clone(AllBuffers) snapshots
// taken afresh in each Advance; they are not registered as dependents of
// st. Each stage clones the full post-evaluation state (values only
// matter as a carrier for the stage's own derivative buffers, which are
// the actual "k"), and combineWeighted folds a weighted sum of those derivative buffers
// onto the base state to produce the next stage's input or the final
// result.
type RK4 struct{}

func (RK4) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	if err := ev.Step(st, t); err != nil {
		return err
	}
	base := st.Clone(storage.AllBuffers) // y0 values, k1 = base's own derivatives

	combineWeighted(st, base, []*storage.Storage{base}, []float64{0.5 * dt})
	if err := ev.Step(st, t+0.5*dt); err != nil {
		return err
	}
	k2 := st.Clone(storage.AllBuffers)

	combineWeighted(st, base, []*storage.Storage{k2}, []float64{0.5 * dt})
	if err := ev.Step(st, t+0.5*dt); err != nil {
		return err
	}
	k3 := st.Clone(storage.AllBuffers)

	combineWeighted(st, base, []*storage.Storage{k3}, []float64{dt})
	if err := ev.Step(st, t+dt); err != nil {
		return err
	}
	k4 := st.Clone(storage.AllBuffers)

	combineWeighted(st, base,
		[]*storage.Storage{base, k2, k3, k4},
		[]float64{dt / 6, dt / 3, dt / 3, dt / 6})

	clampStorage(st)
	return nil
}

// combineWeighted sets dst's evolved-quantity values to base's values plus
// a weighted sum of each rate storage's derivative buffers (rates[k]
// scaled by weights[k]); POSITION is handled specially since its rate is
// the pair (dr/dt=v taken from the rate's dt buffer, dv/dt=a taken from
// its d2t buffer). Zero-order quantities are not combined: dst keeps
// whatever the latest ev.Step wrote into them.
func combineWeighted(dst, base *storage.Storage, rates []*storage.Storage, weights []float64) {
	pos := dst.Get(storage.POSITION)
	basePos := base.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		r := basePos.Vector(i)
		v := basePos.VectorDt(i)
		for k, rate := range rates {
			rq := rate.Get(storage.POSITION)
			r = r.Add(rq.VectorDt(i).Scale(weights[k]))
			v = v.Add(rq.VectorD2t(i).Scale(weights[k]))
		}
		pos.SetVector(i, r)
		pos.SetVectorDt(i, v)
	}

	for _, id := range dst.Ids() {
		if id == storage.POSITION {
			continue
		}
		q := dst.Get(id)
		if q.Order != quantity.First {
			continue
		}
		bq := base.Get(id)
		switch q.Type {
		case quantity.Scalar:
			for i := 0; i < q.N; i++ {
				val := bq.Scalar(i)
				for k, rate := range rates {
					val += weights[k] * rate.Get(id).ScalarDt(i)
				}
				q.SetScalar(i, val)
			}
		case quantity.Vector:
			for i := 0; i < q.N; i++ {
				val := bq.Vector(i)
				for k, rate := range rates {
					val = val.Add(rate.Get(id).VectorDt(i).Scale(weights[k]))
				}
				q.SetVector(i, val)
			}
		case quantity.SymTensor:
			for i := 0; i < q.N; i++ {
				val := bq.SymTensor(i)
				for k, rate := range rates {
					val = val.Add(rate.Get(id).SymTensorDt(i).Scale(weights[k]))
				}
				q.SetSymTensor(i, val)
			}
		case quantity.TracelessTensor:
			for i := 0; i < q.N; i++ {
				val := bq.Traceless(i)
				for k, rate := range rates {
					val = val.Add(rate.Get(id).TracelessDt(i).Scale(weights[k]))
				}
				q.SetTraceless(i, val)
			}
		}
	}
}
