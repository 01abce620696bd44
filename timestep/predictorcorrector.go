package timestep

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// PredictorCorrector is the two-stage scheme of spec.md §4.6's table: a
// second-order Taylor predictor using the derivatives already current in
// st, a re-evaluation at the predicted state, and a trapezoidal correction
// using only the highest-derivative delta between the two evaluations --
// which is why the snapshot it keeps is Clone(HighestDerivatives) rather
// than a full state clone (the "predictions (highest derivatives only)"
// auxiliary storage of the table).
type PredictorCorrector struct {
	Colliders []Collider
}

func (pc *PredictorCorrector) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	if err := ev.Step(st, t); err != nil {
		return err
	}

	pred := st.Clone(storage.HighestDerivatives)

	pos := st.Get(storage.POSITION)
	predictPosition(pos, dt)
	kickVelocity(pos, dt)
	if err := runColliders(pc.Colliders, st); err != nil {
		return err
	}
	advanceFirstOrder(st, dt)

	if err := ev.Step(st, t+dt); err != nil {
		return err
	}

	correct(st, pred, dt)
	clampStorage(st)
	return nil
}

// correct applies r-=(a_c-a_p)*dt^2/6, v-=(a_c-a_p)*dt/2 to POSITION
// (spec.md §4.6's predictor-corrector row) and the analogous trapezoidal
// (Heun) correction q+=(dq_c-dq_p)*dt/2 to every other FIRST-order
// quantity, where _p comes from pred (the derivative used by the
// predictor, captured before it ran) and _c is st's current (post
// re-evaluation) derivative.
func correct(st, pred *storage.Storage, dt float64) {
	pos := st.Get(storage.POSITION)
	oldPos := pred.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		delta := pos.VectorD2t(i).Sub(oldPos.VectorD2t(i))
		pos.SetVector(i, pos.Vector(i).Add(delta.Scale(-dt*dt/6)))
		pos.SetVectorDt(i, pos.VectorDt(i).Add(delta.Scale(-0.5*dt)))
	}

	for _, id := range st.Ids() {
		if id == storage.POSITION {
			continue
		}
		if !pred.Has(id) {
			continue
		}
		q := st.Get(id)
		oq := pred.Get(id)
		if q.Order != quantity.First {
			continue
		}
		switch q.Type {
		case quantity.Scalar:
			for i := 0; i < q.N; i++ {
				d := q.ScalarDt(i) - oq.ScalarDt(i)
				q.SetScalar(i, q.Scalar(i)+0.5*dt*d)
			}
		case quantity.Vector:
			for i := 0; i < q.N; i++ {
				d := q.VectorDt(i).Sub(oq.VectorDt(i))
				q.SetVector(i, q.Vector(i).Add(d.Scale(0.5*dt)))
			}
		case quantity.SymTensor:
			for i := 0; i < q.N; i++ {
				d := q.SymTensorDt(i).Add(oq.SymTensorDt(i).Scale(-1))
				q.SetSymTensor(i, q.SymTensor(i).Add(d.Scale(0.5*dt)))
			}
		case quantity.TracelessTensor:
			for i := 0; i < q.N; i++ {
				d := q.TracelessDt(i).Add(oq.TracelessDt(i).Scale(-1))
				q.SetTraceless(i, q.Traceless(i).Add(d.Scale(0.5*dt)))
			}
		}
	}
}
