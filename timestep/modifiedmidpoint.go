package timestep

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// ModifiedMidpoint is the sub-stepping scheme of spec.md §4.6's table,
// using a rotating mid (all buffers) auxiliary storage: it advances in
// Substeps increments of size dt/Substeps via z_{m+1}=z_{m-1}+2H*f(z_m),
// seeded by a single Euler half-step z1=z0+H*f(z0), and returns the
// averaged endpoint y=0.5*(z_N+z_{N-1}+H*f(z_N)). This is the same
// building block Bulirsch-Stoer extrapolates over multiple Substeps
// counts.
type ModifiedMidpoint struct {
	Substeps int
}

func (m *ModifiedMidpoint) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	n := m.Substeps
	if n < 2 {
		chk.Panic("timestep: ModifiedMidpoint requires Substeps >= 2, got %d", n)
	}
	H := dt / float64(n)

	if err := ev.Step(st, t); err != nil {
		return err
	}
	zPrev := st.Clone(storage.AllBuffers) // z0, with f(z0) in its own derivative buffers

	combineWeighted(st, zPrev, []*storage.Storage{zPrev}, []float64{H}) // st = z1
	if err := ev.Step(st, t+H); err != nil {
		return err
	}
	zCur := st.Clone(storage.AllBuffers) // z1, with f(z1)

	for step := 1; step < n; step++ {
		combineWeighted(st, zPrev, []*storage.Storage{zCur}, []float64{2 * H}) // st = z_{m+1}
		zPrev = zCur
		if err := ev.Step(st, t+float64(step+1)*H); err != nil {
			return err
		}
		zCur = st.Clone(storage.AllBuffers)
	}

	finalizeMidpoint(st, zCur, zPrev, H)
	clampStorage(st)
	return nil
}

// finalizeMidpoint sets dst's values to 0.5*(zN+zN-1)+0.5*H*f(zN), the
// endpoint-averaged result that cancels the method's leading error term.
func finalizeMidpoint(dst, zN, zNm1 *storage.Storage, H float64) {
	pos := dst.Get(storage.POSITION)
	pN := zN.Get(storage.POSITION)
	pNm1 := zNm1.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		r := pN.Vector(i).Add(pNm1.Vector(i)).Scale(0.5).Add(pN.VectorDt(i).Scale(0.5 * H))
		v := pN.VectorDt(i).Add(pNm1.VectorDt(i)).Scale(0.5).Add(pN.VectorD2t(i).Scale(0.5 * H))
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
		qN := zN.Get(id)
		qNm1 := zNm1.Get(id)
		switch q.Type {
		case quantity.Scalar:
			for i := 0; i < q.N; i++ {
				val := 0.5*(qN.Scalar(i)+qNm1.Scalar(i)) + 0.5*H*qN.ScalarDt(i)
				q.SetScalar(i, val)
			}
		case quantity.Vector:
			for i := 0; i < q.N; i++ {
				val := qN.Vector(i).Add(qNm1.Vector(i)).Scale(0.5).Add(qN.VectorDt(i).Scale(0.5 * H))
				q.SetVector(i, val)
			}
		case quantity.SymTensor:
			for i := 0; i < q.N; i++ {
				val := qN.SymTensor(i).Add(qNm1.SymTensor(i)).Scale(0.5).Add(qN.SymTensorDt(i).Scale(0.5 * H))
				q.SetSymTensor(i, val)
			}
		case quantity.TracelessTensor:
			for i := 0; i < q.N; i++ {
				val := qN.Traceless(i).Add(qNm1.Traceless(i)).Scale(0.5).Add(qN.TracelessDt(i).Scale(0.5 * H))
				q.SetTraceless(i, val)
			}
		}
	}
}
