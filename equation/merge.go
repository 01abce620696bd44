package equation

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// MergeInto writes an Accumulated's buffers back into st: SHARED ids are
// summed into whatever st already holds (so multiple worker-local
// Accumulated sets combine additively across the afterLoop merge step of
// spec.md §4.5), UNIQUE ids simply overwrite (move semantics, since
// exactly one derivative ever writes them). st must already hold id with
// a matching layout (EquationTerm.create is responsible for inserting
// every id a Derivative declares before the pair loop runs).
func (a *Accumulated) MergeInto(st *storage.Storage) {
	for id, q := range a.bufs {
		dst := st.Get(id)
		if dst.Type != q.Type {
			chk.Panic("equation: merge type mismatch on %v: storage has %v, accumulator has %v", id, dst.Type, q.Type)
		}
		kind := a.kinds[id]
		for i := 0; i < a.n && i < dst.N; i++ {
			mergeOne(dst, q, i, kind)
		}
	}
}

func mergeOne(dst, src *quantity.Quantity, i int, kind AccumulatorKind) {
	add := kind == Shared
	switch dst.Type {
	case quantity.Scalar:
		if src.HasD2t() && dst.HasD2t() {
			v := src.ScalarD2t(i)
			if add {
				v += dst.ScalarD2t(i)
			}
			dst.SetScalarD2t(i, v)
		} else if src.HasDt() && dst.HasDt() {
			v := src.ScalarDt(i)
			if add {
				v += dst.ScalarDt(i)
			}
			dst.SetScalarDt(i, v)
		} else {
			v := src.Scalar(i)
			if add {
				v += dst.Scalar(i)
			}
			dst.SetScalar(i, v)
		}
	case quantity.Index:
		v := src.Index(i)
		if add {
			v += dst.Index(i)
		}
		dst.SetIndex(i, v)
	case quantity.Vector:
		if src.HasD2t() && dst.HasD2t() {
			v := src.VectorD2t(i)
			if add {
				v = dst.VectorD2t(i).Add(v)
			}
			dst.SetVectorD2t(i, v)
		} else if src.HasDt() && dst.HasDt() {
			v := src.VectorDt(i)
			if add {
				v = dst.VectorDt(i).Add(v)
			}
			dst.SetVectorDt(i, v)
		} else {
			v := src.Vector(i)
			if add {
				v = dst.Vector(i).Add(v)
			}
			dst.SetVector(i, v)
		}
	case quantity.SymTensor:
		if src.HasDt() && dst.HasDt() {
			v := src.SymTensorDt(i)
			if add {
				v = dst.SymTensorDt(i).Add(v)
			}
			dst.SetSymTensorDt(i, v)
		} else {
			v := src.SymTensor(i)
			if add {
				v = dst.SymTensor(i).Add(v)
			}
			dst.SetSymTensor(i, v)
		}
	case quantity.TracelessTensor:
		if src.HasDt() && dst.HasDt() {
			v := src.TracelessDt(i)
			if add {
				v = dst.TracelessDt(i).Add(v)
			}
			dst.SetTracelessDt(i, v)
		} else {
			v := src.Traceless(i)
			if add {
				v = dst.Traceless(i).Add(v)
			}
			dst.SetTraceless(i, v)
		}
	}
}
