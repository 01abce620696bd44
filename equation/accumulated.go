// package equation implements the polymorphic EquationTerm/Derivative
// framework of spec.md §3.4-3.5: physical laws declare the derivative
// buffers they need, derivatives evaluate pairwise kernel contributions
// into per-thread Accumulated buffers, and the solver merges those back
// into Storage under SHARED (sum) or UNIQUE (move) semantics.
package equation

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// AccumulatorKind controls how an Accumulated buffer is merged back into
// Storage: SHARED buffers are summed contribution-by-contribution (many
// derivatives may add into the same id), UNIQUE buffers are declared by
// at most one derivative and simply moved into place.
type AccumulatorKind int

const (
	Shared AccumulatorKind = iota
	Unique
)

func (k AccumulatorKind) String() string {
	if k == Unique {
		return "Unique"
	}
	return "Shared"
}

// Accumulated is a scratch buffer set keyed by storage.Id, built by a
// Derivative's create(Accumulated) and written into during pairwise
// evaluation. One Accumulated is owned per worker goroutine (scheduler's
// thread-local slot); it never touches Storage directly.
type Accumulated struct {
	n     int
	kinds map[storage.Id]AccumulatorKind
	bufs  map[storage.Id]*quantity.Quantity
}

// NewAccumulated allocates an empty accumulator set sized for n particles.
func NewAccumulated(n int) *Accumulated {
	return &Accumulated{n: n, kinds: map[storage.Id]AccumulatorKind{}, bufs: map[storage.Id]*quantity.Quantity{}}
}

// Declare registers id as an output of the calling Derivative with the
// given layout and merge kind. Declaring the same id twice is only legal
// when both declarations agree on kind and type (the idempotent
// "declared by multiple SHARED derivatives" case; a higher order in the
// later declaration upgrades the existing buffer); a UNIQUE/UNIQUE or
// UNIQUE/SHARED collision on the same id is a configuration error,
// reported immediately rather than silently merged (spec.md §3.5).
func (a *Accumulated) Declare(id storage.Id, vt quantity.ValueType, order quantity.Order, kind AccumulatorKind) {
	if existing, ok := a.bufs[id]; ok {
		existingKind := a.kinds[id]
		if existingKind != kind || existing.Type != vt {
			chk.Panic("equation: accumulator collision on %v: already declared as %v/%v, now %v/%v", id, existingKind, existing.Type, kind, vt)
		}
		if kind == Unique {
			chk.Panic("equation: %v is declared UNIQUE by more than one derivative", id)
		}
		if order > existing.Order {
			existing.Upgrade(order)
		}
		return
	}
	a.kinds[id] = kind
	a.bufs[id] = quantity.New(vt, order, a.n)
}

// Has reports whether id was declared.
func (a *Accumulated) Has(id storage.Id) bool {
	_, ok := a.bufs[id]
	return ok
}

// Kind returns the merge kind id was declared with.
func (a *Accumulated) Kind(id storage.Id) AccumulatorKind { return a.kinds[id] }

// Buffer returns the raw scratch Quantity for id, for a Derivative's
// pairwise increments (AddScalar/AddVector/... below are the common case;
// Buffer is for derivatives that need direct indexed access, e.g. to read
// back their own partial sums mid-pair-loop).
func (a *Accumulated) Buffer(id storage.Id) *quantity.Quantity {
	q, ok := a.bufs[id]
	if !ok {
		chk.Panic("equation: accumulator %v was not declared", id)
	}
	return q
}

// Ids returns every declared id (unordered iteration is fine: merge order
// does not affect the result since SHARED merges commute and UNIQUE
// merges have exactly one writer).
func (a *Accumulated) Ids() []storage.Id {
	ids := make([]storage.Id, 0, len(a.bufs))
	for id := range a.bufs {
		ids = append(ids, id)
	}
	return ids
}

// Reset zeroes every declared buffer's highest-order slot (the value of a
// Zero-order buffer, dt of a First-order one, d2t of a Second-order one)
// so a thread-local Accumulated can be reused across steps; lower-order
// slots of First/Second-order buffers are left as they are.
func (a *Accumulated) Reset() {
	for _, q := range a.bufs {
		q.ZeroHighestDerivative()
		if q.Order == quantity.Zero {
			blank := quantity.New(q.Type, q.Order, q.N)
			*q = *blank
		}
	}
}

// --- typed pairwise increment helpers ------------------------------------
//
// These add (not set) into the accumulator's highest-order derivative
// buffer for SHARED kinds, following the "+=" commutativity contract of
// spec.md §9 (derivative execution order within a pair is unspecified).

func (a *Accumulated) AddScalarDt(id storage.Id, i int, v float64) {
	q := a.Buffer(id)
	q.SetScalarDt(i, q.ScalarDt(i)+v)
}

func (a *Accumulated) AddScalarD2t(id storage.Id, i int, v float64) {
	q := a.Buffer(id)
	q.SetScalarD2t(i, q.ScalarD2t(i)+v)
}

func (a *Accumulated) AddScalar(id storage.Id, i int, v float64) {
	q := a.Buffer(id)
	q.SetScalar(i, q.Scalar(i)+v)
}

func (a *Accumulated) AddVectorDt(id storage.Id, i int, v quantity.Vec3) {
	q := a.Buffer(id)
	q.SetVectorDt(i, q.VectorDt(i).Add(v))
}

func (a *Accumulated) AddVector(id storage.Id, i int, v quantity.Vec3) {
	q := a.Buffer(id)
	q.SetVector(i, q.Vector(i).Add(v))
}

func (a *Accumulated) AddVectorD2t(id storage.Id, i int, v quantity.Vec3) {
	q := a.Buffer(id)
	q.SetVectorD2t(i, q.VectorD2t(i).Add(v))
}

func (a *Accumulated) AddSymTensor(id storage.Id, i int, t quantity.SymTensor3) {
	q := a.Buffer(id)
	q.SetSymTensor(i, q.SymTensor(i).Add(t))
}

func (a *Accumulated) AddSymTensorDt(id storage.Id, i int, t quantity.SymTensor3) {
	q := a.Buffer(id)
	q.SetSymTensorDt(i, q.SymTensorDt(i).Add(t))
}

func (a *Accumulated) AddTracelessDt(id storage.Id, i int, t quantity.TracelessTensor3) {
	q := a.Buffer(id)
	q.SetTracelessDt(i, q.TracelessDt(i).Add(t))
}

func (a *Accumulated) Increment(id storage.Id, i int) {
	q := a.Buffer(id)
	q.SetIndex(i, q.Index(i)+1)
}
