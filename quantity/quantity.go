package quantity

import "github.com/cpmech/gosl/chk"

// Quantity is a typed, multi-order bundle of per-particle values. Buffers
// are stored flat (particle-major) so that resizing/swapping is a single
// slice operation; the component count per particle is fixed by ValueType.
type Quantity struct {
	Type  ValueType
	Order Order
	N     int // particle count

	value []float64 // len == N*components
	dt    []float64 // len == N*components, present iff Order >= First
	d2t   []float64 // len == N*components, present iff Order >= Second
}

// New allocates a Quantity of the given type/order for n particles, with
// every component zeroed.
func New(vt ValueType, order Order, n int) *Quantity {
	c := componentsOf(vt)
	q := &Quantity{Type: vt, Order: order, N: n}
	q.value = make([]float64, n*c)
	if order >= First {
		q.dt = make([]float64, n*c)
	}
	if order >= Second {
		q.d2t = make([]float64, n*c)
	}
	return q
}

func (q *Quantity) components() int { return componentsOf(q.Type) }

// HasDt reports whether this quantity stores a first derivative.
func (q *Quantity) HasDt() bool { return q.Order >= First }

// HasD2t reports whether this quantity stores a second derivative.
func (q *Quantity) HasD2t() bool { return q.Order >= Second }

// Upgrade raises the quantity's order in place, allocating zeroed
// derivative buffers for any newly required order; existing values are
// left untouched. Downgrading is a no-op (buffers are simply ignored by
// HasDt/HasD2t from then on, but are not freed, matching gofem's
// conservative "never silently drop state" posture for internal vars).
func (q *Quantity) Upgrade(order Order) {
	if order >= First && q.dt == nil {
		q.dt = make([]float64, q.N*q.components())
	}
	if order >= Second && q.d2t == nil {
		q.d2t = make([]float64, q.N*q.components())
	}
	if order > q.Order {
		q.Order = order
	}
}

// Resize grows or shrinks every buffer to n particles. Existing values in
// [0, min(N,n)) are preserved; new slots are zeroed unless keepEmpty is
// true and the buffer in question is currently absent (nil), in which case
// it is left nil.
func (q *Quantity) Resize(n int, keepEmptyUnchanged bool) {
	c := q.components()
	resizeBuf := func(buf []float64) []float64 {
		if buf == nil {
			if keepEmptyUnchanged {
				return nil
			}
			return make([]float64, n*c)
		}
		nb := make([]float64, n*c)
		copy(nb, buf)
		return nb
	}
	q.value = resizeBuf(q.value)
	if q.dt != nil || q.Order >= First {
		q.dt = resizeBuf(q.dt)
	}
	if q.d2t != nil || q.Order >= Second {
		q.d2t = resizeBuf(q.d2t)
	}
	q.N = n
}

// ZeroHighestDerivative zeros d2t for SECOND-order quantities and dt for
// FIRST-order quantities; values are untouched. Idempotent.
func (q *Quantity) ZeroHighestDerivative() {
	switch q.Order {
	case Second:
		for i := range q.d2t {
			q.d2t[i] = 0
		}
	case First:
		for i := range q.dt {
			q.dt[i] = 0
		}
	}
}

// Clone returns a deep copy of the buffers selected by the flags.
func (q *Quantity) Clone(includeDt, includeD2t bool) *Quantity {
	nq := &Quantity{Type: q.Type, Order: q.Order, N: q.N}
	nq.value = append([]float64(nil), q.value...)
	if includeDt && q.dt != nil {
		nq.dt = append([]float64(nil), q.dt...)
	}
	if includeD2t && q.d2t != nil {
		nq.d2t = append([]float64(nil), q.d2t...)
	}
	return nq
}

func checkType(q *Quantity, vt ValueType) {
	if q.Type != vt {
		chk.Panic("quantity: value-type mismatch: have %v, requested %v", q.Type, vt)
	}
}

func checkOrder(q *Quantity, need Order) {
	if q.Order < need {
		chk.Panic("quantity: order %v does not provide requested order %v", q.Order, need)
	}
}

func checkIndex(q *Quantity, i int) {
	if i < 0 || i >= q.N {
		chk.Panic("quantity: index %d out of range [0,%d)", i, q.N)
	}
}

// --- scalar access -----------------------------------------------------

func (q *Quantity) Scalar(i int) float64 {
	checkType(q, Scalar)
	checkIndex(q, i)
	return q.value[i]
}

func (q *Quantity) SetScalar(i int, v float64) {
	checkType(q, Scalar)
	checkIndex(q, i)
	q.value[i] = v
}

func (q *Quantity) ScalarDt(i int) float64 {
	checkType(q, Scalar)
	checkOrder(q, First)
	checkIndex(q, i)
	return q.dt[i]
}

func (q *Quantity) SetScalarDt(i int, v float64) {
	checkType(q, Scalar)
	checkOrder(q, First)
	checkIndex(q, i)
	q.dt[i] = v
}

func (q *Quantity) ScalarD2t(i int) float64 {
	checkType(q, Scalar)
	checkOrder(q, Second)
	checkIndex(q, i)
	return q.d2t[i]
}

func (q *Quantity) SetScalarD2t(i int, v float64) {
	checkType(q, Scalar)
	checkOrder(q, Second)
	checkIndex(q, i)
	q.d2t[i] = v
}

// --- index access --------------------------------------------------------

func (q *Quantity) Index(i int) int {
	checkType(q, Index)
	checkIndex(q, i)
	return int(q.value[i])
}

func (q *Quantity) SetIndex(i int, v int) {
	checkType(q, Index)
	checkIndex(q, i)
	q.value[i] = float64(v)
}

// --- vector access ---------------------------------------------------------

func (q *Quantity) Vector(i int) Vec3 {
	checkType(q, Vector)
	checkIndex(q, i)
	o := i * 4
	return vec3From([4]float64{q.value[o], q.value[o+1], q.value[o+2], q.value[o+3]})
}

func (q *Quantity) SetVector(i int, v Vec3) {
	checkType(q, Vector)
	checkIndex(q, i)
	o := i * 4
	c := v.components()
	copy(q.value[o:o+4], c[:])
}

func (q *Quantity) VectorDt(i int) Vec3 {
	checkType(q, Vector)
	checkOrder(q, First)
	checkIndex(q, i)
	o := i * 4
	return vec3From([4]float64{q.dt[o], q.dt[o+1], q.dt[o+2], q.dt[o+3]})
}

func (q *Quantity) SetVectorDt(i int, v Vec3) {
	checkType(q, Vector)
	checkOrder(q, First)
	checkIndex(q, i)
	o := i * 4
	c := v.components()
	copy(q.dt[o:o+4], c[:])
}

func (q *Quantity) VectorD2t(i int) Vec3 {
	checkType(q, Vector)
	checkOrder(q, Second)
	checkIndex(q, i)
	o := i * 4
	return vec3From([4]float64{q.d2t[o], q.d2t[o+1], q.d2t[o+2], q.d2t[o+3]})
}

func (q *Quantity) SetVectorD2t(i int, v Vec3) {
	checkType(q, Vector)
	checkOrder(q, Second)
	checkIndex(q, i)
	o := i * 4
	c := v.components()
	copy(q.d2t[o:o+4], c[:])
}

// --- symmetric tensor access --------------------------------------------

func symTensorAt(buf []float64, i int) SymTensor3 {
	o := i * 6
	return SymTensor3{buf[o], buf[o+1], buf[o+2], buf[o+3], buf[o+4], buf[o+5]}
}

func setSymTensorAt(buf []float64, i int, t SymTensor3) {
	o := i * 6
	buf[o], buf[o+1], buf[o+2], buf[o+3], buf[o+4], buf[o+5] = t.XX, t.YY, t.ZZ, t.XY, t.XZ, t.YZ
}

func (q *Quantity) SymTensor(i int) SymTensor3 {
	checkType(q, SymTensor)
	checkIndex(q, i)
	return symTensorAt(q.value, i)
}

func (q *Quantity) SetSymTensor(i int, t SymTensor3) {
	checkType(q, SymTensor)
	checkIndex(q, i)
	setSymTensorAt(q.value, i, t)
}

func (q *Quantity) SymTensorDt(i int) SymTensor3 {
	checkType(q, SymTensor)
	checkOrder(q, First)
	checkIndex(q, i)
	return symTensorAt(q.dt, i)
}

func (q *Quantity) SetSymTensorDt(i int, t SymTensor3) {
	checkType(q, SymTensor)
	checkOrder(q, First)
	checkIndex(q, i)
	setSymTensorAt(q.dt, i, t)
}

// --- traceless tensor access ---------------------------------------------

func tracelessAt(buf []float64, i int) TracelessTensor3 {
	o := i * 5
	return TracelessTensor3{buf[o], buf[o+1], buf[o+2], buf[o+3], buf[o+4]}
}

func setTracelessAt(buf []float64, i int, t TracelessTensor3) {
	o := i * 5
	buf[o], buf[o+1], buf[o+2], buf[o+3], buf[o+4] = t.XX, t.YY, t.XY, t.XZ, t.YZ
}

func (q *Quantity) Traceless(i int) TracelessTensor3 {
	checkType(q, TracelessTensor)
	checkIndex(q, i)
	return tracelessAt(q.value, i)
}

func (q *Quantity) SetTraceless(i int, t TracelessTensor3) {
	checkType(q, TracelessTensor)
	checkIndex(q, i)
	setTracelessAt(q.value, i, t)
}

func (q *Quantity) TracelessDt(i int) TracelessTensor3 {
	checkType(q, TracelessTensor)
	checkOrder(q, First)
	checkIndex(q, i)
	return tracelessAt(q.dt, i)
}

func (q *Quantity) SetTracelessDt(i int, t TracelessTensor3) {
	checkType(q, TracelessTensor)
	checkOrder(q, First)
	checkIndex(q, i)
	setTracelessAt(q.dt, i, t)
}
