package quantity

// RawBuffers exposes the flat backing buffers, for use by packages (dump,
// storage) that need to serialize a Quantity without depending on its
// internal layout beyond "some flat float64 slices per order".
func (q *Quantity) RawBuffers() (value, dt, d2t []float64) {
	return q.value, q.dt, q.d2t
}

// FromRaw reconstructs a Quantity from previously-exported raw buffers,
// e.g. after decoding a dump.
func FromRaw(vt ValueType, order Order, n int, value, dt, d2t []float64) *Quantity {
	return &Quantity{Type: vt, Order: order, N: n, value: value, dt: dt, d2t: d2t}
}
