package kernel

import "github.com/cpmech/gosph/quantity"

// Scaled wraps a Kernel and evaluates it at an effective smoothing length
// factor*h, the "scaled wrapper" of spec.md §3.6 used e.g. to widen a
// kernel's support without changing the base H field.
type Scaled struct {
	inner  Kernel
	factor float64
}

func NewScaled(inner Kernel, factor float64) *Scaled {
	return &Scaled{inner: inner, factor: factor}
}

func (s *Scaled) Value(r quantity.Vec3, h float64) float64 { return s.inner.Value(r, s.factor*h) }
func (s *Scaled) Grad(r quantity.Vec3, h float64) quantity.Vec3 {
	return s.inner.Grad(r, s.factor*h)
}
func (s *Scaled) Support() float64 { return s.inner.Support() }
func (s *Scaled) Dimension() int   { return s.inner.Dimension() }
