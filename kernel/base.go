package kernel

import (
	"math"

	"github.com/cpmech/gosph/quantity"
)

// base implements Kernel for any shape, computing its normalization
// constant once at construction (NewBase).
type base struct {
	dim   int
	sh    shape
	sigma float64
}

func newBase(dim int, sh shape) base {
	return base{dim: dim, sh: sh, sigma: normalizationConstant(sh, dim)}
}

func (b base) Dimension() int   { return b.dim }
func (b base) Support() float64 { return b.sh.Support() }

func (b base) Value(r quantity.Vec3, h float64) float64 {
	q := r.Length() / h
	return b.sigma * math.Pow(h, -float64(b.dim)) * b.sh.F(q)
}

// safeDivByQ returns fprime/q, or 0 for q below tinyQ. This is exact where
// it matters: Grad multiplies the result by r, which is itself the zero
// vector at q=0, so any finite stand-in for the q->0 limit of F'(q)/q
// produces the same (zero) gradient there.
func safeDivByQ(fprime, q float64) float64 {
	const tinyQ = 1e-12
	if q < tinyQ {
		return 0
	}
	return fprime / q
}

func (b base) Grad(r quantity.Vec3, h float64) quantity.Vec3 {
	q := r.Length() / h
	factor := b.sigma * math.Pow(h, -float64(b.dim+2)) * b.sh.DFq(q)
	return quantity.Vec3{X: r.X * factor, Y: r.Y * factor, Z: r.Z * factor}
}
