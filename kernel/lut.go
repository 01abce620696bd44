package kernel

import (
	"math"

	"github.com/cpmech/gosph/quantity"
)

// lutSamples is the table size spec.md §3.6 mandates.
const lutSamples = 40000

// LutKernel precomputes a source Kernel's value and gradient factors on
// a uniform grid in q²=(r/h)² and linearly interpolates, avoiding the
// source's (possibly branchy, possibly math.Pow-heavy) evaluation on the
// hot pairwise-interaction path. It reproduces the source kernel to
// within 1e-5 everywhere the source's gradient is itself continuous
// (spec.md §3.6); kernels with a genuine gradient discontinuity (Spiky,
// Thomas-Couchman's clamp) are exempted from that tolerance by the
// source kernel's own definition, not by this table.
type LutKernel struct {
	source    Kernel
	support   float64
	q2Max     float64
	valueTbl  [lutSamples + 1]float64
	gradTbl   [lutSamples + 1]float64
}

// NewLutKernel samples source at h=1 over q in [0,support].
func NewLutKernel(source Kernel) *LutKernel {
	lk := &LutKernel{source: source, support: source.Support()}
	lk.q2Max = lk.support * lk.support
	for i := 0; i <= lutSamples; i++ {
		q2 := lk.q2Max * float64(i) / float64(lutSamples)
		q := math.Sqrt(q2)
		lk.valueTbl[i] = source.Value(quantity.Vec3{X: q}, 1)
		g := source.Grad(quantity.Vec3{X: q}, 1)
		if q > 1e-12 {
			lk.gradTbl[i] = g.X / q
		}
	}
	// q=0 has no direction to divide out of the gradient; extrapolate the
	// factor linearly from the first two samples instead.
	lk.gradTbl[0] = 2*lk.gradTbl[1] - lk.gradTbl[2]
	return lk
}

func (lk *LutKernel) interp(tbl *[lutSamples + 1]float64, q2 float64) float64 {
	if q2 >= lk.q2Max {
		return 0
	}
	t := q2 / lk.q2Max * float64(lutSamples)
	i := int(t)
	if i >= lutSamples {
		return tbl[lutSamples]
	}
	frac := t - float64(i)
	return tbl[i]*(1-frac) + tbl[i+1]*frac
}

func (lk *LutKernel) Value(r quantity.Vec3, h float64) float64 {
	q2 := r.LengthSqr() / (h * h)
	return lk.interp(&lk.valueTbl, q2) / pow(h, lk.Dimension())
}

func (lk *LutKernel) Grad(r quantity.Vec3, h float64) quantity.Vec3 {
	q2 := r.LengthSqr() / (h * h)
	factor := lk.interp(&lk.gradTbl, q2) / pow(h, lk.Dimension()+2)
	return quantity.Vec3{X: r.X * factor, Y: r.Y * factor, Z: r.Z * factor}
}

func pow(h float64, n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= h
	}
	return p
}

func (lk *LutKernel) Support() float64 { return lk.support }
func (lk *LutKernel) Dimension() int   { return lk.source.Dimension() }
