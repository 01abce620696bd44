// package kernel implements the SPH smoothing kernels of spec.md §3.6: a
// radial function W(q), q=r/h, with a per-dimension normalization
// constant computed once at construction (rather than hand-derived per
// kernel) so that every concrete shape, however exotic, integrates to 1
// by construction.
package kernel

import "github.com/cpmech/gosph/quantity"

// Kernel is a compact-support radial smoothing function.
type Kernel interface {
	// Value returns h^-d * W(|r|/h) for the separation vector r.
	Value(r quantity.Vec3, h float64) float64
	// Grad returns the gradient of Value with respect to r, i.e. r *
	// h^-(d+2) * (dW/dq)/q, which is finite (and zero) at r=0 for every
	// kernel in this package.
	Grad(r quantity.Vec3, h float64) quantity.Vec3
	// Support returns the kernel's compact-support radius in units of h
	// (e.g. 2 for the cubic spline).
	Support() float64
	// Dimension returns the spatial dimension this instance was
	// normalized for (1, 2 or 3).
	Dimension() int
}

// shape is the dimensionless radial profile a concrete kernel supplies:
// F(q) is the unnormalized value at q=r/h, and DFq(q) is dF/dq divided
// by q (removing the 1/q singularity analytically so Grad never has to
// guard q->0 with a branch that could disagree with the finite-
// difference check of spec.md §8).
type shape interface {
	F(q float64) float64
	DFq(q float64) float64
	Support() float64
}
