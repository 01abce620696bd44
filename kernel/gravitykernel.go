package kernel

import "github.com/cpmech/gosph/quantity"

// gravitySamples is the resolution of GravityKernel's potential/mass
// tables; smaller than lutSamples since it is built once at startup, not
// re-derived per run, and the integrand is smooth.
const gravitySamples = 4000

// GravityKernel is the potential kernel associated with an SPH density
// kernel W, solving the radial Poisson equation d/dr(r²dφ/dr)=4πr²W(r)
// (spec.md §3.6). Outside the kernel's support it reduces exactly to the
// Newtonian point-mass potential/force, which is the "unit consistency"
// property spec.md §3.6 tests: Value(r>=support,h=1) == -1/r.
type GravityKernel struct {
	sh       shape
	support  float64
	sigma    float64
	massTbl  []float64 // M(q) = enclosed mass fraction, q in [0,support]
	potTbl   []float64 // Phi(q), q in [0,support], Phi(support) == -1/support
}

// NewGravityKernel builds the potential/mass tables for sh, always
// treating it as a 3D mass-density profile (gravity is a 3D force law
// regardless of the hydrodynamic dimensionality the rest of the run uses
// -- the same convention self-gravity SPH codes use when running 2D
// hydro test problems).
func NewGravityKernel(sh shape) *GravityKernel {
	gk := &GravityKernel{sh: sh, support: sh.Support()}
	gk.sigma = normalizationConstant(sh, 3)
	n := gravitySamples
	step := gk.support / float64(n)

	gk.massTbl = make([]float64, n+1)
	w := func(q float64) float64 { return 4 * 3.141592653589793 * q * q * gk.sigma * sh.F(q) }
	acc := 0.0
	prev := w(0)
	for i := 1; i <= n; i++ {
		q := float64(i) * step
		cur := w(q)
		acc += 0.5 * (prev + cur) * step
		gk.massTbl[i] = acc
		prev = cur
	}

	gk.potTbl = make([]float64, n+1)
	gk.potTbl[n] = -1 / gk.support
	integrand := func(i int) float64 {
		q := float64(i) * step
		if q == 0 {
			return 0
		}
		return gk.massTbl[i] / (q * q)
	}
	for i := n - 1; i >= 0; i-- {
		gk.potTbl[i] = gk.potTbl[i+1] - 0.5*(integrand(i)+integrand(i+1))*step
	}
	return gk
}

func (gk *GravityKernel) lookup(tbl []float64, q float64) float64 {
	n := len(tbl) - 1
	step := gk.support / float64(n)
	t := q / step
	i := int(t)
	if i >= n {
		return tbl[n]
	}
	frac := t - float64(i)
	return tbl[i]*(1-frac) + tbl[i+1]*frac
}

// Value returns the gravitational potential at separation r for
// smoothing length h.
func (gk *GravityKernel) Value(r quantity.Vec3, h float64) float64 {
	q := r.Length() / h
	if q >= gk.support {
		return -1 / (q * h)
	}
	return gk.lookup(gk.potTbl, q) / h
}

// Grad returns grad(phi): the field an acceleration is the negation of.
func (gk *GravityKernel) Grad(r quantity.Vec3, h float64) quantity.Vec3 {
	q := r.Length() / h
	var m float64
	if q >= gk.support {
		m = 1
	} else {
		m = gk.lookup(gk.massTbl, q)
	}
	if q < 1e-12 {
		return quantity.Vec3{}
	}
	factor := m / (q * q * q * h * h * h)
	return quantity.Vec3{X: r.X * factor, Y: r.Y * factor, Z: r.Z * factor}
}

func (gk *GravityKernel) Support() float64 { return gk.support }
func (gk *GravityKernel) Dimension() int   { return 3 }
