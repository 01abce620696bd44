package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Tillotson implements the piecewise Tillotson (1962) equation of state:
// a compressed branch (polynomial in mu=rho/rho0-1), an expanded branch
// (double-exponential damping in (rho0/rho-1)), and a linear blend over
// u in [Uiv,Ucv] when rho<rho0 (spec.md §4.2). Sound speed is clamped
// below by 0.25*A/rho0 per original_source's Eos.cpp.
type Tillotson struct {
	Rho0               float64
	A, B               float64
	A_, B_             float64 // Tillotson's "a" and "b" dimensionless coefficients (renamed to avoid clashing with A,B bulk moduli)
	Alpha, Beta        float64
	E0, Uiv, Ucv       float64
}

func init() { eosAllocators["tillotson"] = func() Eos { return new(Tillotson) } }

func (o *Tillotson) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "rho0":
			o.Rho0 = p.V
		case "A":
			o.A = p.V
		case "B":
			o.B = p.V
		case "a":
			o.A_ = p.V
		case "b":
			o.B_ = p.V
		case "alpha":
			o.Alpha = p.V
		case "beta":
			o.Beta = p.V
		case "E0":
			o.E0 = p.V
		case "Uiv":
			o.Uiv = p.V
		case "Ucv":
			o.Ucv = p.V
		}
	}
	return nil
}

func (o *Tillotson) compressed(rho, u float64) (p, cs float64) {
	mu := rho/o.Rho0 - 1
	eta := rho / o.Rho0
	denom := u/(o.E0*eta*eta) + 1
	p = (o.A_ + o.B_/denom) * rho * u
	p += o.A*mu + o.B*mu*mu
	dpdrho := o.A/o.Rho0 + 2*o.B*mu/o.Rho0
	dpdu := o.A_*rho + o.B_*rho/denom
	cs2 := dpdrho + dpdu*p/(rho*rho)
	cs = math.Sqrt(math.Max(cs2, 0))
	floor := 0.25 * o.A / o.Rho0
	if cs < floor {
		cs = floor
	}
	return
}

func (o *Tillotson) expanded(rho, u float64) (p, cs float64) {
	eta := rho / o.Rho0
	mu := eta - 1
	vap := o.Rho0/rho - 1
	expAlpha := math.Exp(-o.Alpha * vap * vap)
	expBeta := math.Exp(-o.Beta * vap)
	denom := u/(o.E0*eta*eta) + 1
	term1 := o.A_ * rho * u
	p = term1 + expAlpha*(o.B_*rho*u/denom+o.A*mu*expBeta)
	cs = math.Max(0.25*o.A/o.Rho0, math.Sqrt(math.Max(o.A_*u, 0)))
	return
}

// Evaluate returns (p, cs) at the given (rho, u), handling the
// compressed branch (rho>=rho0), the expanded branch (rho<rho0 and
// u>Ucv), and the linear blend of both over u in [Uiv,Ucv] -- the
// piecewise-continuity contract of spec.md §4.2.
func (o *Tillotson) Evaluate(rho, u float64) (p, cs float64) {
	if rho >= o.Rho0 || u <= o.Uiv {
		return o.compressed(rho, u)
	}
	if u >= o.Ucv {
		return o.expanded(rho, u)
	}
	pc, cc := o.compressed(rho, u)
	pe, ce := o.expanded(rho, u)
	w := (u - o.Uiv) / (o.Ucv - o.Uiv)
	p = (1-w)*pc + w*pe
	cs = (1-w)*cc + w*ce
	return
}

func (o *Tillotson) GetDensity(p, u float64) (rho float64, err error) {
	lo, hi := o.Rho0*1e-6, o.Rho0*1e6
	f := func(rhoTry float64) float64 {
		pi, _ := o.Evaluate(rhoTry, u)
		return pi - p
	}
	return bisect(lo, hi, f)
}

// GetInternalEnergy inverts (rho,p)->u by bisection on both the
// compressed branch (rho>=rho0) and the expanded branch (rho<rho0)
// (spec.md §4.2).
func (o *Tillotson) GetInternalEnergy(rho, p float64) (u float64, err error) {
	if rho >= o.Rho0 {
		mu := rho/o.Rho0 - 1
		eta := rho / o.Rho0
		// p = (A_+B_/denom)*rho*u + A*mu + B*mu^2, denom depends on u too;
		// solve the (mildly) nonlinear residual with bisection for
		// robustness rather than the full quadratic closed form.
		lo, hi := 0.0, 1e12
		f := func(uTry float64) float64 {
			denom := uTry/(o.E0*eta*eta) + 1
			pi := (o.A_+o.B_/denom)*rho*uTry + o.A*mu + o.B*mu*mu
			return pi - p
		}
		return bisect(lo, hi, f)
	}
	lo, hi := 0.0, 1e12
	f := func(uTry float64) float64 {
		pi, _ := o.expanded(rho, uTry)
		return pi - p
	}
	res, err := bisect(lo, hi, f)
	if err != nil {
		return 0, chk.Err("tillotson: energy inversion on expanded branch failed: %v", err)
	}
	return res, nil
}

// SimplifiedTillotson implements the reduced p = c*rho*u + A*mu form used
// when the full Tillotson coefficient set is unavailable (spec.md §4.2).
type SimplifiedTillotson struct {
	Rho0, A, C float64
}

func init() { eosAllocators["simplified-tillotson"] = func() Eos { return new(SimplifiedTillotson) } }

func (o *SimplifiedTillotson) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "rho0":
			o.Rho0 = p.V
		case "A":
			o.A = p.V
		case "c":
			o.C = p.V
		}
	}
	return nil
}

func (o *SimplifiedTillotson) Evaluate(rho, u float64) (p, cs float64) {
	mu := rho/o.Rho0 - 1
	p = o.C*rho*u + o.A*mu
	cs = math.Sqrt(math.Max(o.A/o.Rho0, 0))
	return
}

func (o *SimplifiedTillotson) GetDensity(p, u float64) (rho float64, err error) {
	lo, hi := o.Rho0*1e-6, o.Rho0*1e6
	f := func(rhoTry float64) float64 {
		pi, _ := o.Evaluate(rhoTry, u)
		return pi - p
	}
	return bisect(lo, hi, f)
}

func (o *SimplifiedTillotson) GetInternalEnergy(rho, p float64) (u float64, err error) {
	mu := rho/o.Rho0 - 1
	if o.C*rho == 0 {
		return 0, chk.Err("simplified-tillotson: cannot invert energy, C*rho=0")
	}
	return (p - o.A*mu) / (o.C * rho), nil
}

// Murnaghan implements p = cs^2*(rho-rho0), cs=sqrt(A/rho0).
type Murnaghan struct {
	Rho0, A float64
}

func init() { eosAllocators["murnaghan"] = func() Eos { return new(Murnaghan) } }

func (o *Murnaghan) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "rho0":
			o.Rho0 = p.V
		case "A":
			o.A = p.V
		}
	}
	return nil
}

func (o *Murnaghan) cs0() float64 { return math.Sqrt(math.Max(o.A/o.Rho0, 0)) }

func (o *Murnaghan) Evaluate(rho, u float64) (p, cs float64) {
	cs = o.cs0()
	p = cs * cs * (rho - o.Rho0)
	return
}

func (o *Murnaghan) GetDensity(p, u float64) (rho float64, err error) {
	cs := o.cs0()
	if cs == 0 {
		return 0, chk.Err("murnaghan: zero sound speed, cannot invert")
	}
	return o.Rho0 + p/(cs*cs), nil
}

func (o *Murnaghan) GetInternalEnergy(rho, p float64) (u float64, err error) {
	return 0, chk.Err("murnaghan: energy is not part of this EOS")
}
