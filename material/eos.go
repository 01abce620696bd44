// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package material implements the equation-of-state, rheology, and damage
// models of spec.md §4.2, following gofem's mdl/solid self-registering
// factory-map idiom (Init(prms) + package-level `allocators`).
package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/num"
)

// Eos maps (density, specific energy) to (pressure, sound speed).
type Eos interface {
	Init(prms dbf.Params) error
	Evaluate(rho, u float64) (p, cs float64)
	GetDensity(p, u float64) (rho float64, err error)
	GetInternalEnergy(rho, p float64) (u float64, err error)
}

var eosAllocators = map[string]func() Eos{}

// NewEos returns a new, uninitialised Eos instance registered under name.
func NewEos(name string) (Eos, error) {
	alloc, ok := eosAllocators[name]
	if !ok {
		return nil, chk.Err("eos %q is not available in the material database", name)
	}
	return alloc(), nil
}

// --- Ideal gas -----------------------------------------------------------

// IdealGas implements p=(gamma-1)*rho*u, cs=sqrt(gamma*p/rho).
type IdealGas struct {
	Gamma float64
}

func init() { eosAllocators["ideal-gas"] = func() Eos { return new(IdealGas) } }

func (o *IdealGas) Init(prms dbf.Params) error {
	o.Gamma = 1.4
	for _, p := range prms {
		if p.N == "gamma" {
			o.Gamma = p.V
		}
	}
	return nil
}

func (o *IdealGas) Evaluate(rho, u float64) (p, cs float64) {
	p = (o.Gamma - 1) * rho * u
	if rho <= 0 {
		return p, 0
	}
	cs = math.Sqrt(math.Max(o.Gamma*p/rho, 0))
	return
}

func (o *IdealGas) GetDensity(p, u float64) (rho float64, err error) {
	if (o.Gamma-1)*u == 0 {
		return 0, chk.Err("ideal-gas: cannot invert density at u=0")
	}
	return p / ((o.Gamma - 1) * u), nil
}

func (o *IdealGas) GetInternalEnergy(rho, p float64) (u float64, err error) {
	if rho == 0 {
		return 0, chk.Err("ideal-gas: cannot invert energy at rho=0")
	}
	return p / ((o.Gamma - 1) * rho), nil
}

// --- Polytropic ------------------------------------------------------------

// Polytropic implements p=K*rho^gamma.
type Polytropic struct {
	K, Gamma float64
}

func init() { eosAllocators["polytropic"] = func() Eos { return new(Polytropic) } }

func (o *Polytropic) Init(prms dbf.Params) error {
	o.K, o.Gamma = 1, 5.0 / 3.0
	for _, p := range prms {
		switch p.N {
		case "K":
			o.K = p.V
		case "gamma":
			o.Gamma = p.V
		}
	}
	return nil
}

func (o *Polytropic) Evaluate(rho, u float64) (p, cs float64) {
	if rho <= 0 {
		return 0, 0
	}
	p = o.K * math.Pow(rho, o.Gamma)
	cs = math.Sqrt(o.Gamma * p / rho)
	return
}

func (o *Polytropic) GetDensity(p, u float64) (rho float64, err error) {
	if p < 0 {
		return 0, chk.Err("polytropic: negative pressure cannot be inverted")
	}
	return math.Pow(p/o.K, 1/o.Gamma), nil
}

func (o *Polytropic) GetInternalEnergy(rho, p float64) (u float64, err error) {
	return 0, chk.Err("polytropic: energy is not part of this EOS")
}

// --- Tait (weakly compressible fluid) --------------------------------------

// Tait implements p = c0^2*rho0/gamma * ((rho/rho0)^gamma - 1).
type Tait struct {
	C0, Rho0, Gamma float64
}

func init() { eosAllocators["tait"] = func() Eos { return new(Tait) } }

func (o *Tait) Init(prms dbf.Params) error {
	o.Gamma = 7
	for _, p := range prms {
		switch p.N {
		case "c0":
			o.C0 = p.V
		case "rho0":
			o.Rho0 = p.V
		case "gamma":
			o.Gamma = p.V
		}
	}
	return nil
}

func (o *Tait) Evaluate(rho, u float64) (p, cs float64) {
	if o.Rho0 <= 0 {
		return 0, 0
	}
	B := o.C0 * o.C0 * o.Rho0 / o.Gamma
	p = B * (math.Pow(rho/o.Rho0, o.Gamma) - 1)
	cs = o.C0 * math.Pow(rho/o.Rho0, (o.Gamma-1)/2)
	return
}

func (o *Tait) GetDensity(p, u float64) (rho float64, err error) {
	B := o.C0 * o.C0 * o.Rho0 / o.Gamma
	if B == 0 {
		return 0, chk.Err("tait: cannot invert, B=0")
	}
	return o.Rho0 * math.Pow(p/B+1, 1/o.Gamma), nil
}

func (o *Tait) GetInternalEnergy(rho, p float64) (u float64, err error) {
	return 0, chk.Err("tait: energy is not part of this EOS")
}

// --- Mie-Gruneisen ---------------------------------------------------------

// MieGruneisen implements a Hugoniot-based compressed branch with a
// Gamma*u*rho thermal correction term.
type MieGruneisen struct {
	Rho0, C0, S, Gamma0 float64
}

func init() { eosAllocators["mie-gruneisen"] = func() Eos { return new(MieGruneisen) } }

func (o *MieGruneisen) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "rho0":
			o.Rho0 = p.V
		case "c0":
			o.C0 = p.V
		case "s":
			o.S = p.V
		case "Gamma0":
			o.Gamma0 = p.V
		}
	}
	return nil
}

func (o *MieGruneisen) hugoniot(mu float64) (ph float64) {
	if mu >= 0 {
		denom := 1 - (o.S-1)*mu
		if math.Abs(denom) < 1e-12 {
			denom = 1e-12
		}
		return o.Rho0 * o.C0 * o.C0 * mu * (1 + mu) / (denom * denom)
	}
	return o.Rho0 * o.C0 * o.C0 * mu
}

func (o *MieGruneisen) Evaluate(rho, u float64) (p, cs float64) {
	if o.Rho0 <= 0 {
		return 0, 0
	}
	mu := rho/o.Rho0 - 1
	ph := o.hugoniot(mu)
	p = ph + o.Gamma0*rho*u
	cs = o.C0
	return
}

func (o *MieGruneisen) GetDensity(p, u float64) (rho float64, err error) {
	lo, hi := o.Rho0*1e-6, o.Rho0*1e6
	f := func(rhoTry float64) float64 {
		pi, _ := o.Evaluate(rhoTry, u)
		return pi - p
	}
	return bisect(lo, hi, f)
}

func (o *MieGruneisen) GetInternalEnergy(rho, p float64) (u float64, err error) {
	if o.Gamma0*rho == 0 {
		return 0, chk.Err("mie-gruneisen: cannot invert energy, Gamma0*rho=0")
	}
	mu := rho/o.Rho0 - 1
	return (p - o.hugoniot(mu)) / (o.Gamma0 * rho), nil
}

// bisect wraps gosl/num's root finder the way mdl/solid/driver.go uses
// gosl/num for consistent-tangent checks; used by every EOS inverse that
// has no closed form.
func bisect(lo, hi float64, f func(float64) float64) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if flo*fhi > 0 {
		return 0, chk.Err("bisection: root not bracketed in [%g,%g] (f(lo)=%g f(hi)=%g)", lo, hi, flo, fhi)
	}
	solver := num.NewBisection(f, 1e-12)
	root, err := solver.Solve(lo, hi, false)
	if err != nil {
		return 0, chk.Err("bisection failed: %v", err)
	}
	return root, nil
}
