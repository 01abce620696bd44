package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosph/quantity"
)

// Rheology updates DEVIATORIC_STRESS (and, through Damage, softens the
// yield surface) for solids (spec.md §4.2).
type Rheology interface {
	Init(prms dbf.Params) error
	// YieldReduce returns the deviatoric stress s clamped back onto (or
	// inside) the yield surface for the given pressure, energy and
	// damage-reduced strength, following gofem's mdl/solid "Update"
	// small-strain-yield idiom but stated for SPH's pairwise-accumulated
	// strain rate rather than an incremental strain.
	YieldReduce(s quantity.TracelessTensor3, pressure, energy, reduceFactor float64) quantity.TracelessTensor3
}

var rheologyAllocators = map[string]func() Rheology{}

func NewRheology(name string) (Rheology, error) {
	alloc, ok := rheologyAllocators[name]
	if !ok {
		return nil, chk.Err("rheology %q is not available in the material database", name)
	}
	return alloc(), nil
}

// VonMises implements a scalar yield limit with energy-dependent
// softening: sigma_y(u) = Y0 * max(0, 1 - u/Umelt).
type VonMises struct {
	Y0, Umelt float64
}

func init() { rheologyAllocators["von-mises"] = func() Rheology { return new(VonMises) } }

func (o *VonMises) Init(prms dbf.Params) error {
	o.Y0 = 1
	o.Umelt = 1e300
	for _, p := range prms {
		switch p.N {
		case "Y0":
			o.Y0 = p.V
		case "Umelt":
			o.Umelt = p.V
		}
	}
	return nil
}

func (o *VonMises) YieldReduce(s quantity.TracelessTensor3, pressure, energy, reduceFactor float64) quantity.TracelessTensor3 {
	yield := o.Y0 * math.Max(0, 1-energy/o.Umelt) * reduceFactor
	full := s.Full()
	j2 := 0.5 * full.DoubleDot(full)
	if j2 <= 1e-300 {
		return s
	}
	invariant := math.Sqrt(3 * j2)
	if invariant <= yield || yield <= 0 {
		if yield <= 0 {
			return quantity.TracelessTensor3{}
		}
		return s
	}
	return s.Scale(yield / invariant)
}

// DruckerPrager implements a pressure-dependent yield envelope with
// cohesion and internal-friction slope: sigma_y(p) = max(0, cohesion +
// frictionSlope*p) * reduceFactor.
type DruckerPrager struct {
	Cohesion, FrictionSlope float64
}

func init() { rheologyAllocators["drucker-prager"] = func() Rheology { return new(DruckerPrager) } }

func (o *DruckerPrager) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "cohesion":
			o.Cohesion = p.V
		case "frictionSlope":
			o.FrictionSlope = p.V
		}
	}
	return nil
}

func (o *DruckerPrager) YieldReduce(s quantity.TracelessTensor3, pressure, energy, reduceFactor float64) quantity.TracelessTensor3 {
	yield := math.Max(0, o.Cohesion+o.FrictionSlope*pressure) * reduceFactor
	full := s.Full()
	j2 := 0.5 * full.DoubleDot(full)
	if j2 <= 1e-300 {
		return s
	}
	invariant := math.Sqrt(3 * j2)
	if invariant <= yield || yield <= 0 {
		if yield <= 0 {
			return quantity.TracelessTensor3{}
		}
		return s
	}
	return s.Scale(yield / invariant)
}
