package kernel

import "github.com/cpmech/gosl/chk"

var allocators = map[string]func(dim int) Kernel{
	"cubic-spline":    func(dim int) Kernel { return NewCubicSpline(dim) },
	"quartic":         func(dim int) Kernel { return NewQuartic(dim) },
	"wendland-c2":     func(dim int) Kernel { return NewWendlandC2(dim) },
	"wendland-c4":     func(dim int) Kernel { return NewWendlandC4(dim) },
	"wendland-c6":     func(dim int) Kernel { return NewWendlandC6(dim) },
	"gaussian":        func(dim int) Kernel { return NewGaussian(dim) },
	"thomas-couchman": func(dim int) Kernel { return NewThomasCouchman(dim) },
	"core-triangle":   func(dim int) Kernel { return NewCoreTriangle(dim) },
	"poly6":           func(dim int) Kernel { return NewPoly6(dim) },
	"spiky":           func(dim int) Kernel { return NewSpiky(dim) },
}

// New returns a newly constructed Kernel registered under name, following
// the same self-registering factory-map idiom as the material package.
func New(name string, dim int) (Kernel, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("kernel %q is not available", name)
	}
	return alloc(dim), nil
}

var shapesByName = map[string]shape{
	"cubic-spline":    cubicSplineShape{},
	"quartic":         quarticShape{},
	"wendland-c2":     wendlandC2Shape{},
	"wendland-c4":     wendlandC4Shape{},
	"wendland-c6":     wendlandC6Shape{},
	"gaussian":        gaussianShape{},
	"thomas-couchman": thomasCouchmanShape{},
	"core-triangle":   coreTriangleShape{},
	"poly6":           poly6Shape{},
	"spiky":           spikyShape{},
}

// NewGravityKernelNamed returns the GravityKernel solving the potential
// equation for the named SPH kernel's density profile.
func NewGravityKernelNamed(name string) (*GravityKernel, error) {
	sh, ok := shapesByName[name]
	if !ok {
		return nil, chk.Err("kernel %q is not available", name)
	}
	return NewGravityKernel(sh), nil
}
