package derivative

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// DerivativeOnlyTerm wraps a single Derivative that writes its final
// contribution entirely through the pairwise accumulator contract (e.g.
// PressureGradient, StressDivergence, ArtificialViscosity): no additional
// per-particle post-processing is needed, so Create/Initialize/Finalize
// are no-ops beyond registering the derivative.
type DerivativeOnlyTerm struct {
	D equation.Derivative
}

func (t *DerivativeOnlyTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(t.D)
}
func (t *DerivativeOnlyTerm) Create(st *storage.Storage, mat *material.Material) error { return nil }
func (t *DerivativeOnlyTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *DerivativeOnlyTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}

// ContinuityTerm turns the merged VELOCITY_DIVERGENCE diagnostic into the
// density time derivative dRho/dt = -Rho*divv (spec.md §4.5's Finalize
// step: "reads divv, gradv etc. and produces e.g. dRho=-Rho*div v").
type ContinuityTerm struct{}

func (t *ContinuityTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(&VelocityDivergence{})
}
func (t *ContinuityTerm) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.VELOCITY_DIVERGENCE) {
		st.Insert(storage.VELOCITY_DIVERGENCE)
	}
	return nil
}
func (t *ContinuityTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *ContinuityTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	dens := st.Get(storage.DENSITY)
	divv := st.Get(storage.VELOCITY_DIVERGENCE)
	return sched.ParallelFor(st.N(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			dens.SetScalarDt(i, dens.ScalarDt(i)-dens.Scalar(i)*divv.Scalar(i))
		}
		return nil
	})
}

// EnergyTerm adds the base compressive-heating contribution
// dU/dt += p/Rho*divv on top of whatever AV/conductivity already merged
// into ENERGY's dt buffer.
type EnergyTerm struct{}

func (t *EnergyTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(&VelocityDivergence{})
}
func (t *EnergyTerm) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.VELOCITY_DIVERGENCE) {
		st.Insert(storage.VELOCITY_DIVERGENCE)
	}
	return nil
}
func (t *EnergyTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *EnergyTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	energy := st.Get(storage.ENERGY)
	dens := st.Get(storage.DENSITY)
	pres := st.Get(storage.PRESSURE)
	divv := st.Get(storage.VELOCITY_DIVERGENCE)
	return sched.ParallelFor(st.N(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			energy.SetScalarDt(i, energy.ScalarDt(i)+pres.Scalar(i)/dens.Scalar(i)*divv.Scalar(i))
		}
		return nil
	})
}

// ElasticityTerm produces the deviatoric-stress time derivative via
// Hooke's law plus a Jaumann (corotational) correction, reading the
// velocity gradient's symmetric (strain-rate) and antisymmetric
// (vorticity, via VELOCITY_ROTATION) parts (spec.md §4.5's "ds = 2*mu*
// dev(grad v)" Finalize example, extended with the frame-indifference
// correction every finite-rotation solid solver needs).
type ElasticityTerm struct{}

func (t *ElasticityTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(&VelocityGradient{})
	holder.Require(&VelocityRotation{})
}
func (t *ElasticityTerm) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.VELOCITY_GRADIENT) {
		st.Insert(storage.VELOCITY_GRADIENT)
	}
	if !st.Has(storage.VELOCITY_ROTATION) {
		st.Insert(storage.VELOCITY_ROTATION)
	}
	return nil
}
func (t *ElasticityTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *ElasticityTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	stress := st.GetOrNil(storage.DEVIATORIC_STRESS)
	if stress == nil {
		return nil
	}
	gradv := st.Get(storage.VELOCITY_GRADIENT)
	rotv := st.Get(storage.VELOCITY_ROTATION)

	return sched.ParallelFor(st.N(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			mat := st.MaterialOf(i).(*material.Material)
			mu := mat.ShearModulus()
			if mu <= 0 {
				continue
			}
			d := gradv.SymTensor(i).Deviatoric()
			rate := d.Scale(2 * mu)

			// Jaumann correction: ds/dt += W.S + S.W^T, with W the
			// antisymmetric spin tensor built from rot(v)/2.
			w := rotv.Vector(i).Scale(0.5)
			s := stress.Traceless(i).Full()
			jaumann := jaumannCorrection(s, w)
			rate = rate.Add(jaumann)

			stress.SetTracelessDt(i, quantity.TracelessFromFull(rate))
		}
		return nil
	})
}

// jaumannCorrection returns Omega.S + S.Omega^T for the spin tensor
// Omega built from the half-rotation vector w (Omega_xy=-w.z etc., the
// standard axial-vector-to-antisymmetric-matrix map in 3D).
func jaumannCorrection(s quantity.SymTensor3, w quantity.Vec3) quantity.SymTensor3 {
	// Omega is antisymmetric: Omega_ij = -eps_ijk w_k. Its action on S is
	// (Omega.S - S.Omega), which stays symmetric; expand by hand for the
	// six independent components.
	return quantity.SymTensor3{
		XX: 2 * (s.XZ*w.Y - s.XY*w.Z),
		YY: 2 * (s.XY*w.Z - s.YZ*w.X),
		ZZ: 2 * (s.YZ*w.X - s.XZ*w.Y),
		XY: (s.XX-s.YY)*w.Z + s.YZ*w.Y - s.XZ*w.X,
		XZ: (s.ZZ-s.XX)*w.Y + s.XY*w.X - s.YZ*w.Z,
		YZ: (s.YY-s.ZZ)*w.X + s.XZ*w.Z - s.XY*w.Y,
	}
}

// CorrectionTensorTerm inverts the merged raw STRAIN_RATE_CORRECTION_TENSOR
// accumulator into the actual correction tensor C (spec.md §4.3: "C ←
// inverse of accumulator per particle"), via gosl/la.MatInv the same way
// the teacher's shape functions invert the Jacobian (shp/algos.go).
type CorrectionTensorTerm struct{}

func (t *CorrectionTensorTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(&CorrectionTensor{})
}
func (t *CorrectionTensorTerm) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.STRAIN_RATE_CORRECTION_TENSOR) {
		st.Insert(storage.STRAIN_RATE_CORRECTION_TENSOR)
	}
	return nil
}
func (t *CorrectionTensorTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *CorrectionTensorTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	corr := st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR)
	const minDet = 1e-12
	for i := 0; i < st.N(); i++ {
		raw := corr.SymTensor(i).ToMatrix()
		m := la.MatAlloc(3, 3)
		for r := 0; r < 3; r++ {
			copy(m[r], raw[r][:])
		}
		mi := la.MatAlloc(3, 3)
		det, err := la.MatInv(mi, m, minDet)
		if err != nil || math.Abs(det) < minDet {
			// degenerate neighborhood (e.g. a free-surface particle with
			// too few neighbors): fall back to the identity, which is
			// equivalent to leaving the correction disabled for it.
			corr.SetSymTensor(i, quantity.SymTensor3{XX: 1, YY: 1, ZZ: 1})
			continue
		}
		var inv [3][3]float64
		for r := 0; r < 3; r++ {
			copy(inv[r][:], mi[r])
		}
		corr.SetSymTensor(i, quantity.SymTensorFromMatrix(inv))
	}
	return nil
}

// AVAlphaTerm evolves Morris-Monaghan's per-particle AV_ALPHA via the
// decay-toward-lower-bound / shock-triggered-source ODE of spec.md §4.3:
// dAlpha/dt = -(alpha-alphaMin)/tau + max(-(alphaMax-alpha)*divv, 0),
// with tau = h/(epsilon*cs).
type AVAlphaTerm struct {
	AlphaMin, AlphaMax float64
	Epsilon            float64
}

func (t *AVAlphaTerm) SetDerivatives(holder *equation.DerivativeHolder, settings equation.Settings) {
	holder.Require(&VelocityDivergence{})
}
func (t *AVAlphaTerm) Create(st *storage.Storage, mat *material.Material) error {
	if !st.Has(storage.AV_ALPHA) {
		st.Insert(storage.AV_ALPHA)
	}
	return nil
}
func (t *AVAlphaTerm) Initialize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	return nil
}
func (t *AVAlphaTerm) Finalize(sched scheduler.Scheduler, st *storage.Storage, time float64) error {
	alpha := st.Get(storage.AV_ALPHA)
	divv := st.Get(storage.VELOCITY_DIVERGENCE)
	pos := st.Get(storage.POSITION)
	cs := st.Get(storage.SOUND_SPEED)
	return sched.ParallelFor(st.N(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			h := pos.Vector(i).H
			if h <= 0 || cs.Scalar(i) <= 0 {
				continue
			}
			tau := h / (t.Epsilon * cs.Scalar(i))
			decay := -(alpha.Scalar(i) - t.AlphaMin) / tau
			source := math.Max(-(t.AlphaMax-alpha.Scalar(i))*divv.Scalar(i), 0)
			alpha.SetScalarDt(i, decay+source)
		}
		return nil
	})
}
