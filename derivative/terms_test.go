package derivative

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

func twoParticleStorage(mat *material.Material) *storage.Storage {
	st := storage.NewWithMaterial(2, mat)
	st.Insert(storage.POSITION)
	st.Insert(storage.MASS)
	st.Insert(storage.DENSITY)
	st.Insert(storage.ENERGY)
	st.Insert(storage.PRESSURE)
	st.Insert(storage.SOUND_SPEED)
	return st
}

func Test_continuityterm01(tst *testing.T) {

	chk.PrintTitle("continuityterm01: dRho/dt = -Rho*divv")

	mat := material.New("fake")
	st := twoParticleStorage(mat)
	st.Insert(storage.VELOCITY_DIVERGENCE)
	st.Get(storage.DENSITY).SetScalar(0, 2.0)
	st.Get(storage.VELOCITY_DIVERGENCE).SetScalar(0, -0.5)

	term := &ContinuityTerm{}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	chk.Scalar(tst, "dRho", 1e-12, st.Get(storage.DENSITY).ScalarDt(0), 1.0)
}

func Test_energyterm01(tst *testing.T) {

	chk.PrintTitle("energyterm01: dU/dt = p/Rho*divv")

	mat := material.New("fake")
	st := twoParticleStorage(mat)
	st.Insert(storage.VELOCITY_DIVERGENCE)
	st.Get(storage.DENSITY).SetScalar(0, 2.0)
	st.Get(storage.PRESSURE).SetScalar(0, 4.0)
	st.Get(storage.VELOCITY_DIVERGENCE).SetScalar(0, 0.5)

	term := &EnergyTerm{}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	chk.Scalar(tst, "dU", 1e-12, st.Get(storage.ENERGY).ScalarDt(0), 1.0)
}

func Test_elasticityterm01(tst *testing.T) {

	chk.PrintTitle("elasticityterm01: ds/dt = 2*mu*dev(gradv) for zero spin")

	mat := material.New("fake")
	mat.Settings.ShearModulus = 10.0
	st := twoParticleStorage(mat)
	st.Insert(storage.DEVIATORIC_STRESS)
	st.Insert(storage.VELOCITY_GRADIENT)
	st.Insert(storage.VELOCITY_ROTATION)

	st.Get(storage.VELOCITY_GRADIENT).SetSymTensor(0, quantity.SymTensor3{XX: 0.3, YY: -0.1, ZZ: -0.2})

	term := &ElasticityTerm{}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	ds := st.Get(storage.DEVIATORIC_STRESS).TracelessDt(0)
	chk.Scalar(tst, "dsXX", 1e-12, ds.XX, 6.0)
	chk.Scalar(tst, "dsYY", 1e-12, ds.YY, -2.0)
}

func Test_correctiontensorterm01(tst *testing.T) {

	chk.PrintTitle("correctiontensorterm01: inverts the raw accumulator")

	mat := material.New("fake")
	st := twoParticleStorage(mat)
	st.Insert(storage.STRAIN_RATE_CORRECTION_TENSOR)
	st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR).SetSymTensor(0, quantity.SymTensor3{XX: 2, YY: 2, ZZ: 2})

	term := &CorrectionTensorTerm{}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	inv := st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR).SymTensor(0)
	chk.Scalar(tst, "invXX", 1e-9, inv.XX, 0.5)
	chk.Scalar(tst, "invYY", 1e-9, inv.YY, 0.5)
	chk.Scalar(tst, "invZZ", 1e-9, inv.ZZ, 0.5)
}

func Test_correctiontensorterm02(tst *testing.T) {

	chk.PrintTitle("correctiontensorterm02: degenerate accumulator falls back to identity")

	mat := material.New("fake")
	st := twoParticleStorage(mat)
	st.Insert(storage.STRAIN_RATE_CORRECTION_TENSOR)
	// particle 1 is left at its zero-initialized (singular) accumulator.

	term := &CorrectionTensorTerm{}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	inv := st.Get(storage.STRAIN_RATE_CORRECTION_TENSOR).SymTensor(1)
	chk.Scalar(tst, "invXX", 1e-12, inv.XX, 1)
	chk.Scalar(tst, "invYY", 1e-12, inv.YY, 1)
	chk.Scalar(tst, "invZZ", 1e-12, inv.ZZ, 1)
}

func Test_avalphaterm01(tst *testing.T) {

	chk.PrintTitle("avalphaterm01: decays toward AlphaMin absent compression")

	mat := material.New("fake")
	st := twoParticleStorage(mat)
	st.Insert(storage.AV_ALPHA)
	st.Insert(storage.VELOCITY_DIVERGENCE)
	st.Get(storage.POSITION).SetVector(0, quantity.Vec3{H: 1})
	st.Get(storage.SOUND_SPEED).SetScalar(0, 1)
	st.Get(storage.AV_ALPHA).SetScalar(0, 1.0)
	st.Get(storage.VELOCITY_DIVERGENCE).SetScalar(0, 0) // no compression

	term := &AVAlphaTerm{AlphaMin: 0.1, AlphaMax: 2.0, Epsilon: 0.2}
	sched := scheduler.NewWithWorkers(1)
	if err := term.Finalize(sched, st, 0); err != nil {
		tst.Errorf("Finalize failed: %v", err)
	}
	dAlpha := st.Get(storage.AV_ALPHA).ScalarDt(0)
	if dAlpha >= 0 {
		tst.Errorf("expected negative decay rate absent compression, got %g", dAlpha)
	}
}

var _ equation.EquationTerm = (*ContinuityTerm)(nil)
var _ equation.EquationTerm = (*EnergyTerm)(nil)
var _ equation.EquationTerm = (*ElasticityTerm)(nil)
var _ equation.EquationTerm = (*CorrectionTensorTerm)(nil)
var _ equation.EquationTerm = (*AVAlphaTerm)(nil)
var _ equation.EquationTerm = (*DerivativeOnlyTerm)(nil)
