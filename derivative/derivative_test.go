package derivative

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

type fakeMaterial struct{}

func (fakeMaterial) Name() string { return "fake" }

// twoParticles builds a minimal two-particle Storage with the fields
// every derivative in this package reads, and a single Pair from 0->1
// with an arbitrary (nonzero) kernel gradient.
func twoParticles() (*storage.Storage, equation.Pair) {
	st := storage.NewWithMaterial(2, fakeMaterial{})
	st.Insert(storage.POSITION)
	st.Insert(storage.MASS)
	st.Insert(storage.DENSITY)
	st.Insert(storage.PRESSURE)
	st.Insert(storage.SOUND_SPEED)
	st.Insert(storage.DEVIATORIC_STRESS)

	pos := st.Get(storage.POSITION)
	pos.SetVector(0, quantity.Vec3{X: 0, H: 1})
	pos.SetVector(1, quantity.Vec3{X: 0.5, H: 1})
	pos.SetVectorDt(0, quantity.Vec3{X: 1})
	pos.SetVectorDt(1, quantity.Vec3{X: -0.5})

	st.Get(storage.MASS).SetScalar(0, 1.3)
	st.Get(storage.MASS).SetScalar(1, 0.7)
	st.Get(storage.DENSITY).SetScalar(0, 1.0)
	st.Get(storage.DENSITY).SetScalar(1, 1.2)
	st.Get(storage.PRESSURE).SetScalar(0, 2.0)
	st.Get(storage.PRESSURE).SetScalar(1, 1.5)
	st.Get(storage.SOUND_SPEED).SetScalar(0, 1.0)
	st.Get(storage.SOUND_SPEED).SetScalar(1, 1.0)
	st.Get(storage.DEVIATORIC_STRESS).SetTraceless(0, quantity.TracelessTensor3{XX: 0.1, YY: -0.05})
	st.Get(storage.DEVIATORIC_STRESS).SetTraceless(1, quantity.TracelessTensor3{XX: -0.02, YY: 0.08})

	return st, equation.Pair{J: 1, Grad: quantity.Vec3{X: -0.8, Y: 0.3}}
}

func Test_pressuregradient01(tst *testing.T) {

	chk.PrintTitle("pressuregradient01: Newton's third law holds")

	st, pair := twoParticles()
	acc := equation.NewAccumulated(2)
	d := &PressureGradient{Mode: equation.Standard}
	d.Create(acc)
	d.EvalSymmetric(st, acc, 0, []equation.Pair{pair})

	mass := st.Get(storage.MASS)
	a0 := acc.Buffer(storage.POSITION).VectorD2t(0)
	a1 := acc.Buffer(storage.POSITION).VectorD2t(1)
	fi := a0.Scale(mass.Scalar(0))
	fj := a1.Scale(mass.Scalar(1))
	chk.Scalar(tst, "Fx", 1e-12, fi.X+fj.X, 0)
	chk.Scalar(tst, "Fy", 1e-12, fi.Y+fj.Y, 0)
}

func Test_stressdivergence01(tst *testing.T) {

	chk.PrintTitle("stressdivergence01: Newton's third law holds")

	st, pair := twoParticles()
	acc := equation.NewAccumulated(2)
	d := &StressDivergence{Mode: equation.BenzAsphaug}
	d.Create(acc)
	d.EvalSymmetric(st, acc, 0, []equation.Pair{pair})

	mass := st.Get(storage.MASS)
	a0 := acc.Buffer(storage.POSITION).VectorD2t(0)
	a1 := acc.Buffer(storage.POSITION).VectorD2t(1)
	fi := a0.Scale(mass.Scalar(0))
	fj := a1.Scale(mass.Scalar(1))
	chk.Scalar(tst, "Fx", 1e-12, fi.X+fj.X, 0)
	chk.Scalar(tst, "Fy", 1e-12, fi.Y+fj.Y, 0)
}

func Test_velocitydivergence01(tst *testing.T) {

	chk.PrintTitle("velocitydivergence01: sign matches approach/recede")

	st, _ := twoParticles()
	// grad must actually point along the i->j kernel-gradient direction
	// (toward j, since W decreases with separation) for the divergence
	// sign to carry physical meaning; r1-r0=(0.5,0) so gradW points +x.
	pair := equation.Pair{J: 1, Grad: quantity.Vec3{X: 1}}

	acc := equation.NewAccumulated(2)
	d := &VelocityDivergence{}
	d.Create(acc)
	d.EvalSymmetric(st, acc, 0, []equation.Pair{pair})

	// particles 0 and 1 are approaching (v0>0, v1<0, r1>r0): div should be
	// negative for particle 0 (compression).
	div0 := acc.Buffer(storage.VELOCITY_DIVERGENCE).Scalar(0)
	if div0 >= 0 {
		tst.Errorf("expected negative divergence for approaching particles, got %g", div0)
	}
}

func Test_artificialviscosity01(tst *testing.T) {

	chk.PrintTitle("artificialviscosity01: zero for receding particles")

	st, pair := twoParticles()
	// flip velocities so the pair is receding: mu must gate to zero.
	pos := st.Get(storage.POSITION)
	pos.SetVectorDt(0, quantity.Vec3{X: -1})
	pos.SetVectorDt(1, quantity.Vec3{X: 0.5})

	acc := equation.NewAccumulated(2)
	d := &ArtificialViscosity{Alpha: 1, Beta: 2}
	d.Create(acc)
	d.EvalSymmetric(st, acc, 0, []equation.Pair{pair})

	a0 := acc.Buffer(storage.POSITION).VectorD2t(0)
	chk.Scalar(tst, "ax", 1e-12, a0.X, 0)
	chk.Scalar(tst, "ay", 1e-12, a0.Y, 0)
}

func Test_correctiontensor01(tst *testing.T) {

	chk.PrintTitle("correctiontensor01: one pair contributes to both endpoints")

	st, pair := twoParticles()
	acc := equation.NewAccumulated(2)
	d := &CorrectionTensor{}
	d.Create(acc)
	d.EvalSymmetric(st, acc, 0, []equation.Pair{pair})

	// both accumulators must be nonzero after a single pair contribution
	t0 := acc.Buffer(storage.STRAIN_RATE_CORRECTION_TENSOR).SymTensor(0)
	t1 := acc.Buffer(storage.STRAIN_RATE_CORRECTION_TENSOR).SymTensor(1)
	if t0.XX == 0 && t0.YY == 0 {
		tst.Errorf("expected nonzero correction-tensor accumulation for particle 0")
	}
	if t1.XX == 0 && t1.YY == 0 {
		tst.Errorf("expected nonzero correction-tensor accumulation for particle 1")
	}
}
