package timestep

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// constAccel is a fake Evaluator that writes a fixed acceleration into
// POSITION.d2t every Step call, independent of the current state; the
// resulting motion is exactly the constant-acceleration kinematics
// r=r0+v0*t+0.5*a*t^2, v=v0+a*t, letting each integrator be checked
// against a closed-form reference.
type constAccel struct {
	a quantity.Vec3
}

func (c constAccel) Step(st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		pos.SetVectorD2t(i, c.a)
	}
	return nil
}

func oneParticle(r, v quantity.Vec3) *storage.Storage {
	st := storage.NewWithMaterial(1, material.New("fake"))
	st.Insert(storage.POSITION)
	pos := st.Get(storage.POSITION)
	pos.SetVector(0, r)
	pos.SetVectorDt(0, v)
	return st
}

func Test_euler_constantacceleration01(tst *testing.T) {

	chk.PrintTitle("euler_constantacceleration01: symplectic Euler vs closed form")

	r0 := quantity.Vec3{X: 0, H: 1}
	v0 := quantity.Vec3{X: 1}
	a := quantity.Vec3{X: 2}
	dt := 0.1

	st := oneParticle(r0, v0)
	e := &Euler{}
	if err := e.Advance(st, constAccel{a}, 0, dt); err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	vExact := v0.X + a.X*dt
	rExact := r0.X + v0.X*dt + a.X*dt*dt // symplectic Euler drifts with the already-kicked v
	chk.Scalar(tst, "vx", 1e-12, pos.VectorDt(0).X, vExact)
	chk.Scalar(tst, "rx", 1e-12, pos.Vector(0).X, rExact)
}

func Test_leapfrog_constantacceleration01(tst *testing.T) {

	chk.PrintTitle("leapfrog_constantacceleration01: drift-kick-drift is exact for constant a")

	r0 := quantity.Vec3{X: 0, H: 1}
	v0 := quantity.Vec3{X: 1}
	a := quantity.Vec3{X: 2}
	dt := 0.1

	st := oneParticle(r0, v0)
	l := &Leapfrog{}
	if err := l.Advance(st, constAccel{a}, 0, dt); err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	vExact := v0.X + a.X*dt
	rExact := r0.X + v0.X*dt + 0.5*a.X*dt*dt
	chk.Scalar(tst, "vx", 1e-12, pos.VectorDt(0).X, vExact)
	chk.Scalar(tst, "rx", 1e-12, pos.Vector(0).X, rExact)
}

func Test_predictorcorrector_constantacceleration01(tst *testing.T) {

	chk.PrintTitle("predictorcorrector_constantacceleration01: zero correction when a is unchanged")

	r0 := quantity.Vec3{X: 0, H: 1}
	v0 := quantity.Vec3{X: 1}
	a := quantity.Vec3{X: 2}
	dt := 0.1

	st := oneParticle(r0, v0)
	pc := &PredictorCorrector{}
	if err := pc.Advance(st, constAccel{a}, 0, dt); err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	vExact := v0.X + a.X*dt
	rExact := r0.X + v0.X*dt + 0.5*a.X*dt*dt
	chk.Scalar(tst, "vx", 1e-12, pos.VectorDt(0).X, vExact)
	chk.Scalar(tst, "rx", 1e-12, pos.Vector(0).X, rExact)
}

func Test_rk4_constantacceleration01(tst *testing.T) {

	chk.PrintTitle("rk4_constantacceleration01: exact for a degree-2 polynomial solution")

	r0 := quantity.Vec3{X: 0, H: 1}
	v0 := quantity.Vec3{X: 1}
	a := quantity.Vec3{X: 2}
	dt := 0.1

	st := oneParticle(r0, v0)
	rk := RK4{}
	if err := rk.Advance(st, constAccel{a}, 0, dt); err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	vExact := v0.X + a.X*dt
	rExact := r0.X + v0.X*dt + 0.5*a.X*dt*dt
	chk.Scalar(tst, "vx", 1e-12, pos.VectorDt(0).X, vExact)
	chk.Scalar(tst, "rx", 1e-12, pos.Vector(0).X, rExact)
}

func Test_modifiedmidpoint_convergence01(tst *testing.T) {

	chk.PrintTitle("modifiedmidpoint_convergence01: error shrinks as Substeps grows")

	r0 := quantity.Vec3{X: 0, H: 1}
	v0 := quantity.Vec3{X: 1}
	a := quantity.Vec3{X: 2}
	dt := 0.2
	rExact := r0.X + v0.X*dt + 0.5*a.X*dt*dt

	errAt := func(substeps int) float64 {
		st := oneParticle(r0, v0)
		mm := &ModifiedMidpoint{Substeps: substeps}
		if err := mm.Advance(st, constAccel{a}, 0, dt); err != nil {
			tst.Fatalf("Advance failed: %v", err)
		}
		return math.Abs(st.Get(storage.POSITION).Vector(0).X - rExact)
	}

	errCoarse := errAt(2)
	errFine := errAt(16)
	if errFine >= errCoarse {
		tst.Errorf("expected finer substepping to reduce error: coarse=%v fine=%v", errCoarse, errFine)
	}
}

func Test_clampstorage01(tst *testing.T) {

	chk.PrintTitle("clampstorage01: scalar clamp binds and zeroes the companion derivative")

	mat := material.New("fake")
	mat.SetRange(storage.ENERGY, 0, 1.0)

	st := storage.NewWithMaterial(1, mat)
	st.Insert(storage.POSITION)
	st.Insert(storage.ENERGY)
	en := st.Get(storage.ENERGY)
	en.SetScalar(0, 0.95)
	en.SetScalarDt(0, 10.0)

	e := &Euler{}
	if err := e.Advance(st, constAccel{}, 0, 0.1); err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}

	chk.Scalar(tst, "energy clamped to 1.0", 1e-12, en.Scalar(0), 1.0)
	chk.Scalar(tst, "energy rate zeroed", 1e-12, en.ScalarDt(0), 0.0)
}

func Test_multicriterion01(tst *testing.T) {

	chk.PrintTitle("multicriterion01: Courant bound reported and clamped to MaxTimeStep")

	st := oneParticle(quantity.Vec3{H: 1}, quantity.Vec3{})
	st.Insert(storage.SOUND_SPEED)
	st.Get(storage.SOUND_SPEED).SetScalar(0, 2.0)

	mc := &MultiCriterion{
		Criteria:     []Criterion{CourantCriterion{Number: 0.4}},
		MaxTimeStep:  1.0,
		TinyTimeStep: 1e-9,
	}
	sched := scheduler.NewWithWorkers(1)
	dt, kind := mc.Compute(st, sched)
	chk.Scalar(tst, "dt", 1e-12, dt, 0.2) // 0.4*1/2.0
	if kind != CourantKind {
		tst.Errorf("expected CourantKind, got %v", kind)
	}
}
