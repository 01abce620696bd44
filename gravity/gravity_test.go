package gravity

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

func particlesAt(positions []quantity.Vec3, masses []float64) *storage.Storage {
	st := storage.NewWithMaterial(len(positions), material.New("fake"))
	st.Insert(storage.POSITION)
	st.Insert(storage.MASS)
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	for i, p := range positions {
		pos.SetVector(i, p)
		mass.SetScalar(i, masses[i])
	}
	return st
}

func Test_bruteforce_newtonsthirdlaw01(tst *testing.T) {

	chk.PrintTitle("bruteforce_newtonsthirdlaw01: forces on a pair are exactly equal and opposite")

	st := particlesAt([]quantity.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1.3, Y: -0.4, Z: 0.7},
	}, []float64{2.0, 5.0})

	bf := &BruteForce{Config: Config{G: 1.0}}
	sched := scheduler.NewWithWorkers(1)
	if _, err := bf.Accelerations(sched, st); err != nil {
		tst.Fatalf("Accelerations failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	f0 := pos.VectorD2t(0).Scale(mass.Scalar(0))
	f1 := pos.VectorD2t(1).Scale(mass.Scalar(1))
	chk.Scalar(tst, "fx", 1e-13, f0.X, -f1.X)
	chk.Scalar(tst, "fy", 1e-13, f0.Y, -f1.Y)
	chk.Scalar(tst, "fz", 1e-13, f0.Z, -f1.Z)
}

func Test_bruteforce_twobody01(tst *testing.T) {

	chk.PrintTitle("bruteforce_twobody01: acceleration matches Gm/r^2 along the separation")

	st := particlesAt([]quantity.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}, []float64{1.0, 4.0})

	bf := &BruteForce{Config: Config{G: 1.0}}
	sched := scheduler.NewWithWorkers(1)
	if _, err := bf.Accelerations(sched, st); err != nil {
		tst.Fatalf("Accelerations failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	chk.Scalar(tst, "a0x", 1e-13, pos.VectorD2t(0).X, 1.0) // G*m1/r^2 = 4/4
	chk.Scalar(tst, "a1x", 1e-13, pos.VectorD2t(1).X, -0.25) // -G*m0/r^2 = -1/4
}

func Test_barneshut_agreeswithbruteforce01(tst *testing.T) {

	chk.PrintTitle("barneshut_agreeswithbruteforce01: tree matches direct sum within 4%")

	rng := rand.New(rand.NewSource(1))
	n := 300
	positions := make([]quantity.Vec3, n)
	masses := make([]float64, n)
	for i := range positions {
		// two loose clusters so the tree actually exercises the
		// opening-angle approximation between them.
		cx := 0.0
		if i%2 == 0 {
			cx = 10.0
		}
		positions[i] = quantity.Vec3{
			X: cx + rng.Float64(),
			Y: rng.Float64(),
			Z: rng.Float64(),
		}
		masses[i] = 1.0 + rng.Float64()
	}

	stBF := particlesAt(positions, masses)
	stBH := particlesAt(positions, masses)
	sched := scheduler.NewWithWorkers(1)

	bf := &BruteForce{Config: Config{G: 1.0}}
	if _, err := bf.Accelerations(sched, stBF); err != nil {
		tst.Fatalf("BruteForce.Accelerations failed: %v", err)
	}

	bh := &BarnesHut{Config: Config{G: 1.0, Theta: 0.5, LeafSize: 8}}
	bh.Build(sched, stBH)
	stats, err := bh.Accelerations(sched, stBH)
	if err != nil {
		tst.Fatalf("BarnesHut.Accelerations failed: %v", err)
	}
	if stats.CellsApprox == 0 {
		tst.Errorf("expected at least one approximated cell, got %+v", stats)
	}

	posBF := stBF.Get(storage.POSITION)
	posBH := stBH.Get(storage.POSITION)
	var worst float64
	for i := 0; i < n; i++ {
		exact := posBF.VectorD2t(i)
		approx := posBH.VectorD2t(i)
		mag := exact.Length()
		if mag == 0 {
			continue
		}
		err := exact.Sub(approx).Length() / mag
		if err > worst {
			worst = err
		}
	}
	if worst > 0.04 {
		tst.Errorf("worst relative error %v exceeds 4%%", worst)
	}
}

func Test_attractor01(tst *testing.T) {

	chk.PrintTitle("attractor01: a point mass attracts particles and feels their reaction")

	st := particlesAt([]quantity.Vec3{{X: 1, Y: 0, Z: 0}}, []float64{1.0})
	st.AddAttractor(storage.Attractor{Position: quantity.Vec3{}, Mass: 9.0})

	bf := &BruteForce{Config: Config{G: 1.0}}
	sched := scheduler.NewWithWorkers(1)
	if _, err := bf.Accelerations(sched, st); err != nil {
		tst.Fatalf("Accelerations failed: %v", err)
	}

	pos := st.Get(storage.POSITION)
	chk.Scalar(tst, "particle accel toward attractor", 1e-13, pos.VectorD2t(0).X, -9.0)
	chk.Scalar(tst, "attractor accel toward particle", 1e-13, st.Attractors()[0].Acceleration.X, 1.0)
}

func Test_pointaccel_unsoftened01(tst *testing.T) {

	chk.PrintTitle("pointaccel_unsoftened01: matches -G*m/r^2 along the separation vector")

	cfg := Config{G: 2.0}
	d := quantity.Vec3{X: 0.5}
	a := pointAccel(cfg, 4.0, d, 0)
	chk.Scalar(tst, "ax", 1e-13, a.X, -2.0*4.0/(0.5*0.5))
}
