package initial

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

var unitBox = Box{Min: quantity.Vec3{}, Max: quantity.Vec3{X: 1, Y: 1, Z: 1}}

func Test_hexagonallattice_fillsbox01(tst *testing.T) {
	chk.PrintTitle("hexagonallattice_fillsbox01: a hexagonal lattice stays inside the box and is non-empty")
	pts := HexagonalLattice(unitBox, 0.1)
	if len(pts) == 0 {
		tst.Fatalf("expected a non-empty lattice")
	}
	for _, p := range pts {
		if p.X < unitBox.Min.X || p.X > unitBox.Max.X || p.Y < unitBox.Min.Y || p.Y > unitBox.Max.Y {
			tst.Fatalf("point %+v outside box", p)
		}
	}
}

func Test_randomdistribution_countandbounds01(tst *testing.T) {
	chk.PrintTitle("randomdistribution_countandbounds01: RandomDistribution returns n points inside the box")
	rng := defaultUniform()
	pts := RandomDistribution(50, unitBox, rng)
	if len(pts) != 50 {
		tst.Fatalf("expected 50 points, got %d", len(pts))
	}
	for _, p := range pts {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z < 0 || p.Z > 1 {
			tst.Fatalf("point %+v outside unit box", p)
		}
	}
}

func Test_diehldistribution_staysinbox01(tst *testing.T) {
	chk.PrintTitle("diehldistribution_staysinbox01: relaxation keeps every point inside the box")
	rng := defaultUniform()
	pts := DiehlDistribution(30, unitBox, rng, 0.2, 5)
	if len(pts) != 30 {
		tst.Fatalf("expected 30 points, got %d", len(pts))
	}
	for _, p := range pts {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z < 0 || p.Z > 1 {
			tst.Fatalf("point %+v outside unit box after relaxation", p)
		}
	}
}

func Test_build_populatesstorage01(tst *testing.T) {
	chk.PrintTitle("build_populatesstorage01: Build produces a Storage with mass, density and energy set")
	mat := material.New("basalt")
	bs := material.BodySettings{
		Rho0:         2700,
		RefEnergy:    0,
		ParticleCnt:  20,
		Distribution: "random",
	}
	ctx := material.Context{Dimension: 3, Gravity: 9.8}

	st, err := Build(bs, mat, unitBox, ctx)
	if err != nil {
		tst.Fatalf("Build failed: %v", err)
	}
	if st.N() != 20 {
		tst.Fatalf("expected 20 particles, got %d", st.N())
	}
	density := st.Get(storage.DENSITY)
	chk.Scalar(tst, "density[0]", 1e-15, density.Scalar(0), 2700)

	mass := st.Get(storage.MASS)
	total := 0.0
	for i := 0; i < st.N(); i++ {
		total += mass.Scalar(i)
	}
	chk.Scalar(tst, "total mass", 1e-9, total, 2700)
}

func Test_build_rejectszeroparticlecount01(tst *testing.T) {
	chk.PrintTitle("build_rejectszeroparticlecount01: Build errors on a non-positive particle count")
	mat := material.New("x")
	bs := material.BodySettings{Rho0: 1}
	if _, err := Build(bs, mat, unitBox, material.Context{}); err == nil {
		tst.Fatalf("expected an error for ParticleCnt=0")
	}
}
