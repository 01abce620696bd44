package initial

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// Build samples positions inside box using the distribution named by
// bs.Distribution ("random" and "diehl" give exactly bs.ParticleCnt
// points; "hexagonal", the default, gives however many points of a
// single-layer HexagonalLattice at spacing cbrt(volume/ParticleCnt) fit
// in the box, which is generally not ParticleCnt), grafts them into a fresh
// material-tagged Storage, and runs mat.Create so the material's own
// derived quantities (DEVIATORIC_STRESS, DAMAGE, ...) are in place
// before the first step -- the same "derived quantities computed at
// setup" sequence mdl/porous.Model.Init follows for its own per-element
// state. Uniform density bs.Rho0 and per-particle mass (box volume *
// Rho0 / particle count) are assigned; DENSITY and ENERGY are then
// whatever Create's zero-fill/insert leaves them at, overwritten here to
// the settings-supplied starting values.
func Build(bs material.BodySettings, mat *material.Material, box Box, ctx material.Context) (*storage.Storage, error) {
	if bs.ParticleCnt <= 0 {
		return nil, chk.Err("initial: BodySettings.ParticleCnt must be > 0, got %d", bs.ParticleCnt)
	}

	volume := box.size(func(v quantity.Vec3) float64 { return v.X }) *
		box.size(func(v quantity.Vec3) float64 { return v.Y }) *
		box.size(func(v quantity.Vec3) float64 { return v.Z })
	if volume <= 0 {
		return nil, chk.Err("initial: box has non-positive volume")
	}
	spacing := math.Cbrt(volume / float64(bs.ParticleCnt))

	var pts []quantity.Vec3
	switch bs.Distribution {
	case "", "hexagonal":
		pts = HexagonalLattice(box, spacing)
	case "random":
		pts = RandomDistribution(bs.ParticleCnt, box, defaultUniform())
	case "diehl":
		pts = DiehlDistribution(bs.ParticleCnt, box, defaultUniform(), spacing, 20)
	default:
		return nil, chk.Err("initial: unknown distribution %q", bs.Distribution)
	}
	if len(pts) == 0 {
		return nil, chk.Err("initial: distribution %q produced no particles", bs.Distribution)
	}

	st := storage.NewWithMaterial(len(pts), mat)
	st.Insert(storage.POSITION)
	pos := st.Get(storage.POSITION)
	mass := bs.Rho0 * volume / float64(len(pts))
	for i, p := range pts {
		p.H = spacing
		pos.SetVector(i, p)
	}

	if err := mat.Create(st, ctx); err != nil {
		return nil, chk.Err("initial: material.Create failed: %v", err)
	}

	st.Insert(storage.MASS)
	massQ := st.Get(storage.MASS)
	density := st.Get(storage.DENSITY)
	energy := st.Get(storage.ENERGY)
	for i := range pts {
		massQ.SetScalar(i, mass)
		density.SetScalar(i, bs.Rho0)
		energy.SetScalar(i, bs.RefEnergy)
	}
	return st, nil
}

func defaultUniform() *rnd.Generator {
	return rnd.NewGenerator("uniform", map[string]float64{"lo": 0, "hi": 1})
}
