package boundary

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

func Test_reflective_bouncesoffwall01(tst *testing.T) {
	chk.PrintTitle("reflective_bouncesoffwall01: an escaping particle is projected back and its normal velocity reversed")
	st := newTestStorage([]quantity.Vec3{{X: -0.5}}, 1.0)
	pos := st.Get(storage.POSITION)
	pos.SetVectorDt(0, quantity.Vec3{X: -2.0})

	r := &Reflective{Domain: HalfSpace{Inward: quantity.Vec3{X: 1}}, Restitution: 1}
	if err := r.Collide(st); err != nil {
		tst.Fatalf("Collide failed: %v", err)
	}
	pos = st.Get(storage.POSITION)
	chk.Scalar(tst, "projected onto the wall", 1e-15, pos.Vector(0).X, 0)
	chk.Scalar(tst, "velocity reflected", 1e-15, pos.VectorDt(0).X, 2.0)
}

func Test_reflective_ignoresparticlesinside01(tst *testing.T) {
	chk.PrintTitle("reflective_ignoresparticlesinside01: a particle already inside the domain is left untouched")
	st := newTestStorage([]quantity.Vec3{{X: 1.5}}, 1.0)
	pos := st.Get(storage.POSITION)
	pos.SetVectorDt(0, quantity.Vec3{X: -2.0})

	r := &Reflective{Domain: HalfSpace{Inward: quantity.Vec3{X: 1}}}
	if err := r.Collide(st); err != nil {
		tst.Fatalf("Collide failed: %v", err)
	}
	pos = st.Get(storage.POSITION)
	chk.Scalar(tst, "position untouched", 1e-15, pos.Vector(0).X, 1.5)
	chk.Scalar(tst, "velocity untouched", 1e-15, pos.VectorDt(0).X, -2.0)
}

func Test_reflective_inelasticabsorbsnormalvelocity01(tst *testing.T) {
	chk.PrintTitle("reflective_inelasticabsorbsnormalvelocity01: zero restitution kills the outward component")
	st := newTestStorage([]quantity.Vec3{{X: -0.5}}, 1.0)
	pos := st.Get(storage.POSITION)
	pos.SetVectorDt(0, quantity.Vec3{X: -2.0, Y: 1.0})

	r := &Reflective{Domain: HalfSpace{Inward: quantity.Vec3{X: 1}}}
	if err := r.Collide(st); err != nil {
		tst.Fatalf("Collide failed: %v", err)
	}
	pos = st.Get(storage.POSITION)
	chk.Scalar(tst, "normal component absorbed", 1e-15, pos.VectorDt(0).X, 0)
	chk.Scalar(tst, "tangential component kept", 1e-15, pos.VectorDt(0).Y, 1.0)
}
