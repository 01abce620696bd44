package settings

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_boundarysettings_zerovalueisnoop01(tst *testing.T) {
	chk.PrintTitle("boundarysettings_zerovalueisnoop01: a zero-value BoundarySettings builds no conditions and no collider")
	var s BoundarySettings
	set, err := s.NewConditions()
	if err != nil {
		tst.Fatalf("NewConditions failed: %v", err)
	}
	if len(set) != 0 {
		tst.Fatalf("expected an empty Set, got %d conditions", len(set))
	}
	collider, err := s.NewCollider()
	if err != nil {
		tst.Fatalf("NewCollider failed: %v", err)
	}
	if collider != nil {
		tst.Fatalf("expected a nil collider")
	}
}

func Test_boundarysettings_ghostsandprojectionstack01(tst *testing.T) {
	chk.PrintTitle("boundarysettings_ghostsandprojectionstack01: enabling Ghosts and Projection1D builds both into one Set")
	s := BoundarySettings{
		Domain:       "sphere",
		Radius:       2.0,
		Ghosts:       true,
		SearchRadius: 0.5,
		MinDist:      0.01,
		Projection1D: true,
		RangeLo:      0,
		RangeHi:      10,
	}
	set, err := s.NewConditions()
	if err != nil {
		tst.Fatalf("NewConditions failed: %v", err)
	}
	if len(set) != 2 {
		tst.Fatalf("expected 2 conditions, got %d", len(set))
	}
}

func Test_boundarysettings_ghostswithoutdomainfails01(tst *testing.T) {
	chk.PrintTitle("boundarysettings_ghostswithoutdomainfails01: Ghosts without a Domain is a configuration error")
	s := BoundarySettings{Ghosts: true}
	if _, err := s.NewConditions(); err == nil {
		tst.Fatalf("expected an error when Ghosts has no Domain")
	}
}

func Test_boundarysettings_reflectivebuildscollider01(tst *testing.T) {
	chk.PrintTitle("boundarysettings_reflectivebuildscollider01: Reflective builds a non-nil collider bound to the configured domain")
	s := BoundarySettings{
		Domain:      "halfspace",
		Inward:      Vec3{X: 1},
		Reflective:  true,
		Restitution: 0.8,
	}
	collider, err := s.NewCollider()
	if err != nil {
		tst.Fatalf("NewCollider failed: %v", err)
	}
	if collider == nil {
		tst.Fatalf("expected a non-nil collider")
	}
	if collider.Restitution != 0.8 {
		tst.Fatalf("expected Restitution=0.8, got %g", collider.Restitution)
	}
}

func Test_boundarysettings_unknowndomainfails01(tst *testing.T) {
	chk.PrintTitle("boundarysettings_unknowndomainfails01: an unregistered domain name is rejected")
	s := BoundarySettings{Domain: "not-a-real-domain", Ghosts: true}
	if _, err := s.NewConditions(); err == nil {
		tst.Fatalf("expected an error for an unregistered domain name")
	}
}
