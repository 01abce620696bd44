package boundary

import "github.com/cpmech/gosph/quantity"

// Domain describes the geometric region a boundary.Condition enforces
// against (spec.md §4.8): a signed distance to the boundary (positive
// inside), the outward unit normal at the boundary point nearest a given
// position, and a projection that pulls a stray position back inside.
type Domain interface {
	// DistanceToBoundary returns the distance from p to the boundary,
	// positive when p is inside the domain.
	DistanceToBoundary(p quantity.Vec3) float64
	// Normal returns the outward unit normal (pointing away from the
	// interior) at the boundary point nearest p.
	Normal(p quantity.Vec3) quantity.Vec3
	// Project moves p onto or inside the domain, leaving it unchanged
	// if it is already inside.
	Project(p quantity.Vec3) quantity.Vec3
}

// Sphere is a spherical Domain, grounded on
// original_source/core/sph/boundary/test/Boundary.cpp's SphericalDomain
// fixture.
type Sphere struct {
	Center quantity.Vec3
	Radius float64
}

func (s Sphere) DistanceToBoundary(p quantity.Vec3) float64 {
	return s.Radius - p.Sub(s.Center).Length()
}

func (s Sphere) Normal(p quantity.Vec3) quantity.Vec3 {
	d := p.Sub(s.Center)
	d.H = 0 // Normal is a pure direction; H never participates
	if d.Length() == 0 {
		return quantity.Vec3{X: 1}
	}
	return d.Normalized()
}

func (s Sphere) Project(p quantity.Vec3) quantity.Vec3 {
	d := p.Sub(s.Center)
	r := d.Length()
	if r <= s.Radius || r == 0 {
		return p
	}
	return s.Center.Add(d.Scale(s.Radius / r))
}

// HalfSpace is a planar Domain bounded by the plane through Point with
// inward normal Inward (the direction in which DistanceToBoundary
// increases), grounded on
// original_source/core/sph/boundary/test/Boundary.cpp's WallDomain
// fixture (there a wall at x=0 keeping particles at x>=0, i.e. Point at
// the origin and Inward = {X: 1}).
type HalfSpace struct {
	Point  quantity.Vec3
	Inward quantity.Vec3
}

func (h HalfSpace) DistanceToBoundary(p quantity.Vec3) float64 {
	return p.Sub(h.Point).Dot(h.Inward)
}

func (h HalfSpace) Normal(quantity.Vec3) quantity.Vec3 {
	n := h.Inward.Scale(-1)
	n.H = 0
	return n
}

func (h HalfSpace) Project(p quantity.Vec3) quantity.Vec3 {
	d := h.DistanceToBoundary(p)
	if d >= 0 {
		return p
	}
	return p.Sub(h.Inward.Scale(d))
}
