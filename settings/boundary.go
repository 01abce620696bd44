package settings

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/boundary"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
)

// BoundarySettings is the JSON-configurable piece of spec.md §4.8 a run
// opts into: at most one Domain shape, any combination of Ghosts/Frozen/
// Projection1D enforcement against it, and an optional Reflective collide
// hook for an Integrator's drift substeps. The zero value configures no
// boundary at all, the same "nil Set/nil Colliders is valid and does
// nothing" convention package boundary and package timestep already
// follow.
type BoundarySettings struct {
	Domain string  `json:"domain"` // "" | "sphere" | "halfspace"
	Center Vec3    `json:"center"` // sphere
	Radius float64 `json:"radius"` // sphere
	Point  Vec3    `json:"point"`  // halfspace
	Inward Vec3    `json:"inward"` // halfspace

	Ghosts       bool    `json:"ghosts"`
	SearchRadius float64 `json:"searchradius"` // multiple of h a ghost mirror triggers at
	MinDist      float64 `json:"mindist"`

	Frozen       bool    `json:"frozen"`
	FrozenRadius float64 `json:"frozenradius"`

	Projection1D bool    `json:"projection1d"`
	RangeLo      float64 `json:"rangelo"`
	RangeHi      float64 `json:"rangehi"`

	Reflective  bool    `json:"reflective"`
	Restitution float64 `json:"restitution"`
}

// Vec3 is BoundarySettings's JSON-friendly stand-in for quantity.Vec3 (H
// never participates in a Domain's geometry, so it is omitted here rather
// than carried as a field nobody sets).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) vec() quantity.Vec3 { return quantity.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// domain builds the boundary.Domain s.Domain names, or nil if s configures
// none.
func (s BoundarySettings) domain() (boundary.Domain, error) {
	switch s.Domain {
	case "":
		return nil, nil
	case "sphere":
		return boundary.Sphere{Center: s.Center.vec(), Radius: s.Radius}, nil
	case "halfspace":
		return boundary.HalfSpace{Point: s.Point.vec(), Inward: s.Inward.vec()}, nil
	default:
		return nil, chk.Err("settings: boundary domain %q is not available", s.Domain)
	}
}

// NewConditions builds the boundary.Set a solver.SymmetricSolver or
// solver.AsymmetricSolver's Boundaries field should run, following
// s.Ghosts/Frozen/Projection1D. A BoundarySettings with no Domain and no
// Projection1D request returns a nil Set.
func (s BoundarySettings) NewConditions() (boundary.Set, error) {
	dom, err := s.domain()
	if err != nil {
		return nil, err
	}
	var set boundary.Set
	if s.Ghosts {
		if dom == nil {
			return nil, chk.Err("settings: boundary.ghosts requires a domain")
		}
		set = append(set, &boundary.Ghosts{Domain: dom, SearchRadius: s.SearchRadius, MinDist: s.MinDist})
	}
	if s.Frozen {
		if dom == nil {
			return nil, chk.Err("settings: boundary.frozen requires a domain")
		}
		set = append(set, &boundary.Frozen{Domain: dom, Radius: s.FrozenRadius})
	}
	if s.Projection1D {
		set = append(set, boundary.Projection1D{Range: material.Interval{Lo: s.RangeLo, Hi: s.RangeHi}})
	}
	return set, nil
}

// NewCollider builds the boundary.Reflective an Integrator's Colliders
// field should run, or nil if s.Reflective is false.
func (s BoundarySettings) NewCollider() (*boundary.Reflective, error) {
	if !s.Reflective {
		return nil, nil
	}
	dom, err := s.domain()
	if err != nil {
		return nil, err
	}
	if dom == nil {
		return nil, chk.Err("settings: boundary.reflective requires a domain")
	}
	return &boundary.Reflective{Domain: dom, Restitution: s.Restitution}, nil
}
