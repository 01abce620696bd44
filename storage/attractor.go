package storage

import "github.com/cpmech/gosph/quantity"

// Attractor is a point mass that interacts with particles gravitationally
// but carries no SPH quantities of its own (spec.md §3.2).
type Attractor struct {
	Position     quantity.Vec3
	Velocity     quantity.Vec3
	Mass         float64
	Radius       float64
	Acceleration quantity.Vec3
}
