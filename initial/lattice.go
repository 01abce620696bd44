// package initial builds the particle position sources spec.md §6.4
// names as BodySettings.Distribution options ("hexagonal", "random",
// "diehl"): point generators that fill a box at a target spacing, and a
// thin Material.Create call-path exerciser used by tests and simple
// setup scripts. Grounded on mdl/porous.Model.Init's "derived quantities
// computed at setup" idiom -- here the derived thing is the particle set
// itself rather than a quantity buffer.
package initial

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosph/quantity"
)

// Box is an axis-aligned fill region.
type Box struct {
	Min, Max quantity.Vec3
}

func (b Box) size(axis func(quantity.Vec3) float64) float64 { return axis(b.Max) - axis(b.Min) }

// HexagonalLattice fills box with a 2D close-packed hexagonal lattice at
// the given spacing (Z is left at box.Min.Z -- a 3D hexagonal-close-packed
// fill is the same pattern stacked in alternating-offset layers along Z).
func HexagonalLattice(box Box, spacing float64) []quantity.Vec3 {
	if spacing <= 0 {
		return nil
	}
	rowSpacing := spacing * math.Sqrt(3) / 2
	var pts []quantity.Vec3
	row := 0
	for y := box.Min.Y; y <= box.Max.Y; y += rowSpacing {
		offset := 0.0
		if row%2 == 1 {
			offset = spacing / 2
		}
		for x := box.Min.X + offset; x <= box.Max.X; x += spacing {
			pts = append(pts, quantity.Vec3{X: x, Y: y, Z: box.Min.Z})
		}
		row++
	}
	return pts
}

// RandomDistribution draws n points uniformly within box. rng must be a
// *rnd.Generator configured over [0,1) (e.g.
// rnd.NewGenerator("uniform", map[string]float64{"lo": 0, "hi": 1})),
// following the Generator-based sampling idiom of material.Damage's
// ActivationThresholds -- three independent draws per point, one per
// axis, rescaled into box's extents.
func RandomDistribution(n int, box Box, rng *rnd.Generator) []quantity.Vec3 {
	pts := make([]quantity.Vec3, n)
	for i := range pts {
		pts[i] = quantity.Vec3{
			X: box.Min.X + rng.Float64()*(box.Max.X-box.Min.X),
			Y: box.Min.Y + rng.Float64()*(box.Max.Y-box.Min.Y),
			Z: box.Min.Z + rng.Float64()*(box.Max.Z-box.Min.Z),
		}
	}
	return pts
}

// DiehlDistribution approximates Diehl et al.'s relaxation-based initial
// particle distribution: start from RandomDistribution, then repeatedly
// nudge each point away from its nearest neighbors (a discrete analogue
// of Diehl's attraction/repulsion ODE relaxed to equilibrium), settling
// a random point cloud toward the same roughly-equal-spacing that a
// hexagonal lattice gives analytically but without its lattice artifacts
// at irregular domain boundaries.
func DiehlDistribution(n int, box Box, rng *rnd.Generator, targetSpacing float64, iterations int) []quantity.Vec3 {
	pts := RandomDistribution(n, box, rng)
	if targetSpacing <= 0 || iterations <= 0 {
		return pts
	}
	for it := 0; it < iterations; it++ {
		disp := make([]quantity.Vec3, n)
		for i := range pts {
			for j := range pts {
				if i == j {
					continue
				}
				d := pts[i].Sub(pts[j])
				r := d.Length()
				if r == 0 || r >= targetSpacing {
					continue
				}
				push := (targetSpacing - r) / targetSpacing
				disp[i] = disp[i].Add(d.Scale(push / r))
			}
		}
		for i := range pts {
			moved := pts[i].Add(disp[i].Scale(0.5))
			pts[i] = clampToBox(moved, box)
		}
	}
	return pts
}

func clampToBox(p quantity.Vec3, box Box) quantity.Vec3 {
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return quantity.Vec3{
		X: clamp(p.X, box.Min.X, box.Max.X),
		Y: clamp(p.Y, box.Min.Y, box.Max.Y),
		Z: clamp(p.Z, box.Min.Z, box.Max.Z),
	}
}
