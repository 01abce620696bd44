package boundary

import (
	"math"

	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/storage"
)

// Ghosts is a GhostParticles boundary condition (spec.md §4.8), grounded
// on original_source/lib/sph/boundary/Boundary.h's GhostParticles and the
// WallDomain/SphericalDomain fixtures in
// original_source/core/sph/boundary/test/Boundary.cpp. Every step it
// mirrors particles found within SearchRadius*h of the boundary to the
// outside, giving the neighbor search and pair sums something to see
// across the wall, then removes the mirrors again once derivatives have
// been computed.
//
// The mirror position is built from the foot point on the boundary
// nearest the source particle: letting d be the particle's (non-negative,
// post-Project) distance to the boundary and n the outward normal there,
// the ghost sits at distance max(d, MinDist) on the far side of that foot
// point -- i.e. at p + (d+max(d,MinDist))*n. The MinDist floor keeps a
// particle sitting exactly on the boundary from getting a ghost on top of
// itself (original_source's WallDomain test: a source at x=0 gets a ghost
// at x=-MinDist, not x=0).
type Ghosts struct {
	Domain Domain
	// SearchRadius scales h: particles with DistanceToBoundary < SearchRadius*h
	// get a ghost. Typically the kernel's support radius.
	SearchRadius float64
	// MinDist floors how close a ghost may land to the boundary.
	MinDist float64

	ghostIdx []int
}

// Initialize appends a mirrored ghost for every particle near the
// boundary. Every other FIRST-order quantity (density, ...) is copied
// onto the ghost verbatim via storage.Duplicate; only POSITION and
// VELOCITY (POSITION's dt) are overwritten with the mirrored values.
func (g *Ghosts) Initialize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	pos := st.Get(storage.POSITION)
	n := pos.N

	var sources []int
	for i := 0; i < n; i++ {
		p := pos.Vector(i)
		proj := g.Domain.Project(p)
		proj.H = p.H
		pos.SetVector(i, proj)
		d := g.Domain.DistanceToBoundary(proj)
		if d < g.SearchRadius*proj.H {
			sources = append(sources, i)
		}
	}
	if len(sources) == 0 {
		g.ghostIdx = nil
		return nil
	}

	g.ghostIdx = st.Duplicate(sources)
	pos = st.Get(storage.POSITION) // Duplicate resized every buffer
	for k, src := range sources {
		ghostIdx := g.ghostIdx[k]
		p := pos.Vector(src)
		d := math.Max(g.Domain.DistanceToBoundary(p), 0)
		normal := g.Domain.Normal(p)
		eff := math.Max(d, g.MinDist)
		ghost := p.Add(normal.Scale(d + eff))
		ghost.H = p.H
		pos.SetVector(ghostIdx, ghost)

		v := pos.VectorDt(src)
		perp := v.Dot(normal)
		pos.SetVectorDt(ghostIdx, v.Sub(normal.Scale(2*perp)))
	}
	return nil
}

// Finalize removes the ghosts appended by Initialize.
func (g *Ghosts) Finalize(sched scheduler.Scheduler, st *storage.Storage, t float64) error {
	if len(g.ghostIdx) == 0 {
		return nil
	}
	st.Remove(g.ghostIdx)
	g.ghostIdx = nil
	return nil
}
