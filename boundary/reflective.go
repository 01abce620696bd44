package boundary

import "github.com/cpmech/gosph/storage"

// Reflective is a Collide hook (timestep.Collider) for an Integrator's
// drift substeps (spec.md §4.6's "collide hooks at both drifts" for
// Leapfrog, and Euler's "after collide"). original_source/lib/sph/
// boundary/Boundary.h has no equivalent of a mid-drift collision response
// -- IBoundaryCondition only ever exposes initialize/finalize -- so
// Reflective is a gosph-side addition, not a port. It reuses the same
// elastic-reflection formula Ghosts.Initialize already computes for a
// mirrored ghost's velocity (v - 2*(v.n)*n), applied here to the real
// particle that crossed the boundary rather than to a copy of it: any
// particle Domain.DistanceToBoundary finds outside is projected back onto
// the boundary and has the velocity component along the outward normal
// reversed, damped by Restitution.
type Reflective struct {
	Domain Domain
	// Restitution scales the reflected normal velocity: 1 is a perfectly
	// elastic bounce, 0 (the zero value) absorbs the outward component
	// entirely, leaving the particle sliding along the boundary.
	Restitution float64
}

// Collide reflects every particle Domain reports as outside.
func (r *Reflective) Collide(st *storage.Storage) error {
	pos := st.Get(storage.POSITION)
	for i := 0; i < pos.N; i++ {
		p := pos.Vector(i)
		if r.Domain.DistanceToBoundary(p) >= 0 {
			continue
		}
		proj := r.Domain.Project(p)
		proj.H = p.H
		pos.SetVector(i, proj)

		normal := r.Domain.Normal(p)
		v := pos.VectorDt(i)
		perp := v.Dot(normal)
		if perp <= 0 {
			continue // already moving back into the interior
		}
		pos.SetVectorDt(i, v.Sub(normal.Scale((1+r.Restitution)*perp)))
	}
	return nil
}
