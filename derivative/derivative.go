// package derivative implements the pairwise SPH contributions of spec.md
// §4.3: pressure gradient, stress divergence, kinematic derivatives, the
// artificial-viscosity family, delta-SPH diffusion, artificial stress,
// XSPH, cohesion, and the energy Laplacian. Every type here satisfies
// equation.SymmetricDerivative or equation.AsymmetricDerivative and is
// consumed by the solver's pair loop through the equation.Derivative
// contract; none of these types touch Storage directly outside their
// declared Create/Initialize/Eval* hooks.
//
// A few derivatives (Balsara's switch, Cohesion's surface normal,
// artificial viscosity's own div(v)/rot(v) inputs) consume a diagnostic
// quantity that another derivative also recomputes in the very same pair
// loop. These always read the lagged, previous-step value out of st (the
// main Storage, already merged) while simultaneously writing this step's
// refreshed value into acc for the next step to consume -- avoiding a
// second O(N*neighbors) pass per step at the cost of a one-step lag,
// which is negligible at the timestep sizes spec.md's adaptive criteria
// produce.
package derivative

import (
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/storage"
)

// discr applies the STANDARD or BENZ_ASPHAUG discretization of spec.md
// §4.3 to a pair of per-particle scalars (pressure, or a stress
// component) divided by density: STANDARD is ai/rhoi^2+aj/rhoj^2,
// BENZ_ASPHAUG is (ai+aj)/(rhoi*rhoj).
func discr(mode equation.Discretization, ai, aj, rhoi, rhoj float64) float64 {
	if mode == equation.BenzAsphaug {
		return (ai + aj) / (rhoi * rhoj)
	}
	return ai/(rhoi*rhoi) + aj/(rhoj*rhoj)
}

// sumOnlyUndamagedOK implements spec.md §4.3's SUM_ONLY_UNDAMAGED gate: a
// pair contributes only while both endpoints belong to the same fracture
// flag region and still carry positive load-bearing capacity, preventing
// force transmission across a fully-severed crack.
func sumOnlyUndamagedOK(st *storage.Storage, i, j int) bool {
	flag := st.Get(storage.FLAG)
	reducing := st.Get(storage.STRESS_REDUCING)
	return flag.Index(i) == flag.Index(j) && reducing.Scalar(i) > 0 && reducing.Scalar(j) > 0
}
