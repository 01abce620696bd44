package equation

import (
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// Pair is one neighbor contribution precomputed by the solver's pair loop:
// the neighbor's particle index and the (possibly correction-tensor
// corrected) kernel gradient evaluated between i and j.
type Pair struct {
	J    int
	Grad quantity.Vec3
}

// Derivative is one SPH pairwise term (spec.md §3.5): it declares its
// output accumulators via Create, reads whatever read-only Storage state
// it needs via Initialize, then is invoked once per particle with its
// neighbor list during the pair loop.
//
// Exactly one of the two evaluation contracts applies to a given
// Derivative, selected by which of AsymmetricDerivative/
// SymmetricDerivative it additionally implements:
//
//   - asymmetric (EvalNeighs): writes only into particle i's slot; safe to
//     call with the full unranked neighbor list (finder.NeighborFinder.FindAll).
//   - symmetric (EvalSymmetric): writes into both i and every j, exploiting
//     Newton's third law; requires the solver's rank-ordered neighbor list
//     (finder.NeighborFinder.FindLowerRank) so each unordered pair is visited once.
type Derivative interface {
	// Create declares this derivative's output buffers on acc (spec.md
	// §3.5's create(Accumulated)).
	Create(acc *Accumulated)
	// Initialize reads whatever per-step, read-only state this derivative
	// needs from st before the pair loop starts (e.g. caching H, cs).
	Initialize(st *storage.Storage, acc *Accumulated) error
	// Key identifies this derivative's type and configured parameters for
	// DerivativeHolder deduplication; two derivatives with equal Key are
	// considered the same declaration (spec.md §3.4: "duplicates
	// deduplicated by type and configured parameters").
	Key() string
}

// AsymmetricDerivative is implemented by Derivatives using the
// single-sided evaluation contract.
type AsymmetricDerivative interface {
	Derivative
	EvalNeighs(st *storage.Storage, acc *Accumulated, i int, neighs []Pair)
}

// SymmetricDerivative is implemented by Derivatives using the
// Newton's-third-law pairwise contract; pairs is rank-ordered (j always
// ranked below i) so each unordered pair appears exactly once.
type SymmetricDerivative interface {
	Derivative
	EvalSymmetric(st *storage.Storage, acc *Accumulated, i int, neighs []Pair)
}
