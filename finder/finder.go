// package finder implements the neighbor-search layer of spec.md §4.4: a
// shared NeighborFinder contract over BruteForce, UniformGrid and KdTree,
// plus a Periodic wrapper for any of them. It plays the role gofem's
// `gm` (geometry) subpackage plays for its mesh connectivity queries, but
// over a dynamic point cloud rather than a fixed FE mesh.
package finder

import (
	"sort"

	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
)

// BuildFlags selects optional work Build should do alongside indexing.
type BuildFlags int

const (
	// NoRank skips the smoothing-length rank permutation (e.g. for an
	// asymmetric solver, which never calls FindLowerRank).
	NoRank BuildFlags = iota
	// MakeRank additionally computes the H-ascending rank permutation
	// FindLowerRank needs.
	MakeRank
)

// Hit is one neighbor-search result: the found particle's index and the
// squared distance to the query point (spec.md §4.4: "{index,
// distanceSqr}").
type Hit struct {
	Index   int
	DistSqr float64
}

// NeighborFinder indexes a point cloud and answers radius queries against
// it (spec.md §4.4).
type NeighborFinder interface {
	// Build indexes points for subsequent queries. Must be called before
	// any Find* call; safe to call again with a new point set (e.g. every
	// step, after positions have moved).
	Build(sched scheduler.Scheduler, points []quantity.Vec3, flags BuildFlags) error
	// FindAll appends every j (including i itself) with
	// ||points[j]-points[i]|| < radius to out, and returns the result.
	FindAll(i int, radius float64, out []Hit) []Hit
	// FindAllPoint is FindAll for an arbitrary query point not
	// necessarily among the indexed points.
	FindAllPoint(p quantity.Vec3, radius float64, out []Hit) []Hit
	// FindLowerRank is FindAll restricted to j whose smoothing-length
	// rank is strictly less than i's rank (requires MakeRank at Build
	// time); each unordered pair then surfaces exactly once across the
	// whole particle set.
	FindLowerRank(i int, radius float64, out []Hit) []Hit
}

// rankOf computes the H-ascending rank permutation of points, breaking
// ties by index for determinism (spec.md §4.4: "ties broken
// deterministically").
func rankOf(points []quantity.Vec3) []int {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ha, hb := points[order[a]].H, points[order[b]].H
		if ha != hb {
			return ha < hb
		}
		return order[a] < order[b]
	})
	rank := make([]int, len(points))
	for r, idx := range order {
		rank[idx] = r
	}
	return rank
}
