package storage

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
)

// Merge appends other's particles to s: material partitions are appended
// with indices shifted by s.N(), attractors are appended, and quantity
// sets may differ between the two -- any id missing on one side is
// zero-filled on that side first (spec.md §4.1 merge contract). Both
// storages must (or must not) carry materials; mixing is a policy
// violation. Quantity.Append always places s's own particles first, so
// the appended particles land contiguously at [origN, origN+other.N());
// Merge returns those indices (used by boundary.Fixed to graft externally
// built dummy particles into a run's Storage).
func (s *Storage) Merge(other *Storage) []int {
	if (len(s.partitions) == 0) != (len(other.partitions) == 0) {
		chk.Panic("storage: merge: one side has materials and the other does not")
	}

	ids := map[Id]bool{}
	for id := range s.quantities {
		ids[id] = true
	}
	for id := range other.quantities {
		ids[id] = true
	}

	for id := range ids {
		a, aok := s.quantities[id]
		b, bok := other.quantities[id]
		if !aok {
			a = quantity.New(b.Type, b.Order, s.n)
		}
		if !bok {
			b = quantity.New(a.Type, a.Order, other.n)
		}
		s.quantities[id] = a.Append(b)
	}

	origN := s.n
	shift := s.n
	for _, p := range other.partitions {
		s.partitions = append(s.partitions, MaterialPartition{From: p.From + shift, To: p.To + shift, Material: p.Material})
	}
	s.attractors = append(s.attractors, other.attractors...)
	s.n += other.n
	s.rebuildMaterialId()
	s.propagateResize()

	newIdx := make([]int, other.n)
	for k := range newIdx {
		newIdx[k] = origN + k
	}
	return newIdx
}
