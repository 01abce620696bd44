package storage

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
)

// Clone returns a new Storage with the buffers selected by flags deep
// copied; materials are shared by reference (not deep copied), and the
// clone is NOT registered as a dependent of s -- it is a snapshot, not a
// live mirror (spec.md §4.1 clone contract).
func (s *Storage) Clone(flags CloneFlags) *Storage {
	c := New()
	c.n = s.n
	c.partitions = append([]MaterialPartition(nil), s.partitions...)
	c.attractors = append([]Attractor(nil), s.attractors...)
	for id, q := range s.quantities {
		includeDt, includeD2t := flagsToIncludes(flags, q.Order)
		c.quantities[id] = q.Clone(includeDt, includeD2t)
	}
	return c
}

// Swap exchanges the buffers selected by flags between s and other
// in-place; both must have the same particle count. Materials are left
// untouched on both sides.
func (s *Storage) Swap(other *Storage, flags CloneFlags) {
	if s.n != other.n {
		chk.Panic("storage: swap requires equal particle counts: %d != %d", s.n, other.n)
	}
	for id, q := range s.quantities {
		oq, ok := other.quantities[id]
		if !ok {
			continue
		}
		switch flags {
		case AllBuffers:
			q.SwapValues(oq)
			q.SwapHighestDerivatives(oq)
		case HighestDerivatives:
			q.SwapHighestDerivatives(oq)
		case StateValues:
			q.SwapValues(oq)
		}
	}
}

// flagsToIncludes resolves which derivative buffers to copy for a
// quantity of the given order. HighestDerivatives follows the same
// per-quantity order-aware rule as SwapHighestDerivatives (d2t for
// SECOND order, dt for FIRST order) rather than a blanket dt-only copy.
func flagsToIncludes(flags CloneFlags, order quantity.Order) (dt, d2t bool) {
	switch flags {
	case AllBuffers:
		return true, true
	case HighestDerivatives:
		switch order {
		case quantity.Second:
			return false, true
		case quantity.First:
			return true, false
		}
		return false, false
	case FirstDerivatives:
		return true, false
	case SecondDerivatives:
		return false, true
	case StateValues:
		return false, false
	}
	return false, false
}
