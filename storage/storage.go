package storage

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
)

// CloneFlags selects which buffers a Clone/Swap/Resize operation touches.
type CloneFlags int

const (
	AllBuffers         CloneFlags = iota // values + every derivative
	HighestDerivatives                   // d2t for SECOND order, dt for FIRST order
	StateValues                          // values only
	FirstDerivatives                     // dt only
	SecondDerivatives                    // d2t only
)

// ValidFlags controls how strict Storage.IsValid is.
type ValidFlags int

const (
	Complete ValidFlags = iota // every declared quantity must have length N
	Lenient                    // absent (length-0) quantities are tolerated
)

// Storage is the heterogeneous, materially-segmented per-particle
// container of spec.md §3.2.
type Storage struct {
	n          int
	quantities map[Id]*quantity.Quantity
	partitions []MaterialPartition
	attractors []Attractor

	dependents []*dependentRef
	closeFlag  *bool
}

type dependentRef struct {
	target *Storage
	alive  *bool
}

// New returns an empty Storage with zero particles.
func New() *Storage {
	return &Storage{quantities: make(map[Id]*quantity.Quantity)}
}

// NewWithMaterial returns a Storage with n particles all belonging to a
// single material partition [0,n).
func NewWithMaterial(n int, mat Material) *Storage {
	s := New()
	s.n = n
	if n > 0 {
		s.partitions = []MaterialPartition{{From: 0, To: n, Material: mat}}
		s.rebuildMaterialId()
	}
	return s
}

// N returns the current particle count.
func (s *Storage) N() int { return s.n }

// Has reports whether id is present with a fully-populated buffer.
func (s *Storage) Has(id Id) bool {
	q, ok := s.quantities[id]
	return ok && q.N == s.n
}

// Get returns the raw Quantity for id, or fails if absent.
func (s *Storage) Get(id Id) *quantity.Quantity {
	q, ok := s.quantities[id]
	if !ok {
		chk.Panic("storage: quantity %v not present", id)
	}
	return q
}

// GetOrNil returns the raw Quantity for id, or nil if absent.
func (s *Storage) GetOrNil(id Id) *quantity.Quantity {
	return s.quantities[id]
}

// Ids returns every id currently present, sorted for deterministic
// iteration (used by dump and by the timestep integrators).
func (s *Storage) Ids() []Id {
	ids := make([]Id, 0, len(s.quantities))
	for id := range s.quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// InsertDefault creates id (or upgrades its order) filling every particle
// with the zero value, or, if id already exists, validates the value type
// matches and upgrades the order in place, leaving existing values
// untouched (spec.md §4.1 insert contract).
func (s *Storage) InsertDefault(id Id, vt quantity.ValueType, order quantity.Order) {
	if q, ok := s.quantities[id]; ok {
		if q.Type != vt {
			chk.Panic("storage: insert(%v): value-type mismatch: have %v, requested %v", id, q.Type, vt)
		}
		q.Upgrade(order)
		return
	}
	s.quantities[id] = quantity.New(vt, order, s.n)
}

// Insert creates id using this package's default (ValueType, Order) layout
// for that id; equivalent to InsertDefault with the closed-set layout from
// id.go. Most callers should use this.
func (s *Storage) Insert(id Id) {
	layout, ok := defaultLayout[id]
	if !ok {
		chk.Panic("storage: id %v has no default layout; use InsertDefault", id)
	}
	s.InsertDefault(id, layout.Type, layout.Order)
	if id == MATERIAL_ID {
		s.rebuildMaterialId()
	}
}

// Remove removes the given particle indices (any order, may contain
// duplicates) from every quantity, from material partitions (dropping any
// partition left empty), and propagates to dependents. PERSISTENT_INDEX,
// if present, is left to the caller to interpret -- this method only
// keeps its buffer aligned like every other quantity.
func (s *Storage) Remove(indices []int) {
	remove := make(map[int]bool, len(indices))
	for _, i := range indices {
		remove[i] = true
	}
	keep := make([]int, 0, s.n)
	for i := 0; i < s.n; i++ {
		if !remove[i] {
			keep = append(keep, i)
		}
	}
	s.selectInPlace(keep)
	s.propagateRemove(indices)
}

// selectInPlace rewrites every quantity and the material partitions to
// contain only the given (ascending, unique) indices, and updates s.n.
func (s *Storage) selectInPlace(keep []int) {
	// remap partitions: count how many kept indices fall in each partition
	newParts := make([]MaterialPartition, 0, len(s.partitions))
	pos := 0
	for _, p := range s.partitions {
		cnt := 0
		for _, i := range keep {
			if p.Contains(i) {
				cnt++
			}
		}
		if cnt > 0 {
			newParts = append(newParts, MaterialPartition{From: pos, To: pos + cnt, Material: p.Material})
			pos += cnt
		}
	}
	for id, q := range s.quantities {
		s.quantities[id] = q.Select(keep)
	}
	s.partitions = newParts
	s.n = len(keep)
	s.rebuildMaterialId()
}

// Duplicate creates copies of the given particle indices, appended at the
// end of storage, each keeping its source's material. A copy extends its
// source's partition only while that partition is the last one and ends
// at the current end of storage; otherwise the copy goes into a new
// one-particle partition of the same material appended at the end, so it
// does not share its source's partition. Returns the indices of the new
// particles.
func (s *Storage) Duplicate(indices []int) []int {
	newIdx := make([]int, len(indices))

	// group by partition so we can extend partition bounds contiguously;
	// duplicates are appended strictly in input order, so a partition is
	// extended iff its current To equals the storage's current n, which
	// only holds for the last partition. Interior partitions instead gain
	// a newly split-off partition for their duplicates (keeps [from,to)
	// contiguity invariant without reordering existing particles).
	origN := s.n
	for k, src := range indices {
		dstIdx := origN + k
		for id, q := range s.quantities {
			q.Resize(dstIdx+1, false)
			q.CopyParticle(dstIdx, q, src)
			s.quantities[id] = q
		}
		s.n = dstIdx + 1
		partIdx := s.partitionIndexOf(src)
		if partIdx == len(s.partitions)-1 && s.partitions[partIdx].To == dstIdx {
			s.partitions[partIdx].To = dstIdx + 1
		} else {
			mat := s.partitions[partIdx].Material
			s.partitions = append(s.partitions, MaterialPartition{From: dstIdx, To: dstIdx + 1, Material: mat})
		}
		newIdx[k] = dstIdx
	}
	s.rebuildMaterialId()
	s.propagateResize()
	return newIdx
}

func (s *Storage) partitionIndexOf(i int) int {
	for k, p := range s.partitions {
		if p.Contains(i) {
			return k
		}
	}
	chk.Panic("storage: particle %d belongs to no material partition", i)
	return -1
}

// Resize grows or shrinks every buffer to newN, preserving overlap values
// and zeroing new slots (or leaving them empty if keepEmptyUnchanged is
// true for buffers currently absent). Only valid when Storage has at most
// one material partition.
func (s *Storage) Resize(newN int, keepEmptyUnchanged bool) {
	if len(s.partitions) > 1 {
		chk.Panic("storage: resize requires a single material (or none), have %d", len(s.partitions))
	}
	for _, q := range s.quantities {
		q.Resize(newN, keepEmptyUnchanged)
	}
	if len(s.partitions) == 1 {
		s.partitions[0].To = newN
	}
	s.n = newN
	s.rebuildMaterialId()
	s.propagateResize()
}

// ZeroHighestDerivatives zeros d2t of SECOND-order quantities and dt of
// FIRST-order quantities across the whole storage. Idempotent.
func (s *Storage) ZeroHighestDerivatives() {
	for _, q := range s.quantities {
		q.ZeroHighestDerivative()
	}
}

// Attractors returns the storage's point-mass attractors.
func (s *Storage) Attractors() []Attractor { return s.attractors }

// AddAttractor appends a point-mass attractor.
func (s *Storage) AddAttractor(a Attractor) { s.attractors = append(s.attractors, a) }

// Partitions returns the material partition list.
func (s *Storage) Partitions() []MaterialPartition { return s.partitions }

// MaterialOf returns the material owning particle i.
func (s *Storage) MaterialOf(i int) Material {
	return s.partitions[s.partitionIndexOf(i)].Material
}

func (s *Storage) rebuildMaterialId() {
	q, ok := s.quantities[MATERIAL_ID]
	if !ok {
		return
	}
	q.Resize(s.n, false)
	for pi, p := range s.partitions {
		for i := p.From; i < p.To; i++ {
			q.SetIndex(i, pi)
		}
	}
}

// IsValid checks the universal invariants of spec.md §8.1: equal buffer
// lengths (or absent, under Lenient), and contiguous disjoint partitions
// covering [0,N).
func (s *Storage) IsValid(flags ValidFlags) bool {
	for id, q := range s.quantities {
		if q.N != s.n {
			if flags == Complete || q.N != 0 {
				_ = id
				return false
			}
		}
	}
	pos := 0
	for _, p := range s.partitions {
		if p.From != pos || p.To < p.From {
			return false
		}
		pos = p.To
	}
	if len(s.partitions) > 0 && pos != s.n {
		return false
	}
	return true
}
