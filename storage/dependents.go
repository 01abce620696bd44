package storage

// AddDependent registers target as a dependent storage: whenever s's
// particle count changes via a structural op (insert/remove/duplicate/
// resize), target is resized identically. Value changes never propagate.
//
// The link is one-way: target does not keep s alive, but s holds an
// ordinary pointer to target, so target stays reachable from s until it
// is pruned. The caller is expected to call target.Close() when target is
// no longer needed, which flips the shared "alive" flag so s prunes the
// stale entry lazily on the next structural op, per DESIGN_NOTES' "reference-counted handles + explicit weak
// observer" guidance (spec.md §9).
func (s *Storage) AddDependent(target *Storage) {
	alive := true
	target.closeFlag = &alive
	s.dependents = append(s.dependents, &dependentRef{target: target, alive: &alive})
}

// Close marks s as no longer a valid dependent; owners prune it lazily.
func (s *Storage) Close() {
	if s.closeFlag != nil {
		*s.closeFlag = false
	}
}

func (s *Storage) pruneDependents() {
	live := s.dependents[:0]
	for _, d := range s.dependents {
		if *d.alive {
			live = append(live, d)
		}
	}
	s.dependents = live
}

func (s *Storage) propagateResize() {
	s.pruneDependents()
	for _, d := range s.dependents {
		d.target.Resize(s.n, true)
	}
}

func (s *Storage) propagateRemove(indices []int) {
	s.pruneDependents()
	for _, d := range s.dependents {
		d.target.Remove(indices)
	}
}
