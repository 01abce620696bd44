package timestep

import "github.com/cpmech/gosph/storage"

// BulirschStoer is the adaptive extrapolation scheme of spec.md §4.6's
// table. Its step evaluator is only partially specified in source (an
// open question defers it), so this is a stub: it picks the largest
// substep count of the classic Bulirsch-Stoer sequence 2,4,6,8,... and
// falls back to ModifiedMidpoint for the actual advance, rather than the
// full Richardson-extrapolated multi-sequence evaluator.
type BulirschStoer struct {
	// MaxSubsteps is the upper end of the substep sequence 2,4,6,8,...
	// (the one used by the classic Bulirsch-Stoer method); Advance always
	// runs the largest even count not above it, and no other count.
	MaxSubsteps int
}

// substepSequence returns the classic Bulirsch-Stoer substep counts
// 2,4,6,8,10,... up to MaxSubsteps (default 8 if unset).
func (b *BulirschStoer) substepSequence() []int {
	max := b.MaxSubsteps
	if max <= 0 {
		max = 8
	}
	seq := make([]int, 0, max/2)
	for n := 2; n <= max; n += 2 {
		seq = append(seq, n)
	}
	return seq
}

func (b *BulirschStoer) Advance(st *storage.Storage, ev Evaluator, t, dt float64) error {
	seq := b.substepSequence()
	n := seq[len(seq)-1]
	mm := &ModifiedMidpoint{Substeps: n}
	return mm.Advance(st, ev, t, dt)
}
