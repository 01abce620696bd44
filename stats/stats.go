// package stats implements the run-level Statistics counters spec.md §7
// requires for recoverable per-particle failures ("EOS inversion
// diverged, root-finding failed ... recorded via a Statistics counter,
// particle update skipped, simulation proceeds"). Grounded on
// mallano-gofem/fem/summary.go's Summary: the same Nproc/OutTimes/
// Resids shape and the same buffer-then-gob-encode Save/Load pair,
// generalized from "residuals per Newton iteration" to "counts per
// recoverable failure kind" since gosph has no global nonlinear solve to
// report iteration residuals for.
package stats

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Kind names a recoverable numerical failure, per spec.md §7's
// NumericFailure error kind.
type Kind string

const (
	EosInversionDiverged Kind = "eos-inversion-diverged"
	RootFindingFailed    Kind = "root-finding-failed"
)

// Statistics accumulates counts of recoverable per-particle failures and
// the output times a run has dumped at, mirroring
// mallano-gofem's Summary.OutTimes.
type Statistics struct {
	OutTimes []float64
	Failures map[Kind]int
}

func New() *Statistics {
	return &Statistics{Failures: map[Kind]int{}}
}

// RecordFailure increments kind's counter. Call this instead of failing
// the step when a per-particle numeric routine (EOS inversion,
// root-finding) cannot converge; the caller skips updating that
// particle and the simulation proceeds, per spec.md §7's NumericFailure
// propagation policy.
func (s *Statistics) RecordFailure(kind Kind) {
	if s.Failures == nil {
		s.Failures = map[Kind]int{}
	}
	s.Failures[kind]++
}

// Count returns how many times kind has been recorded.
func (s *Statistics) Count(kind Kind) int { return s.Failures[kind] }

// Total returns the sum of every recorded failure, across all kinds.
func (s *Statistics) Total() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// RecordOutput appends t to OutTimes.
func (s *Statistics) RecordOutput(t float64) {
	s.OutTimes = append(s.OutTimes, t)
}

// Save gob-encodes s to path, following Summary.Save's
// buffer-then-write-file sequence.
func (s *Statistics) Save(path string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return chk.Err("stats: cannot encode: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("stats: cannot create %q: %v", path, err)
	}
	defer f.Close()
	if _, err := buf.WriteTo(f); err != nil {
		return chk.Err("stats: cannot write %q: %v", path, err)
	}
	return nil
}

// Load reads a Statistics saved by Save, following Summary.ReadSum's
// open-decode sequence.
func Load(path string) (*Statistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("stats: cannot open %q: %v", path, err)
	}
	defer f.Close()
	var s Statistics
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, chk.Err("stats: cannot decode %q: %v", path, err)
	}
	return &s, nil
}
