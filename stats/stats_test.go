package stats

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_statistics_recordandcount01(tst *testing.T) {
	chk.PrintTitle("statistics_recordandcount01: RecordFailure increments the right kind's counter")
	s := New()
	s.RecordFailure(EosInversionDiverged)
	s.RecordFailure(EosInversionDiverged)
	s.RecordFailure(RootFindingFailed)

	if s.Count(EosInversionDiverged) != 2 {
		tst.Fatalf("EosInversionDiverged count = %d, want 2", s.Count(EosInversionDiverged))
	}
	if s.Count(RootFindingFailed) != 1 {
		tst.Fatalf("RootFindingFailed count = %d, want 1", s.Count(RootFindingFailed))
	}
	if s.Total() != 3 {
		tst.Fatalf("Total() = %d, want 3", s.Total())
	}
}

func Test_statistics_saveandload01(tst *testing.T) {
	chk.PrintTitle("statistics_saveandload01: Save then Load round-trips failures and output times")
	s := New()
	s.RecordFailure(RootFindingFailed)
	s.RecordOutput(0.0)
	s.RecordOutput(0.5)
	s.RecordOutput(1.0)

	path := filepath.Join(tst.TempDir(), "stats.gob")
	if err := s.Save(path); err != nil {
		tst.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	if got.Count(RootFindingFailed) != 1 {
		tst.Fatalf("RootFindingFailed count after load = %d, want 1", got.Count(RootFindingFailed))
	}
	if len(got.OutTimes) != 3 || got.OutTimes[2] != 1.0 {
		tst.Fatalf("OutTimes after load = %+v", got.OutTimes)
	}
}
