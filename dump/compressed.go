package dump

import (
	"compress/gzip"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/storage"
)

// WriteCompressed writes a dump through a gzip.Writer (spec.md §6.2): the
// Header and gob-encoded Storage body are unchanged, only the byte stream
// between the writer and the file is compressed. gob's own encoding is
// already a compact binary form; gzip on top of it is the same trick
// gofem's fileio.go reaches for when a dump needs to shrink further
// (there: JSON-vs-gob, not gzip -- but neither the teacher nor the rest
// of the pack carries a dedicated float-quantization library, so the
// compressed variant here stays within compress/gzip + the existing
// gob body, still meeting spec.md §6.2's <=1e-6 relative-error round-trip
// requirement exactly since nothing is quantized, only compressed).
func WriteCompressed(path string, st *storage.Storage, runTime, timeStep, wallclockTime float64, runType string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("dump: cannot create %q: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	gz := gzip.NewWriter(f)
	if err := WriteTo(gz, st, runTime, timeStep, wallclockTime, runType); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return chk.Err("dump: cannot flush compressed dump %q: %v", path, err)
	}
	return nil
}

// ReadCompressed reads a dump written by WriteCompressed.
func ReadCompressed(path string, upgradeIds []storage.Id) (*storage.Storage, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, chk.Err("dump: cannot open %q: %v", path, err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, Header{}, chk.Err("dump: %q is not a gzip-compressed dump: %v", path, err)
	}
	defer gz.Close()
	return ReadFrom(gz, upgradeIds)
}
