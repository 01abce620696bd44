// package dump implements the binary versioned dump format of spec.md
// §6.1: a fixed, self-describing Header written with encoding/binary,
// followed by a storage.Storage body encoded with a gosl/utl.Encoder --
// the same Encode(enc utl.Encoder)/Decode(dec utl.Decoder) contract
// gofem's ele.Element uses for its own internal-variable serialization,
// here gob-based by default (compressed.go's WriteCompressed wraps the
// same body with gzip for the compressed variant of spec.md §6.2).
package dump

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/storage"
)

// Magic identifies a gosph dump file; Version is bumped whenever Header's
// layout or the wire shape storage.Encode writes changes incompatibly.
const (
	Magic          uint32 = 0x48505347 // "GSPH" read as a little-endian uint32
	CurrentVersion uint32 = 1
)

// runTypeLen bounds Header.RunType's fixed byte array.
const runTypeLen = 32

// Header is spec.md §6.1's dump container header: {magic, versionCode,
// particleCnt, materialCnt, quantityCnt, runTime, timeStep,
// wallclockTime, runType}. It has a fixed binary layout so a reader can
// validate magic/version before attempting to decode the body at all.
type Header struct {
	Magic         uint32
	Version       uint32
	ParticleCnt   uint32
	MaterialCnt   uint32
	QuantityCnt   uint32
	RunTime       float64
	TimeStep      float64
	WallclockTime float64
	RunType       [runTypeLen]byte
}

func newHeader(st *storage.Storage, runTime, timeStep, wallclockTime float64, runType string) Header {
	h := Header{
		Magic:         Magic,
		Version:       CurrentVersion,
		ParticleCnt:   uint32(st.N()),
		MaterialCnt:   uint32(len(st.Partitions())),
		QuantityCnt:   uint32(len(st.Ids())),
		RunTime:       runTime,
		TimeStep:      timeStep,
		WallclockTime: wallclockTime,
	}
	copy(h.RunType[:], runType)
	return h
}

// RunType_ returns the header's run-type string, trimmed of trailing zero
// padding.
func (h Header) RunType_() string {
	n := bytes.IndexByte(h.RunType[:], 0)
	if n < 0 {
		n = len(h.RunType)
	}
	return string(h.RunType[:n])
}

// Write writes st and the given run metadata to path as a binary
// versioned dump.
func Write(path string, st *storage.Storage, runTime, timeStep, wallclockTime float64, runType string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("dump: cannot create %q: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTo(f, st, runTime, timeStep, wallclockTime, runType)
}

// WriteTo writes st to an arbitrary io.Writer, letting WriteCompressed wrap it
// with a gzip.Writer for spec.md §6.2's compressed variant.
func WriteTo(w io.Writer, st *storage.Storage, runTime, timeStep, wallclockTime float64, runType string) error {
	h := newHeader(st, runTime, timeStep, wallclockTime, runType)
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return chk.Err("dump: cannot write header: %v", err)
	}
	if err := st.Encode(gob.NewEncoder(w)); err != nil {
		return chk.Err("dump: cannot encode storage: %v", err)
	}
	return nil
}

// Read reads a dump written by Write. upgradeIds lists every quantity id
// the caller's current run expects to have; any id absent from the dump
// (because the dump predates that id's introduction) is inserted with
// zero-initialized buffers, satisfying spec.md §6.1's backward
// compatibility requirement ("upgrade in memory by inserting
// zero-initialized buffers for quantities absent in older versions").
func Read(path string, upgradeIds []storage.Id) (*storage.Storage, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, chk.Err("dump: cannot open %q: %v", path, err)
	}
	defer f.Close()
	return ReadFrom(f, upgradeIds)
}

// ReadFrom reads a dump from an arbitrary io.Reader.
func ReadFrom(r io.Reader, upgradeIds []storage.Id) (*storage.Storage, Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, Header{}, chk.Err("dump: cannot read header: %v", err)
	}
	if h.Magic != Magic {
		return nil, Header{}, chk.Err("dump: not a gosph dump (bad magic %#x)", h.Magic)
	}
	if h.Version > CurrentVersion {
		return nil, Header{}, chk.Err("dump: version %d is newer than this build supports (%d)", h.Version, CurrentVersion)
	}

	st := storage.New()
	if err := st.Decode(gob.NewDecoder(r)); err != nil {
		return nil, Header{}, chk.Err("dump: cannot decode storage: %v", err)
	}
	for _, id := range upgradeIds {
		if !st.Has(id) {
			st.Insert(id)
		}
	}
	return st, h, nil
}
