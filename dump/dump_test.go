package dump

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

func newSampleStorage() *storage.Storage {
	st := storage.NewWithMaterial(3, material.New("fake"))
	st.Insert(storage.POSITION)
	st.Insert(storage.MASS)
	st.Insert(storage.DENSITY)
	pos := st.Get(storage.POSITION)
	mass := st.Get(storage.MASS)
	density := st.Get(storage.DENSITY)
	for i := 0; i < 3; i++ {
		x := float64(i)
		pos.SetVector(i, quantity.Vec3{X: x, Y: 2 * x, Z: -x, H: 0.1})
		pos.SetVectorDt(i, quantity.Vec3{X: 0.5})
		mass.SetScalar(i, 1.25)
		density.SetScalar(i, 1000+x)
	}
	return st
}

func Test_dump_roundtrip01(tst *testing.T) {
	chk.PrintTitle("dump_roundtrip01: WriteTo/ReadFrom preserves positions, mass and density")
	st := newSampleStorage()

	var buf bytes.Buffer
	if err := WriteTo(&buf, st, 1.5, 0.01, 3.2, "explosion"); err != nil {
		tst.Fatalf("WriteTo failed: %v", err)
	}

	got, h, err := ReadFrom(&buf, nil)
	if err != nil {
		tst.Fatalf("ReadFrom failed: %v", err)
	}
	chk.Scalar(tst, "header.RunTime", 1e-15, h.RunTime, 1.5)
	chk.Scalar(tst, "header.TimeStep", 1e-15, h.TimeStep, 0.01)
	chk.Scalar(tst, "header.WallclockTime", 1e-15, h.WallclockTime, 3.2)
	if h.RunType_() != "explosion" {
		tst.Fatalf("RunType = %q, want %q", h.RunType_(), "explosion")
	}
	if int(h.ParticleCnt) != 3 {
		tst.Fatalf("ParticleCnt = %d, want 3", h.ParticleCnt)
	}

	if got.N() != 3 {
		tst.Fatalf("N() = %d, want 3", got.N())
	}
	pos := got.Get(storage.POSITION)
	for i := 0; i < 3; i++ {
		p := pos.Vector(i)
		chk.Scalar(tst, "x", 1e-15, p.X, float64(i))
		chk.Scalar(tst, "h", 1e-15, p.H, 0.1)
	}
	density := got.Get(storage.DENSITY)
	chk.Scalar(tst, "density[1]", 1e-15, density.Scalar(1), 1001)
}

func Test_dump_upgrademissingquantity01(tst *testing.T) {
	chk.PrintTitle("dump_upgrademissingquantity01: reading an old dump inserts zero-filled buffers for new ids")
	st := newSampleStorage()

	var buf bytes.Buffer
	if err := WriteTo(&buf, st, 0, 0, 0, ""); err != nil {
		tst.Fatalf("WriteTo failed: %v", err)
	}

	got, _, err := ReadFrom(&buf, []storage.Id{storage.DAMAGE})
	if err != nil {
		tst.Fatalf("ReadFrom failed: %v", err)
	}
	if !got.Has(storage.DAMAGE) {
		tst.Fatalf("expected DAMAGE to be inserted during upgrade")
	}
	damage := got.Get(storage.DAMAGE)
	for i := 0; i < got.N(); i++ {
		chk.Scalar(tst, "damage (zero-filled)", 1e-15, damage.Scalar(i), 0)
	}
}

func Test_dump_badmagic01(tst *testing.T) {
	chk.PrintTitle("dump_badmagic01: reading garbage reports an error instead of panicking")
	buf := bytes.NewBufferString("not a dump at all, just some bytes to fill the header-sized prefix...")
	if _, _, err := ReadFrom(buf, nil); err == nil {
		tst.Fatalf("expected an error for a non-dump stream")
	}
}

func Test_dump_compressedroundtrip01(tst *testing.T) {
	chk.PrintTitle("dump_compressedroundtrip01: WriteCompressed/ReadCompressed preserves values through gzip")
	st := newSampleStorage()

	path := tst.TempDir() + "/sample.gsph.gz"
	if err := WriteCompressed(path, st, 2.0, 0.02, 1.0, "compressed"); err != nil {
		tst.Fatalf("WriteCompressed failed: %v", err)
	}
	got, h, err := ReadCompressed(path, nil)
	if err != nil {
		tst.Fatalf("ReadCompressed failed: %v", err)
	}
	chk.Scalar(tst, "header.RunTime", 1e-15, h.RunTime, 2.0)
	mass := got.Get(storage.MASS)
	chk.Scalar(tst, "mass[0]", 1e-15, mass.Scalar(0), 1.25)
}

func Test_dump_text01(tst *testing.T) {
	chk.PrintTitle("dump_text01: text dump has a header, a comment line and one row per particle")
	st := newSampleStorage()

	var buf bytes.Buffer
	ids := []storage.Id{storage.POSITION, storage.DENSITY}
	if err := WriteTextTo(&buf, "explosion", st, ids); err != nil {
		tst.Fatalf("WriteTextTo failed: %v", err)
	}
	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	if len(lines) != 2+3 {
		tst.Fatalf("expected 2 header lines + 3 particle rows, got %d lines", len(lines))
	}
	if string(lines[0]) != "# explosion" {
		tst.Fatalf("unexpected header line: %q", lines[0])
	}
	if string(lines[1]) != "# x y z h DENSITY" {
		tst.Fatalf("unexpected column line: %q", lines[1])
	}
}

func Test_bench_writecsv01(tst *testing.T) {
	chk.PrintTitle("bench_writecsv01: WriteBenchCSV writes a results file without error")
	path := tst.TempDir() + "/bench.csv"
	results := []BenchResult{
		{Name: "neighbor-search", DurationMs: 12.5, Iterations: 10, Mean: 1.25, Variance: 0.01, Min: 1.0, Max: 1.5},
		{Name: "gravity-barnes-hut", DurationMs: 30.0, Iterations: 10, Mean: 3.0, Variance: 0.05, Min: 2.5, Max: 3.5},
	}
	if err := WriteBenchCSV(path, results); err != nil {
		tst.Fatalf("WriteBenchCSV failed: %v", err)
	}
}
