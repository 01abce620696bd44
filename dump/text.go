package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/storage"
)

// Columns expands a quantity id into its natural component column names,
// reading only from the VALUE buffer (not dt/d2t) -- a human-readable
// text dump is a snapshot for plotting/diffing, not a restart file, so it
// never needs to round-trip through the same derivative buffers the
// binary dump does.
func Columns(ids []storage.Id) []string {
	var names []string
	for _, id := range ids {
		switch id {
		case storage.POSITION:
			names = append(names, "x", "y", "z", "h")
		default:
			names = append(names, id.String())
		}
	}
	return names
}

// WriteText writes a text dump of st to path: a header line naming the
// run, a comment line of column names, then one whitespace-separated row
// per particle (spec.md §6.3). ids selects which quantities appear, in
// order; storage.POSITION expands to x y z h, every other id to a single
// column (its VALUE component for a SCALAR/INDEX quantity, or the first
// component of a VECTOR/SYMTENSOR/TRACELESSTENSOR -- multi-component
// quantities besides POSITION are rare in a plotting dump and callers
// wanting their full tensor should list the id once per component they
// need via a future extension; none of spec.md's worked examples dump a
// raw tensor column).
func WriteText(path, runName string, st *storage.Storage, ids []storage.Id) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("dump: cannot create %q: %v", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := WriteTextTo(w, runName, st, ids); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTextTo writes the same format as WriteText to an arbitrary
// io.Writer.
func WriteTextTo(w io.Writer, runName string, st *storage.Storage, ids []storage.Id) error {
	if _, err := fmt.Fprintf(w, "# %s\n", runName); err != nil {
		return chk.Err("dump: cannot write header line: %v", err)
	}
	if _, err := fmt.Fprintf(w, "# %s\n", strings.Join(Columns(ids), " ")); err != nil {
		return chk.Err("dump: cannot write column line: %v", err)
	}
	quants := make([]*quantity.Quantity, len(ids))
	for k, id := range ids {
		if !st.Has(id) {
			return chk.Err("dump: storage has no %s quantity to dump", id)
		}
		quants[k] = st.Get(id)
	}
	for i := 0; i < st.N(); i++ {
		for k, id := range ids {
			if k > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return chk.Err("dump: write failed: %v", err)
				}
			}
			if err := writeRowValue(w, id, quants[k], i); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return chk.Err("dump: write failed: %v", err)
		}
	}
	return nil
}

func writeRowValue(w io.Writer, id storage.Id, q *quantity.Quantity, i int) error {
	switch id {
	case storage.POSITION:
		p := q.Vector(i)
		_, err := fmt.Fprintf(w, "%.17g %.17g %.17g %.17g", p.X, p.Y, p.Z, p.H)
		if err != nil {
			return chk.Err("dump: write failed: %v", err)
		}
		return nil
	}

	var v float64
	switch q.Type {
	case quantity.Scalar:
		v = q.Scalar(i)
	case quantity.Index:
		v = float64(q.Index(i))
	case quantity.Vector:
		v = q.Vector(i).X
	case quantity.SymTensor:
		v = q.SymTensor(i).XX
	case quantity.TracelessTensor:
		v = q.Traceless(i).XX
	}
	if _, err := fmt.Fprintf(w, "%.17g", v); err != nil {
		return chk.Err("dump: write failed: %v", err)
	}
	return nil
}
