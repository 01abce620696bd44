package storage

import (
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/gosph/quantity"
)

func quantityToWire(q *quantity.Quantity) wireQuantity {
	value, dt, d2t := q.RawBuffers()
	return wireQuantity{
		Type: int(q.Type), Order: int(q.Order), N: q.N,
		Value: append([]float64(nil), value...),
		Dt:    append([]float64(nil), dt...),
		D2t:   append([]float64(nil), d2t...),
	}
}

func quantityFromWire(w wireQuantity) *quantity.Quantity {
	return quantity.FromRaw(quantity.ValueType(w.Type), quantity.Order(w.Order), w.N, w.Value, w.Dt, w.D2t)
}

// wireQuantity is the gob-friendly shadow of quantity.Quantity; package
// quantity intentionally keeps its buffers unexported, so Storage (which
// already knows the full id->Quantity map) is responsible for its own
// on-the-wire shape, mirroring how gofem's ele.Element.Encode/Decode
// serialize internal state that only the element itself understands.
type wireQuantity struct {
	Type  int
	Order int
	N     int
	Value []float64
	Dt    []float64
	D2t   []float64
}

type wirePartition struct {
	From, To     int
	MaterialName string
}

type wireAttractor struct {
	Px, Py, Pz, Pw float64
	Vx, Vy, Vz, Vw float64
	Mass, Radius   float64
}

type wireStorage struct {
	N          int
	Quantities map[Id]wireQuantity
	Partitions []wirePartition
	Attractors []wireAttractor
}

// Encode writes s's structural and value state using the given
// gosl/utl.Encoder (gob-based), following the same Encode(enc
// utl.Encoder) error contract gofem's ele.Element implements for
// internal-variable serialization. Materials are encoded by name only --
// decoding requires the caller to re-attach live Material objects via
// RebindMaterials, exactly as BodySettings blocks are re-parsed rather
// than gob-decoded in gofem's own dump format (spec.md §6.1).
func (s *Storage) Encode(enc utl.Encoder) (err error) {
	w := wireStorage{N: s.n, Quantities: make(map[Id]wireQuantity, len(s.quantities))}
	for id, q := range s.quantities {
		w.Quantities[id] = quantityToWire(q)
	}
	for _, p := range s.partitions {
		name := ""
		if p.Material != nil {
			name = p.Material.Name()
		}
		w.Partitions = append(w.Partitions, wirePartition{From: p.From, To: p.To, MaterialName: name})
	}
	for _, a := range s.attractors {
		w.Attractors = append(w.Attractors, wireAttractor{
			Px: a.Position.X, Py: a.Position.Y, Pz: a.Position.Z, Pw: a.Position.H,
			Vx: a.Velocity.X, Vy: a.Velocity.Y, Vz: a.Velocity.Z, Vw: a.Velocity.H,
			Mass: a.Mass, Radius: a.Radius,
		})
	}
	return enc.Encode(w)
}

// Decode reads s's structural and value state back from dec, replacing
// any current content. Material partitions are restored with a nil
// Material pointer and must be bound with RebindMaterials by the caller.
func (s *Storage) Decode(dec utl.Decoder) (err error) {
	var w wireStorage
	if err = dec.Decode(&w); err != nil {
		return
	}
	s.n = w.N
	s.quantities = make(map[Id]*quantity.Quantity, len(w.Quantities))
	for id, wq := range w.Quantities {
		s.quantities[id] = quantityFromWire(wq)
	}
	s.partitions = nil
	for _, wp := range w.Partitions {
		s.partitions = append(s.partitions, MaterialPartition{From: wp.From, To: wp.To})
	}
	s.attractors = nil
	for _, wa := range w.Attractors {
		s.attractors = append(s.attractors, Attractor{
			Position: quantity.Vec3{X: wa.Px, Y: wa.Py, Z: wa.Pz, H: wa.Pw},
			Velocity: quantity.Vec3{X: wa.Vx, Y: wa.Vy, Z: wa.Vz, H: wa.Vw},
			Mass:     wa.Mass,
			Radius:   wa.Radius,
		})
	}
	return nil
}

// RebindMaterials re-attaches live Material objects to partitions after
// Decode by position: mats[i] goes to the i-th partition. Names are not
// compared, and partitions beyond len(mats) keep a nil Material.
func (s *Storage) RebindMaterials(mats []Material) {
	for i := range s.partitions {
		if i < len(mats) {
			s.partitions[i].Material = mats[i]
		}
	}
}
