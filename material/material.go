package material

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosph/storage"
)

// Interval is an allowed value range for a quantity (spec.md §3.3).
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Clamp(v float64) (clamped float64, bound bool) {
	if v < iv.Lo {
		return iv.Lo, true
	}
	if v > iv.Hi {
		return iv.Hi, true
	}
	return v, false
}

// Context carries whatever a Material.Create needs from the run (gravity
// constant, dimensionality, ...) without importing settings (which would
// cycle back through material for BodySettings).
type Context struct {
	Dimension int
	Gravity   float64
}

// Material is the polymorphic parameter+behavior block of spec.md §3.3:
// BodySettings, per-quantity ranges/minimal values, and the Create hook
// that appends material-specific quantities to a Storage.
type Material struct {
	name     string
	Settings BodySettings

	Eos      Eos
	Rheology Rheology
	Damage   Damage

	ranges   map[storage.Id]Interval
	minimals map[storage.Id]float64
}

// ShearModulus returns the elastic shear modulus used by the Hooke's-law
// rate term (spec.md §6.4 lists it as a BodySettings field alongside the
// rheology's yield law, since the elastic rate law and the yield-surface
// clamp are independent concerns).
func (m *Material) ShearModulus() float64 { return m.Settings.ShearModulus }

// Name implements storage.Material.
func (m *Material) Name() string { return m.name }

func New(name string) *Material {
	return &Material{name: name, ranges: map[storage.Id]Interval{}, minimals: map[storage.Id]float64{}}
}

func (m *Material) SetRange(id storage.Id, lo, hi float64) { m.ranges[id] = Interval{lo, hi} }

func (m *Material) Range(id storage.Id) (Interval, bool) {
	iv, ok := m.ranges[id]
	return iv, ok
}

func (m *Material) SetMinimal(id storage.Id, v float64) { m.minimals[id] = v }

// Minimal returns the minimal-value scale used by adaptive timestepping
// below which differences are ignored (spec.md §3.3); defaults to 0.
func (m *Material) Minimal(id storage.Id) float64 { return m.minimals[id] }

// Create appends this material's quantities to st (e.g. DEVIATORIC_STRESS
// for solids, DAMAGE for fractured solids), following the
// mdl/porous.Model.Init "derived quantities computed at setup" idiom.
// ctx carries ambient parameters (dimension, gravity) the material might
// need but that are not part of its own BodySettings.
func (m *Material) Create(st *storage.Storage, ctx Context) error {
	if !st.Has(storage.DENSITY) {
		st.Insert(storage.DENSITY)
	}
	if !st.Has(storage.ENERGY) {
		st.Insert(storage.ENERGY)
	}
	if m.Eos != nil {
		if !st.Has(storage.PRESSURE) {
			st.Insert(storage.PRESSURE)
		}
		if !st.Has(storage.SOUND_SPEED) {
			st.Insert(storage.SOUND_SPEED)
		}
		m.SetRange(storage.ENERGY, 0, 1e300)
		if o, ok := m.Eos.(*Tillotson); ok {
			m.SetRange(storage.DENSITY, 1e-6*o.Rho0, 1e300)
		}
	}
	if m.Rheology != nil {
		if !st.Has(storage.DEVIATORIC_STRESS) {
			st.Insert(storage.DEVIATORIC_STRESS)
		}
	}
	if m.Damage != nil {
		if !st.Has(storage.DAMAGE) {
			st.Insert(storage.DAMAGE)
		}
		if !st.Has(storage.STRESS_REDUCING) {
			st.Insert(storage.STRESS_REDUCING)
		}
		m.SetRange(storage.DAMAGE, 0, 1)
	}
	return nil
}

// NewFromSettings builds a Material from a BodySettings block, resolving
// its EOS name, (optional) rheology and damage models via the same
// name->allocator factory lookup gofem's mdl/solid.New uses.
func NewFromSettings(name string, bs BodySettings) (*Material, error) {
	m := New(name)
	m.Settings = bs
	if bs.EosName != "" {
		eos, err := NewEos(bs.EosName)
		if err != nil {
			return nil, chk.Err("material %q: %v", name, err)
		}
		if err := eos.Init(bs.EosParams); err != nil {
			return nil, chk.Err("material %q: eos init failed: %v", name, err)
		}
		m.Eos = eos
	}
	if bs.RheologyName != "" {
		rh, err := NewRheology(bs.RheologyName)
		if err != nil {
			return nil, chk.Err("material %q: %v", name, err)
		}
		if err := rh.Init(bs.RheologyParams); err != nil {
			return nil, chk.Err("material %q: rheology init failed: %v", name, err)
		}
		m.Rheology = rh
	}
	if bs.DamageName != "" {
		dm, err := NewDamage(bs.DamageName)
		if err != nil {
			return nil, chk.Err("material %q: %v", name, err)
		}
		if err := dm.Init(bs.DamageParams); err != nil {
			return nil, chk.Err("material %q: damage init failed: %v", name, err)
		}
		m.Damage = dm
	}
	return m, nil
}

// BodySettings is the per-material typed parameter block of spec.md
// §6.4, built on gosl/fun/dbf.Params the same way gofem's
// mdl/solid.Model.Init(prms fun.Prms) is.
type BodySettings struct {
	EosName        string
	EosParams      dbf.Params
	RheologyName   string
	RheologyParams dbf.Params
	DamageName     string
	DamageParams   dbf.Params

	ShearModulus float64
	BulkModulus  float64
	Rho0         float64
	RefEnergy    float64

	ParticleCnt  int
	Distribution string // "hexagonal" | "random" | "diehl"
}
