// package settings implements the two typed key-value configuration
// blocks of spec.md §6.4: RunSettings (global, this package) and
// BodySettings (per-material, already implemented as
// github.com/cpmech/gosph/material.BodySettings since it must live next
// to the Material it parameterizes). Both are JSON structs, grounded on
// inp/sim.go's Data/SolverData/TimeControl -- the teacher reads its own
// .sim files with json.Unmarshal over a gosl/io.ReadFile byte slice and
// writes them back with json.MarshalIndent, the same two calls this
// package wraps in Load/Save.
package settings

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// RunSettings is the global per-run configuration of spec.md §6.4: solver
// selection, SPH kernel, artificial viscosity, finder choice, timestep
// bounds and adaptivity, thread granularity, output paths and intervals.
type RunSettings struct {
	// solver / time integration
	Integrator   string  `json:"integrator"`   // registered name, see timestep.New
	InitialDt    float64 `json:"initialdt"`    // initial time step
	MaxDt        float64 `json:"maxdt"`        // upper bound on adaptive time step
	MinDt        float64 `json:"mindt"`        // lower bound; violating it is a NumericFailure
	FinalTime    float64 `json:"finaltime"`
	CourantCoeff float64 `json:"courantcoeff"` // Courant-Friedrichs-Lewy safety factor
	Adaptive     bool    `json:"adaptive"`     // use timestep.Criterion-driven adaptive stepping

	// kernel
	Kernel    string `json:"kernel"`    // registered name, see kernel.New
	Dimension int    `json:"dimension"` // 1, 2 or 3

	// artificial viscosity
	AVAlpha   float64 `json:"avalpha"`
	AVBeta    float64 `json:"avbeta"`
	AVBalsara bool    `json:"avbalsara"`

	// neighbor search
	Finder       string  `json:"finder"`       // "bruteforce" | "kdtree" | "uniform-grid"
	SearchRadius float64 `json:"searchradius"` // multiple of h defining the kernel's support

	// gravity
	GravityConstant float64 `json:"gravityconstant"`
	SelfGravity     bool    `json:"selfgravity"`
	BarnesHutTheta  float64 `json:"barneshuttheta"`

	// boundary conditions, see BoundarySettings
	Boundary BoundarySettings `json:"boundary"`

	// execution
	ThreadCnt int `json:"threadcnt"` // 0 => let scheduler.Pool pick a default

	// output
	DirOut   string   `json:"dirout"`
	DtOut    float64  `json:"dtout"`    // interval between full dumps
	Compress bool     `json:"compress"` // gzip dumps, see package dump
	TextCols []string `json:"textcols"` // column selector for the text dump, see dump.Columns
}

// SetDefault fills in the values gofem's SolverData.SetDefault also
// supplies when a .sim file omits them, so a zero-value RunSettings
// decoded from a minimal JSON document is still runnable.
func (s *RunSettings) SetDefault() {
	if s.Integrator == "" {
		s.Integrator = "predictor-corrector"
	}
	if s.Kernel == "" {
		s.Kernel = "cubic-spline"
	}
	if s.Dimension == 0 {
		s.Dimension = 3
	}
	if s.Finder == "" {
		s.Finder = "kdtree"
	}
	if s.SearchRadius == 0 {
		s.SearchRadius = 2.0
	}
	if s.CourantCoeff == 0 {
		s.CourantCoeff = 0.3
	}
	if s.BarnesHutTheta == 0 {
		s.BarnesHutTheta = 0.5
	}
}

// Load reads a RunSettings from a JSON file, following inp.ReadSim's
// read-then-unmarshal sequence. Malformed configuration is an
// InvalidSetup condition (spec.md §7): like ReadSim, Load panics rather
// than returning an error, since a broken run configuration is a
// programming/deployment mistake to fix before the run starts, not a
// condition the caller can recover from mid-run.
func Load(path string) *RunSettings {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("settings: cannot read %q: %v", path, err)
	}
	var s RunSettings
	s.SetDefault()
	if err := json.Unmarshal(b, &s); err != nil {
		chk.Panic("settings: cannot parse %q: %v", path, err)
	}
	return &s
}

// Save writes s to path as indented JSON, following Simulation.GetInfo's
// json.MarshalIndent(o, "", "  ") convention.
func Save(path string, s *RunSettings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return chk.Err("settings: cannot marshal: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("settings: cannot create %q: %v", path, err)
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return chk.Err("settings: cannot write %q: %v", path, err)
	}
	return nil
}
