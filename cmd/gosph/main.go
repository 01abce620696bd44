// Command gosph runs a full SPH simulation from a RunSettings/BodySettings
// JSON pair (spec.md §6.4): build the initial particle distribution, step
// it forward to FinalTime with the configured integrator, self-gravity
// solver and neighbor finder, and periodically dump state (spec.md §6.1-
// §6.3). Flag-driven configuration follows root main.go's flag.Parse()
// convention, the same one cmd/gosph-bench uses.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosph/derivative"
	"github.com/cpmech/gosph/dump"
	"github.com/cpmech/gosph/equation"
	"github.com/cpmech/gosph/gravity"
	"github.com/cpmech/gosph/initial"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/settings"
	"github.com/cpmech/gosph/solver"
	"github.com/cpmech/gosph/stats"
	"github.com/cpmech/gosph/storage"
	"github.com/cpmech/gosph/timestep"
)

func main() {
	runPath := flag.String("run", "", "path to a RunSettings JSON file (required)")
	bodyPath := flag.String("body", "", "path to a BodySettings JSON file (required)")
	flag.Parse()

	if *runPath == "" || *bodyPath == "" {
		fmt.Fprintln(os.Stderr, "gosph: -run and -body are both required")
		os.Exit(1)
	}

	rs := settings.Load(*runPath)

	bsRaw, err := io.ReadFile(*bodyPath)
	if err != nil {
		chk.Panic("gosph: cannot read %q: %v", *bodyPath, err)
	}
	var bs material.BodySettings
	if err := json.Unmarshal(bsRaw, &bs); err != nil {
		chk.Panic("gosph: cannot parse %q: %v", *bodyPath, err)
	}

	if err := run(rs, bs); err != nil {
		fmt.Fprintf(os.Stderr, "gosph: %v\n", err)
		os.Exit(1)
	}
}

func run(rs *settings.RunSettings, bs material.BodySettings) error {
	mat, err := material.NewFromSettings("body", bs)
	if err != nil {
		return chk.Err("cannot build material: %v", err)
	}

	box := initial.Box{Min: quantity.Vec3{}, Max: quantity.Vec3{X: 1, Y: 1, Z: 1}}
	ctx := material.Context{Dimension: rs.Dimension, Gravity: rs.GravityConstant}
	st, err := initial.Build(bs, mat, box, ctx)
	if err != nil {
		return chk.Err("cannot build initial state: %v", err)
	}

	kern, err := kernel.New(rs.Kernel, rs.Dimension)
	if err != nil {
		return chk.Err("cannot build kernel: %v", err)
	}
	find, err := rs.NewFinder()
	if err != nil {
		return chk.Err("cannot build finder: %v", err)
	}
	integ, err := timestep.New(rs.Integrator)
	if err != nil {
		return chk.Err("cannot build integrator: %v", err)
	}
	sched := scheduler.New()

	eqSettings := equation.Settings{
		AVAlpha: rs.AVAlpha,
		AVBeta:  rs.AVBeta,
	}
	terms := []equation.EquationTerm{
		&derivative.DerivativeOnlyTerm{D: &derivative.PressureGradient{}},
		&derivative.DerivativeOnlyTerm{D: &derivative.ArtificialViscosity{Alpha: rs.AVAlpha, Beta: rs.AVBeta, Balsara: rs.AVBalsara}},
		&derivative.ContinuityTerm{},
		&derivative.EnergyTerm{},
	}
	symSolver := solver.NewSymmetricSolver(sched, find, kern, eqSettings, terms)

	conditions, err := rs.Boundary.NewConditions()
	if err != nil {
		return chk.Err("cannot build boundary conditions: %v", err)
	}
	symSolver.Boundaries = make([]solver.BoundaryCondition, len(conditions))
	for i, c := range conditions {
		symSolver.Boundaries[i] = c
	}

	collider, err := rs.Boundary.NewCollider()
	if err != nil {
		return chk.Err("cannot build boundary collider: %v", err)
	}
	if collider != nil {
		setColliders(integ, []timestep.Collider{collider})
	}

	var bh *gravity.BarnesHut
	var grav gravity.Solver
	if rs.SelfGravity {
		gravCfg := gravity.Config{G: rs.GravityConstant, Theta: rs.BarnesHutTheta}
		bh = &gravity.BarnesHut{Config: gravCfg}
		grav = bh
	}
	ev := &stepEvaluator{solver: symSolver, grav: grav, bh: bh, sched: sched}

	runStats := stats.New()
	dt := rs.InitialDt
	if dt <= 0 {
		dt = 1e-4
	}
	lastOut := 0.0
	for t := 0.0; t < rs.FinalTime; t += dt {
		if err := integ.Advance(st, ev, t, dt); err != nil {
			return chk.Err("step at t=%g failed: %v", t, err)
		}
		if rs.DtOut > 0 && t-lastOut >= rs.DtOut {
			if err := dumpState(rs, st, t, dt); err != nil {
				return err
			}
			runStats.RecordOutput(t)
			lastOut = t
		}
	}
	if rs.DirOut != "" {
		if err := runStats.Save(rs.DirOut + "/stats.gob"); err != nil {
			return chk.Err("cannot save run statistics: %v", err)
		}
	}
	return nil
}

// stepEvaluator composes the pairwise SPH solver with the optional
// self-gravity pass into the single timestep.Evaluator an Integrator
// drives: gravity.Solver writes into the same POSITION d2t buffer the
// solver's pressure/stress terms already accumulated into, so it simply
// runs after, never replacing what came before.
type stepEvaluator struct {
	solver *solver.SymmetricSolver
	grav   gravity.Solver
	bh     *gravity.BarnesHut
	sched  scheduler.Scheduler
}

func (e *stepEvaluator) Step(st *storage.Storage, t float64) error {
	if err := e.solver.Step(st, t); err != nil {
		return err
	}
	if e.grav == nil {
		return nil
	}
	if e.bh != nil {
		e.bh.Build(e.sched, st)
	}
	if _, err := e.grav.Accelerations(e.sched, st); err != nil {
		return err
	}
	return nil
}

// setColliders installs colliders on whichever of timestep.New's
// Integrator kinds carries a Colliders field (Euler, Leapfrog,
// PredictorCorrector); RK4, ModifiedMidpoint and BulirschStoer have no
// drift substep to hook a collider into and are left alone.
func setColliders(integ timestep.Integrator, colliders []timestep.Collider) {
	switch it := integ.(type) {
	case *timestep.Euler:
		it.Colliders = colliders
	case *timestep.Leapfrog:
		it.Colliders = colliders
	case *timestep.PredictorCorrector:
		it.Colliders = colliders
	}
}

func dumpState(rs *settings.RunSettings, st *storage.Storage, t, dt float64) error {
	path := fmt.Sprintf("%s/dump-%012.6f.bin", rs.DirOut, t)
	if rs.Compress {
		return dump.WriteCompressed(path, st, t, dt, 0, "gosph")
	}
	return dump.Write(path, st, t, dt, 0, "gosph")
}
