// Command gosph-bench runs a self-gravity benchmark (brute force or
// Barnes-Hut accelerations) over a freshly sampled particle distribution and writes the result as
// a CSV file (spec.md §6.5). Flag-driven configuration follows root
// main.go's flag.Parse() convention rather than tools/LocCmDriver.go's
// io.ArgsTable input struct, since that struct is tailored to reading an
// existing .sim/.pat file pair this command has no equivalent of.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cpmech/gosph/dump"
	"github.com/cpmech/gosph/gravity"
	"github.com/cpmech/gosph/initial"
	"github.com/cpmech/gosph/material"
	"github.com/cpmech/gosph/quantity"
	"github.com/cpmech/gosph/scheduler"
	"github.com/cpmech/gosph/settings"
)

func main() {
	n := flag.Int("n", 2000, "particle count")
	solverName := flag.String("solver", "barnes-hut", "gravity solver: brute-force | barnes-hut")
	theta := flag.Float64("theta", 0.5, "Barnes-Hut opening angle")
	repeats := flag.Int("repeats", 5, "number of timed repetitions")
	out := flag.String("out", "gosph-bench.csv", "output CSV path")
	flag.Parse()

	rs := &settings.RunSettings{}
	rs.SetDefault()
	rs.BarnesHutTheta = *theta

	box := initial.Box{Min: quantity.Vec3{}, Max: quantity.Vec3{X: 1, Y: 1, Z: 1}}
	mat := material.New("bench")
	bs := material.BodySettings{Rho0: 1000, ParticleCnt: *n, Distribution: "random"}
	st, err := initial.Build(bs, mat, box, material.Context{Dimension: rs.Dimension, Gravity: rs.GravityConstant})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gosph-bench: %v\n", err)
		os.Exit(1)
	}

	sched := scheduler.New()
	var solver gravity.Solver
	var bh *gravity.BarnesHut
	switch *solverName {
	case "brute-force":
		solver = &gravity.BruteForce{Config: gravity.Config{G: 1.0}}
	case "barnes-hut":
		bh = &gravity.BarnesHut{Config: gravity.Config{G: 1.0, Theta: rs.BarnesHutTheta}}
		solver = bh
	default:
		fmt.Fprintf(os.Stderr, "gosph-bench: unknown solver %q\n", *solverName)
		os.Exit(1)
	}

	durations := make([]float64, 0, *repeats)
	for i := 0; i < *repeats; i++ {
		t0 := time.Now()
		if bh != nil {
			bh.Build(sched, st)
		}
		if _, err := solver.Accelerations(sched, st); err != nil {
			fmt.Fprintf(os.Stderr, "gosph-bench: accelerations failed: %v\n", err)
			os.Exit(1)
		}
		durations = append(durations, float64(time.Since(t0).Microseconds())/1000.0)
	}

	result := summarize(fmt.Sprintf("gravity-%s-n%d", *solverName, *n), durations)
	if err := dump.WriteBenchCSV(*out, []dump.BenchResult{result}); err != nil {
		fmt.Fprintf(os.Stderr, "gosph-bench: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (mean=%.3fms over %d repeats)\n", *out, result.Mean, result.Iterations)
}

func summarize(name string, samples []float64) dump.BenchResult {
	r := dump.BenchResult{Name: name, Iterations: len(samples)}
	if len(samples) == 0 {
		return r
	}
	sum, min, max := 0.0, samples[0], samples[0]
	for _, s := range samples {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	mean := sum / float64(len(samples))
	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(samples))

	r.DurationMs = sum
	r.Mean = mean
	r.Variance = variance
	r.Min = min
	r.Max = max
	return r
}
