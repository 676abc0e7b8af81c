// Headless soak driver. Runs all four engines as fast as possible for
// a fixed number of ticks, injecting noise-driven disturbances, and
// writes windowed stats as CSV plus the effective config snapshot.
//
// Usage: go run ./cmd/soak -ticks 100000 -output-dir out/
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/ravaan/glyphsim/config"
	"github.com/ravaan/glyphsim/flock"
	"github.com/ravaan/glyphsim/fluid"
	"github.com/ravaan/glyphsim/noise"
	"github.com/ravaan/glyphsim/sim"
	"github.com/ravaan/glyphsim/telemetry"
	"github.com/ravaan/glyphsim/verlet"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 100000, "Number of ticks to run")
	seed := flag.Int64("seed", 0, "Flock seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats and config snapshot")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	grid, err := fluid.New(cfg.Fluid.N, cfg.Fluid.DT, cfg.Fluid.Diffusion, cfg.Fluid.Viscosity)
	if err != nil {
		slog.Error("failed to create fluid grid", "error", err)
		os.Exit(1)
	}

	const worldW, worldH = 800, 600
	birds, err := flock.New(cfg.Flock.Count, worldW, worldH, rngSeed, flock.Config{
		SeparationWeight: cfg.Flock.SeparationWeight,
		AlignmentWeight:  cfg.Flock.AlignmentWeight,
		CohesionWeight:   cfg.Flock.CohesionWeight,
		PerceptionRadius: cfg.Flock.PerceptionRadius,
		SeparationRadius: cfg.Flock.SeparationRadius,
		MaxSpeed:         cfg.Flock.MaxSpeed,
		MaxForce:         cfg.Flock.MaxForce,
		MaxTrailLength:   cfg.Flock.MaxTrailLength,
	})
	if err != nil {
		slog.Error("failed to create flock", "error", err)
		os.Exit(1)
	}

	system := verlet.NewSystem(verlet.Params{
		Gravity:    cfg.Verlet.Gravity,
		Friction:   cfg.Verlet.Friction,
		Bounce:     cfg.Verlet.Bounce,
		Iterations: cfg.Verlet.Iterations,
	})
	system.SetBounds(0, 0, worldW, worldH)
	system.NewCloth(100, 40, cfg.Verlet.ClothCols, cfg.Verlet.ClothRows, cfg.Verlet.ClothSpacing, true)

	field := noise.NewField(cfg.Noise.Seed)

	out, err := telemetry.NewOutput(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Fluid.DT)

	// The predator wanders along a noise-driven path so the flock's
	// flee rule gets exercised without user input.
	var predator flock.Point
	runner := sim.NewRunner(sim.StepFunc(func() {
		birds.Update(&predator, nil)
		grid.Step()
		system.Step()
	}), cfg.Screen.TPS)

	slog.Info("starting soak run",
		"seed", rngSeed,
		"ticks", *ticks,
		"fluid_n", cfg.Fluid.N,
		"flock_count", cfg.Flock.Count,
	)

	center := cfg.Fluid.N / 2
	for runner.Tick() < int64(*ticks) {
		t := float64(runner.Tick()) * cfg.Fluid.DT

		angle := field.FlowAngle(0.3, 0.7, t*0.1)
		predator.X = worldW/2 + math.Cos(angle)*worldW*0.4
		predator.Y = worldH/2 + math.Sin(angle)*worldH*0.4

		if runner.Tick()%10 == 0 {
			grid.AddDensity(center, center, cfg.Fluid.SplatDens)
			grid.AddVelocity(center, center,
				math.Cos(angle)*cfg.Fluid.SplatForce,
				math.Sin(angle)*cfg.Fluid.SplatForce)
		}
		if runner.Tick()%60 == 0 {
			system.ApplyRadialForce(100+200*math.Abs(math.Sin(t)), 200, 80, 4)
		}

		runner.Advance()

		collector.Observe(grid, birds, system)
		if collector.ShouldFlush(runner.Tick()) {
			w := collector.Flush(runner.Tick())
			w.LogStats()
			if err := out.WriteStats(w); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
		}
	}

	slog.Info("soak run complete", "tick", runner.Tick())
}
