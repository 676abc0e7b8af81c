// Interactive stable-fluids demo. Dragging the mouse injects density
// and velocity; the density field renders as a grayscale texture.
//
// Usage: go run ./cmd/fluiddemo [-config path] [-output-dir dir]
package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ravaan/glyphsim/config"
	"github.com/ravaan/glyphsim/fluid"
	"github.com/ravaan/glyphsim/sim"
	"github.com/ravaan/glyphsim/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	grid, err := fluid.New(cfg.Fluid.N, cfg.Fluid.DT, cfg.Fluid.Diffusion, cfg.Fluid.Viscosity)
	if err != nil {
		slog.Error("failed to create fluid grid", "error", err)
		os.Exit(1)
	}

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
	runner := sim.NewRunner(grid, cfg.Screen.TPS)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "glyphsim - fluid")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	n := grid.N()
	img := rl.GenImageColor(n, n, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	pixels := make([]color.RGBA, n*n)

	cellW := float32(cfg.Screen.Width) / float32(n)
	cellH := float32(cfg.Screen.Height) / float32(n)

	var prevMouse rl.Vector2

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			cx := int(mouse.X / cellW)
			cy := int(mouse.Y / cellH)
			grid.AddDensity(cx, cy, cfg.Fluid.SplatDens)
			grid.AddVelocity(cx, cy,
				float64(mouse.X-prevMouse.X)*cfg.Fluid.SplatForce,
				float64(mouse.Y-prevMouse.Y)*cfg.Fluid.SplatForce)
		}
		prevMouse = mouse

		runner.Update()

		collector.Observe(grid, nil, nil)
		if collector.ShouldFlush(runner.Tick()) {
			w := collector.Flush(runner.Tick())
			w.LogStats()
			if err := out.WriteStats(w); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
		}

		density := grid.Density()
		for i, d := range density {
			v := d
			if v > 255 {
				v = 255
			}
			if v < 0 {
				v = 0
			}
			g := uint8(v)
			pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
		}
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(n), Height: float32(n)},
			rl.Rectangle{X: 0, Y: 0, Width: float32(cfg.Screen.Width), Height: float32(cfg.Screen.Height)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawFPS(10, 10)
		rl.EndDrawing()

		if *maxTicks > 0 && runner.Tick() >= int64(*maxTicks) {
			slog.Info("max ticks reached", "tick", runner.Tick())
			break
		}
	}
}
