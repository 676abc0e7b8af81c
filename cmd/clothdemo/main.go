// Interactive cloth demo. A cloth sheet pinned along its top row hangs
// under gravity; dragging the mouse pushes particles away with a
// radial force.
//
// Usage: go run ./cmd/clothdemo [-config path]
package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ravaan/glyphsim/config"
	"github.com/ravaan/glyphsim/sim"
	"github.com/ravaan/glyphsim/verlet"
)

const (
	dragRadius   = 60.0
	dragStrength = 8.0
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	system := verlet.NewSystem(verlet.Params{
		Gravity:    cfg.Verlet.Gravity,
		Friction:   cfg.Verlet.Friction,
		Bounce:     cfg.Verlet.Bounce,
		Iterations: cfg.Verlet.Iterations,
	})
	system.SetBounds(0, 0, float64(cfg.Screen.Width), float64(cfg.Screen.Height))

	clothW := float64(cfg.Verlet.ClothCols-1) * cfg.Verlet.ClothSpacing
	originX := (float64(cfg.Screen.Width) - clothW) / 2
	system.NewCloth(originX, 40, cfg.Verlet.ClothCols, cfg.Verlet.ClothRows, cfg.Verlet.ClothSpacing, true)

	runner := sim.NewRunner(system, cfg.Screen.TPS)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "glyphsim - cloth")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			mouse := rl.GetMousePosition()
			system.ApplyRadialForce(float64(mouse.X), float64(mouse.Y), dragRadius, dragStrength)
		}

		runner.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		for _, c := range system.Constraints() {
			rl.DrawLineV(
				rl.Vector2{X: float32(c.A.X), Y: float32(c.A.Y)},
				rl.Vector2{X: float32(c.B.X), Y: float32(c.B.Y)},
				rl.DarkGray,
			)
		}
		for _, p := range system.Particles() {
			if p.Pinned {
				rl.DrawCircleV(rl.Vector2{X: float32(p.X), Y: float32(p.Y)}, 3, rl.Red)
			}
		}

		rl.DrawText("drag to push the cloth", 10, 10, 16, rl.Gray)
		rl.DrawFPS(10, 32)
		rl.EndDrawing()
	}
}
