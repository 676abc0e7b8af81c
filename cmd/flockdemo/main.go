// Interactive boids demo. The left mouse button places an attractor,
// the right button a predator; sliders tune the three rule weights at
// runtime.
//
// Usage: go run ./cmd/flockdemo [-config path] [-seed n]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ravaan/glyphsim/config"
	"github.com/ravaan/glyphsim/flock"
	"github.com/ravaan/glyphsim/sim"
)

const panelWidth = 240

var facingColors = [8]rl.Color{
	rl.SkyBlue, // East
	rl.Blue,    // NorthEast
	rl.Purple,  // North
	rl.Violet,  // NorthWest
	rl.Pink,    // West
	rl.Orange,  // SouthWest
	rl.Gold,    // South
	rl.Lime,    // SouthEast
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 1, "Flock placement seed")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	worldW := float64(cfg.Screen.Width - panelWidth)
	worldH := float64(cfg.Screen.Height)
	fc := flock.Config{
		SeparationWeight: cfg.Flock.SeparationWeight,
		AlignmentWeight:  cfg.Flock.AlignmentWeight,
		CohesionWeight:   cfg.Flock.CohesionWeight,
		PerceptionRadius: cfg.Flock.PerceptionRadius,
		SeparationRadius: cfg.Flock.SeparationRadius,
		MaxSpeed:         cfg.Flock.MaxSpeed,
		MaxForce:         cfg.Flock.MaxForce,
		MaxTrailLength:   cfg.Flock.MaxTrailLength,
	}
	birds, err := flock.New(cfg.Flock.Count, worldW, worldH, *seed, fc)
	if err != nil {
		slog.Error("failed to create flock", "error", err)
		os.Exit(1)
	}

	// Pointer targets are rebound each frame before the step runs.
	var predator, attractor *flock.Point
	runner := sim.NewRunner(sim.StepFunc(func() {
		birds.Update(predator, attractor)
	}), cfg.Screen.TPS)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "glyphsim - flock")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	weights := birds.Config()

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		predator, attractor = nil, nil
		if float64(mouse.X) < worldW {
			p := flock.Point{X: float64(mouse.X), Y: float64(mouse.Y)}
			if rl.IsMouseButtonDown(rl.MouseRightButton) {
				predator = &p
			} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
				attractor = &p
			}
		}

		runner.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		for _, b := range birds.Boids() {
			trail := b.Trail()
			for i := 1; i < len(trail); i++ {
				rl.DrawLineV(
					rl.Vector2{X: float32(trail[i-1].X), Y: float32(trail[i-1].Y)},
					rl.Vector2{X: float32(trail[i].X), Y: float32(trail[i].Y)},
					rl.LightGray,
				)
			}
			drawBoid(b)
		}

		if predator != nil {
			rl.DrawCircleLines(int32(predator.X), int32(predator.Y), 8, rl.Red)
		}
		if attractor != nil {
			rl.DrawCircleLines(int32(attractor.X), int32(attractor.Y), 8, rl.Green)
		}

		// Control panel
		panelX := float32(worldW + 10)
		panelY := float32(10)
		rl.DrawRectangle(int32(worldW), 0, panelWidth, int32(cfg.Screen.Height), rl.Color{R: 245, G: 245, B: 245, A: 255})
		rl.DrawText("Flock Weights", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		weights.SeparationWeight = slider(panelX, &panelY, "Separation", weights.SeparationWeight)
		weights.AlignmentWeight = slider(panelX, &panelY, "Alignment", weights.AlignmentWeight)
		weights.CohesionWeight = slider(panelX, &panelY, "Cohesion", weights.CohesionWeight)
		if weights != birds.Config() {
			birds.SetConfig(weights)
			weights = birds.Config()
		}

		rl.DrawText(fmt.Sprintf("Boids: %d", len(birds.Boids())), int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText("LMB: attract  RMB: scatter", int32(panelX), int32(panelY)+22, 14, rl.Gray)

		rl.DrawFPS(10, 10)
		rl.EndDrawing()
	}
}

// slider draws a labeled weight slider and advances the panel cursor.
func slider(x float32, y *float32, label string, value float64) float64 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 80, Height: 20},
		"0", "4",
		float32(value), 0, 4,
	)
	rl.DrawText(fmt.Sprintf("%.2f", v), int32(x+panelWidth-60), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return float64(v)
}

// drawBoid renders a boid as a triangle pointing along its velocity,
// tinted by its eight-way facing bucket.
func drawBoid(b *flock.Boid) {
	angle := math.Atan2(b.VY, b.VX)
	const size = 6.0
	tip := rl.Vector2{
		X: float32(b.X + math.Cos(angle)*size),
		Y: float32(b.Y + math.Sin(angle)*size),
	}
	left := rl.Vector2{
		X: float32(b.X + math.Cos(angle+2.5)*size*0.7),
		Y: float32(b.Y + math.Sin(angle+2.5)*size*0.7),
	}
	right := rl.Vector2{
		X: float32(b.X + math.Cos(angle-2.5)*size*0.7),
		Y: float32(b.Y + math.Sin(angle-2.5)*size*0.7),
	}
	// DrawTriangle requires counter-clockwise winding.
	rl.DrawTriangle(tip, right, left, facingColors[b.Facing()%8])
}
