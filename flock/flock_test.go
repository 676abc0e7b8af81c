package flock

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		width, height float64
	}{
		{"zero population", 0, 100, 100},
		{"negative population", -5, 100, 100},
		{"zero width", 10, 0, 100},
		{"negative height", 10, 100, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.count, tc.width, tc.height, 1, Config{}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSpeedClamp(t *testing.T) {
	f := MustNew(30, 200, 200, 42, Config{MaxSpeed: 3})
	maxSpeed := f.Config().MaxSpeed

	predator := &Point{X: 100, Y: 100}
	attractor := &Point{X: 50, Y: 50}

	for i := 0; i < 200; i++ {
		f.Update(predator, attractor)
		for j, b := range f.Boids() {
			if s := b.Speed(); s > maxSpeed+1e-9 {
				t.Fatalf("update %d: boid %d speed %v exceeds max %v", i, j, s, maxSpeed)
			}
		}
	}
}

func TestEdgeWrap(t *testing.T) {
	f := MustNew(1, 100, 80, 1, Config{})
	b := f.Boids()[0]

	// Drive the boid over the right and bottom edges.
	b.X, b.Y = 99.5, 79.5
	b.VX, b.VY = 3, 3

	f.Update(nil, nil)

	if b.X < 0 || b.X >= 100 || b.Y < 0 || b.Y >= 80 {
		t.Fatalf("boid left world after wrap: (%v, %v)", b.X, b.Y)
	}
	if b.X > 50 || b.Y > 40 {
		t.Errorf("boid should re-enter near the opposite edge, got (%v, %v)", b.X, b.Y)
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a := MustNew(20, 200, 200, 7, Config{})
	b := MustNew(20, 200, 200, 7, Config{})

	for i := 0; i < 50; i++ {
		a.Update(nil, nil)
		b.Update(nil, nil)
	}

	for i := range a.Boids() {
		ba, bb := a.Boids()[i], b.Boids()[i]
		if ba.X != bb.X || ba.Y != bb.Y || ba.VX != bb.VX || ba.VY != bb.VY {
			t.Fatalf("boid %d diverged between identically seeded flocks", i)
		}
	}
}

func TestFlockCoheres(t *testing.T) {
	f := MustNew(20, 200, 200, 42, Config{})

	variance := func() float64 {
		xs := make([]float64, 0, 20)
		ys := make([]float64, 0, 20)
		for _, b := range f.Boids() {
			xs = append(xs, b.X)
			ys = append(ys, b.Y)
		}
		return stat.Variance(xs, nil) + stat.Variance(ys, nil)
	}

	initial := variance()
	for i := 0; i < 300; i++ {
		f.Update(nil, nil)
	}
	final := variance()

	if final >= initial {
		t.Errorf("positional variance did not decrease: initial %v, final %v", initial, final)
	}
	for j, b := range f.Boids() {
		if s := b.Speed(); s > f.Config().MaxSpeed+1e-9 {
			t.Errorf("boid %d speed %v exceeds max after cohesion run", j, s)
		}
	}
}

func TestPredatorRepels(t *testing.T) {
	f := MustNew(1, 400, 400, 3, Config{})
	b := f.Boids()[0]
	b.X, b.Y = 200, 200
	b.VX, b.VY = 0, 0

	predator := &Point{X: 190, Y: 200}
	for i := 0; i < 60; i++ {
		f.Update(predator, nil)
	}

	dist := math.Hypot(b.X-predator.X, b.Y-predator.Y)
	if dist <= 10 {
		t.Errorf("boid did not flee predator: distance %v", dist)
	}
	if b.X <= 200 {
		t.Errorf("boid fled the wrong way: x=%v", b.X)
	}
}

func TestAttractorPulls(t *testing.T) {
	f := MustNew(1, 400, 400, 3, Config{})
	b := f.Boids()[0]
	b.X, b.Y = 200, 200
	b.VX, b.VY = 0, 0

	attractor := &Point{X: 250, Y: 200}
	start := math.Hypot(b.X-attractor.X, b.Y-attractor.Y)
	closest := start
	for i := 0; i < 60; i++ {
		f.Update(nil, attractor)
		if d := math.Hypot(b.X-attractor.X, b.Y-attractor.Y); d < closest {
			closest = d
		}
	}

	if closest >= start {
		t.Errorf("boid never approached attractor: start %v, closest %v", start, closest)
	}
}

func TestFacing(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy float64
		want   Facing
	}{
		{"east", 1, 0, East},
		{"north", 0, -1, North},
		{"west", -1, 0, West},
		{"south", 0, 1, South},
		{"north-east", 1, -1, NorthEast},
		{"north-west", -1, -1, NorthWest},
		{"south-west", -1, 1, SouthWest},
		{"south-east", 1, 1, SouthEast},
		{"stationary", 0, 0, East},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Boid{VX: tc.vx, VY: tc.vy}
			if got := b.Facing(); got != tc.want {
				t.Errorf("Facing(%v, %v) = %v, want %v", tc.vx, tc.vy, got, tc.want)
			}
		})
	}
}

func TestTrailLength(t *testing.T) {
	f := MustNew(3, 200, 200, 9, Config{MaxTrailLength: 8})

	for i := 0; i < 30; i++ {
		f.Update(nil, nil)
	}
	for j, b := range f.Boids() {
		if got := len(b.Trail()); got != 8 {
			t.Errorf("boid %d trail length = %d, want 8", j, got)
		}
	}
}

func TestSingleBoidHasNoNeighbourForces(t *testing.T) {
	f := MustNew(1, 200, 200, 1, Config{})
	b := f.Boids()[0]
	vx, vy := b.VX, b.VY

	f.Update(nil, nil)

	// With no flockmates the three rules contribute nothing.
	if b.VX != vx || b.VY != vy {
		t.Errorf("lone boid velocity changed from (%v, %v) to (%v, %v)", vx, vy, b.VX, b.VY)
	}
}
