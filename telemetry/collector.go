package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ravaan/glyphsim/flock"
	"github.com/ravaan/glyphsim/fluid"
	"github.com/ravaan/glyphsim/verlet"
)

// Collector samples engine state once per tick and produces WindowStats
// at window boundaries. Engines are observed read-only; a nil engine is
// simply skipped, so one collector serves any subset of engines.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Sampled at window end rather than accumulated - these are
	// gauges, not counters.
	lastFluid  *fluid.Grid
	lastFlock  *flock.Flock
	lastVerlet *verlet.System
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: simulation seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Observe registers the engines whose state the next Flush reads.
// Call once per tick, after stepping.
func (c *Collector) Observe(g *fluid.Grid, f *flock.Flock, v *verlet.System) {
	c.lastFluid = g
	c.lastFlock = f
	c.lastVerlet = v
}

// ShouldFlush reports whether enough ticks have passed to close the
// current window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces WindowStats for the closing window and starts the
// next one.
func (c *Collector) Flush(currentTick int64) WindowStats {
	w := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
	}

	if c.lastFluid != nil {
		w.FluidTotalMass, w.FluidMaxCell, w.FluidNonFinite = ComputeFieldStats(c.lastFluid.Density())
	}
	if c.lastFlock != nil {
		w.FlockMeanSpeed, w.FlockMaxSpeed, w.FlockPosStdDev = flockStats(c.lastFlock)
	}
	if c.lastVerlet != nil {
		w.VerletMeanConstraintErr, w.VerletMaxConstraintErr, w.VerletNonFinite = verletStats(c.lastVerlet)
	}

	c.windowStartTick = currentTick
	return w
}

func flockStats(f *flock.Flock) (meanSpeed, maxSpeed, posStdDev float64) {
	boids := f.Boids()
	if len(boids) == 0 {
		return 0, 0, 0
	}

	speeds := make([]float64, 0, len(boids))
	xs := make([]float64, 0, len(boids))
	ys := make([]float64, 0, len(boids))
	for _, b := range boids {
		s := b.Speed()
		speeds = append(speeds, s)
		if s > maxSpeed {
			maxSpeed = s
		}
		xs = append(xs, b.X)
		ys = append(ys, b.Y)
	}

	meanSpeed = stat.Mean(speeds, nil)
	posStdDev = math.Sqrt(stat.Variance(xs, nil) + stat.Variance(ys, nil))
	if math.IsNaN(posStdDev) {
		posStdDev = 0 // single boid
	}
	return meanSpeed, maxSpeed, posStdDev
}

func verletStats(s *verlet.System) (meanErr, maxErr float64, nonFinite int) {
	for _, p := range s.Particles() {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			nonFinite++
		}
	}

	constraints := s.Constraints()
	if len(constraints) == 0 {
		return 0, 0, nonFinite
	}
	var sum float64
	for _, c := range constraints {
		dist := math.Hypot(c.B.X-c.A.X, c.B.Y-c.A.Y)
		err := math.Abs(dist - c.RestLen)
		sum += err
		if err > maxErr {
			maxErr = err
		}
	}
	return sum / float64(len(constraints)), maxErr, nonFinite
}
