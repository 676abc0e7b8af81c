// Package flock implements a boids flocking engine: steerable agents
// under the three Reynolds rules (separation, alignment, cohesion)
// plus optional predator and attractor influences, in a wrap-around
// world.
package flock

import (
	"fmt"
	"math"
	"math/rand"
)

// Influence radii for the optional global predator and attractor.
const (
	fleeRadius = 120.0
	seekRadius = 160.0

	fleeWeight = 2.0
	seekWeight = 1.5
)

// Point is a world position fed in by the caller (pointer input mapped
// to engine coordinates).
type Point struct {
	X, Y float64
}

// Boid is a single flock agent.
type Boid struct {
	X, Y   float64
	VX, VY float64

	// Force accumulator, zeroed at the end of every update.
	ax, ay float64

	trail []Point
}

// Velocity returns the boid's current velocity.
func (b *Boid) Velocity() (float64, float64) { return b.VX, b.VY }

// Speed returns the boid's current speed.
func (b *Boid) Speed() float64 { return math.Hypot(b.VX, b.VY) }

// Facing buckets the velocity angle into one of eight compass
// directions, for rendering boids as directional glyphs.
type Facing int

// Compass buckets, counter-clockwise from +X.
const (
	East Facing = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

// Facing returns the 8-way compass bucket of the velocity direction.
// A stationary boid faces East.
func (b *Boid) Facing() Facing {
	angle := math.Atan2(-b.VY, b.VX) // screen Y grows downward
	if angle < 0 {
		angle += 2 * math.Pi
	}
	bucket := int(math.Floor(angle/(math.Pi/4) + 0.5))
	return Facing(bucket % 8)
}

// Trail returns the boid's recent positions, oldest first. Empty when
// the flock was configured without trails.
func (b *Boid) Trail() []Point { return b.trail }

// Config holds the behavior weights for a Flock. Zero values select
// defaults.
type Config struct {
	SeparationWeight float64 // default 1.5
	AlignmentWeight  float64 // default 1.0
	CohesionWeight   float64 // default 1.0
	PerceptionRadius float64 // alignment/cohesion neighbourhood, default 50
	SeparationRadius float64 // personal space, default 25
	MaxSpeed         float64 // speed clamp, default 3
	MaxForce         float64 // steering clamp, default 0.05
	MaxTrailLength   int     // positions retained per boid, 0 disables
}

func (c *Config) applyDefaults() {
	if c.SeparationWeight == 0 {
		c.SeparationWeight = 1.5
	}
	if c.AlignmentWeight == 0 {
		c.AlignmentWeight = 1.0
	}
	if c.CohesionWeight == 0 {
		c.CohesionWeight = 1.0
	}
	if c.PerceptionRadius == 0 {
		c.PerceptionRadius = 50
	}
	if c.SeparationRadius == 0 {
		c.SeparationRadius = 25
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = 3
	}
	if c.MaxForce == 0 {
		c.MaxForce = 0.05
	}
}

// Flock owns a fixed population of boids. Neighbour search is naive
// O(n²) per update, sized for decorative populations.
type Flock struct {
	cfg           Config
	width, height float64
	boids         []*Boid
	rng           *rand.Rand
}

// New creates a flock of count boids at random positions and headings
// inside a width x height world.
func New(count int, width, height float64, seed int64, cfg Config) (*Flock, error) {
	if count <= 0 {
		return nil, fmt.Errorf("flock: population must be positive, got %d", count)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("flock: world size must be positive, got %vx%v", width, height)
	}
	cfg.applyDefaults()

	f := &Flock{
		cfg:    cfg,
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(seed)),
	}
	f.AddBoids(count)
	return f, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(count int, width, height float64, seed int64, cfg Config) *Flock {
	f, err := New(count, width, height, seed, cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// AddBoids grows the population by n boids at random positions.
func (f *Flock) AddBoids(n int) {
	for i := 0; i < n; i++ {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := f.cfg.MaxSpeed * (0.5 + 0.5*f.rng.Float64())
		f.boids = append(f.boids, &Boid{
			X:  f.rng.Float64() * f.width,
			Y:  f.rng.Float64() * f.height,
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,
		})
	}
}

// Boids returns the live population for rendering.
func (f *Flock) Boids() []*Boid { return f.boids }

// Config returns the flock's effective behavior configuration.
func (f *Flock) Config() Config { return f.cfg }

// SetConfig replaces the behavior configuration, filling zero fields
// with defaults. Takes effect on the next Update.
func (f *Flock) SetConfig(cfg Config) {
	cfg.applyDefaults()
	f.cfg = cfg
}

// Size returns the world dimensions.
func (f *Flock) Size() (float64, float64) { return f.width, f.height }

// Clear drops the whole population.
func (f *Flock) Clear() { f.boids = nil }

// Update advances the flock one frame. Predator and attractor are
// optional global influences; nil disables them. All steering is
// computed against the pre-update state, then integrated.
func (f *Flock) Update(predator, attractor *Point) {
	for _, b := range f.boids {
		sx, sy := f.separation(b)
		alx, aly := f.alignment(b)
		cx, cy := f.cohesion(b)

		b.ax += sx*f.cfg.SeparationWeight + alx*f.cfg.AlignmentWeight + cx*f.cfg.CohesionWeight
		b.ay += sy*f.cfg.SeparationWeight + aly*f.cfg.AlignmentWeight + cy*f.cfg.CohesionWeight

		if predator != nil {
			fx, fy := f.flee(b, *predator)
			b.ax += fx * fleeWeight
			b.ay += fy * fleeWeight
		}
		if attractor != nil {
			sx, sy := f.seekWithin(b, *attractor, seekRadius)
			b.ax += sx * seekWeight
			b.ay += sy * seekWeight
		}
	}

	for _, b := range f.boids {
		b.VX += b.ax
		b.VY += b.ay
		f.clampSpeed(b)
		b.X += b.VX
		b.Y += b.VY
		f.wrap(b)
		b.ax, b.ay = 0, 0

		if f.cfg.MaxTrailLength > 0 {
			b.trail = append(b.trail, Point{b.X, b.Y})
			if len(b.trail) > f.cfg.MaxTrailLength {
				b.trail = b.trail[1:]
			}
		}
	}
}

// separation steers away from flockmates inside SeparationRadius,
// weighting each neighbour by the inverse square of its distance.
func (f *Flock) separation(b *Boid) (float64, float64) {
	var sumX, sumY float64
	count := 0
	r2 := f.cfg.SeparationRadius * f.cfg.SeparationRadius

	for _, other := range f.boids {
		if other == b {
			continue
		}
		dx := b.X - other.X
		dy := b.Y - other.Y
		d2 := dx*dx + dy*dy
		if d2 == 0 || d2 > r2 {
			continue
		}
		sumX += dx / d2
		sumY += dy / d2
		count++
	}
	if count == 0 {
		return 0, 0
	}
	sumX /= float64(count)
	sumY /= float64(count)
	return f.steerToward(b, sumX, sumY)
}

// alignment steers toward the average velocity of flockmates inside
// PerceptionRadius.
func (f *Flock) alignment(b *Boid) (float64, float64) {
	var sumX, sumY float64
	count := 0
	r2 := f.cfg.PerceptionRadius * f.cfg.PerceptionRadius

	for _, other := range f.boids {
		if other == b {
			continue
		}
		dx := b.X - other.X
		dy := b.Y - other.Y
		if dx*dx+dy*dy > r2 {
			continue
		}
		sumX += other.VX
		sumY += other.VY
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return f.steerToward(b, sumX/float64(count), sumY/float64(count))
}

// cohesion seeks toward the average position of flockmates inside
// PerceptionRadius.
func (f *Flock) cohesion(b *Boid) (float64, float64) {
	var sumX, sumY float64
	count := 0
	r2 := f.cfg.PerceptionRadius * f.cfg.PerceptionRadius

	for _, other := range f.boids {
		if other == b {
			continue
		}
		dx := b.X - other.X
		dy := b.Y - other.Y
		if dx*dx+dy*dy > r2 {
			continue
		}
		sumX += other.X
		sumY += other.Y
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return f.seek(b, sumX/float64(count), sumY/float64(count))
}

// flee steers directly away from a threat inside fleeRadius.
func (f *Flock) flee(b *Boid, p Point) (float64, float64) {
	dx := b.X - p.X
	dy := b.Y - p.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || dist > fleeRadius {
		return 0, 0
	}
	return f.steerToward(b, dx, dy)
}

// seekWithin is seek that only engages inside the given radius.
func (f *Flock) seekWithin(b *Boid, p Point, radius float64) (float64, float64) {
	dx := p.X - b.X
	dy := p.Y - b.Y
	if d := math.Hypot(dx, dy); d == 0 || d > radius {
		return 0, 0
	}
	return f.seek(b, p.X, p.Y)
}

// seek produces steering toward a target position: desired velocity is
// the unit direction scaled to MaxSpeed, steering is desired minus
// current velocity, clamped to MaxForce.
func (f *Flock) seek(b *Boid, tx, ty float64) (float64, float64) {
	dx := tx - b.X
	dy := ty - b.Y
	return f.steerToward(b, dx, dy)
}

// steerToward turns a desired direction into a clamped steering force.
// A zero direction contributes nothing.
func (f *Flock) steerToward(b *Boid, dx, dy float64) (float64, float64) {
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return 0, 0
	}
	sx := dx/mag*f.cfg.MaxSpeed - b.VX
	sy := dy/mag*f.cfg.MaxSpeed - b.VY

	if m := math.Hypot(sx, sy); m > f.cfg.MaxForce {
		scale := f.cfg.MaxForce / m
		sx *= scale
		sy *= scale
	}
	return sx, sy
}

func (f *Flock) clampSpeed(b *Boid) {
	v2 := b.VX*b.VX + b.VY*b.VY
	max2 := f.cfg.MaxSpeed * f.cfg.MaxSpeed
	if v2 > max2 {
		scale := f.cfg.MaxSpeed / math.Sqrt(v2)
		b.VX *= scale
		b.VY *= scale
	}
}

// wrap teleports a boid exiting one world edge to the opposite side.
func (f *Flock) wrap(b *Boid) {
	if b.X < 0 {
		b.X += f.width
	} else if b.X >= f.width {
		b.X -= f.width
	}
	if b.Y < 0 {
		b.Y += f.height
	} else if b.Y >= f.height {
		b.Y -= f.height
	}
}
