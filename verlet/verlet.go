// Package verlet implements a position-based particle dynamics engine
// using Verlet integration. Velocity is implicit in the difference
// between current and previous position, which keeps stiff constraint
// systems stable at low relaxation iteration counts.
package verlet

import "math"

// Particle is a point mass tracked by current and previous position.
// Tag is an opaque payload (e.g. a glyph for rendering); the engine
// stores it but never interprets it.
type Particle struct {
	X, Y         float64
	PrevX, PrevY float64
	Mass         float64
	Pinned       bool
	Tag          any

	// Pending force for the next integration, cleared afterwards.
	forceX, forceY float64
}

// Velocity returns the implicit per-step velocity.
func (p *Particle) Velocity() (float64, float64) {
	return p.X - p.PrevX, p.Y - p.PrevY
}

// Constraint keeps two particles at a fixed rest distance.
type Constraint struct {
	A, B      *Particle
	RestLen   float64
	Stiffness float64
}

// Params configures a System. Zero values select engine defaults.
type Params struct {
	Gravity    float64 // applied in +Y every step
	Friction   float64 // velocity retention per step, default 0.99
	Bounce     float64 // boundary restitution, default 0.9
	Iterations int     // constraint relaxation passes, default 3
}

// System owns a collection of particles and distance constraints and
// advances them one frame at a time. It holds no external resources;
// disposal is dropping the reference.
type System struct {
	Gravity    float64
	Friction   float64
	Bounce     float64
	Iterations int

	particles   []*Particle
	constraints []*Constraint

	hasBounds              bool
	minX, minY, maxX, maxY float64
}

// NewSystem creates an empty particle system.
func NewSystem(p Params) *System {
	if p.Friction == 0 {
		p.Friction = 0.99
	}
	if p.Bounce == 0 {
		p.Bounce = 0.9
	}
	if p.Iterations < 1 {
		p.Iterations = 3
	}
	return &System{
		Gravity:    p.Gravity,
		Friction:   p.Friction,
		Bounce:     p.Bounce,
		Iterations: p.Iterations,
	}
}

// AddParticle adds a particle at rest at (x, y) and returns it.
func (s *System) AddParticle(x, y float64, pinned bool) *Particle {
	p := &Particle{X: x, Y: y, PrevX: x, PrevY: y, Mass: 1, Pinned: pinned}
	s.particles = append(s.particles, p)
	return p
}

// AddConstraint links two particles at their current distance.
// Stiffness outside (0, 1] is replaced with 1.
func (s *System) AddConstraint(a, b *Particle, stiffness float64) *Constraint {
	if stiffness <= 0 || stiffness > 1 {
		stiffness = 1
	}
	c := &Constraint{
		A:         a,
		B:         b,
		RestLen:   math.Hypot(b.X-a.X, b.Y-a.Y),
		Stiffness: stiffness,
	}
	s.constraints = append(s.constraints, c)
	return c
}

// SetBounds enables rectangular boundary collision.
func (s *System) SetBounds(minX, minY, maxX, maxY float64) {
	s.hasBounds = true
	s.minX, s.minY, s.maxX, s.maxY = minX, minY, maxX, maxY
}

// ApplyForce queues a force on every unpinned particle for the next
// integration only.
func (s *System) ApplyForce(fx, fy float64) {
	for _, p := range s.particles {
		if p.Pinned {
			continue
		}
		p.forceX += fx
		p.forceY += fy
	}
}

// ApplyRadialForce pushes unpinned particles within radius of (x, y)
// away from it, weighted by 1 - dist/radius.
func (s *System) ApplyRadialForce(x, y, radius, strength float64) {
	if radius <= 0 {
		return
	}
	for _, p := range s.particles {
		if p.Pinned {
			continue
		}
		dx := p.X - x
		dy := p.Y - y
		dist := math.Hypot(dx, dy)
		if dist >= radius || dist == 0 {
			continue
		}
		w := (1 - dist/radius) * strength / dist
		p.forceX += dx * w
		p.forceY += dy * w
	}
}

// Step advances the system one frame: integrate, relax constraints,
// collide with bounds.
func (s *System) Step() {
	s.integrate()
	for i := 0; i < s.Iterations; i++ {
		for _, c := range s.constraints {
			c.solve()
		}
	}
	if s.hasBounds {
		s.collideBounds()
	}
}

func (s *System) integrate() {
	for _, p := range s.particles {
		if p.Pinned {
			p.forceX, p.forceY = 0, 0
			continue
		}
		vx := (p.X - p.PrevX) * s.Friction
		vy := (p.Y - p.PrevY) * s.Friction

		p.PrevX, p.PrevY = p.X, p.Y
		p.X += vx + p.forceX/p.Mass
		p.Y += vy + p.forceY/p.Mass + s.Gravity
		p.forceX, p.forceY = 0, 0
	}
}

// solve moves both unpinned endpoints symmetrically toward the rest
// length, scaled by stiffness. A pinned endpoint absorbs nothing; the
// full correction goes to the other end. Coincident endpoints are a
// no-op this pass.
func (c *Constraint) solve() {
	dx := c.B.X - c.A.X
	dy := c.B.Y - c.A.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	diff := (c.RestLen - dist) / dist * c.Stiffness
	ox := dx * diff * 0.5
	oy := dy * diff * 0.5

	switch {
	case c.A.Pinned && c.B.Pinned:
	case c.A.Pinned:
		c.B.X += 2 * ox
		c.B.Y += 2 * oy
	case c.B.Pinned:
		c.A.X -= 2 * ox
		c.A.Y -= 2 * oy
	default:
		c.A.X -= ox
		c.A.Y -= oy
		c.B.X += ox
		c.B.Y += oy
	}
}

func (s *System) collideBounds() {
	for _, p := range s.particles {
		if p.Pinned {
			continue
		}
		vx := p.X - p.PrevX
		vy := p.Y - p.PrevY

		if p.X < s.minX {
			p.X = s.minX
			p.PrevX = p.X + vx*s.Bounce
		} else if p.X > s.maxX {
			p.X = s.maxX
			p.PrevX = p.X + vx*s.Bounce
		}
		if p.Y < s.minY {
			p.Y = s.minY
			p.PrevY = p.Y + vy*s.Bounce
		} else if p.Y > s.maxY {
			p.Y = s.maxY
			p.PrevY = p.Y + vy*s.Bounce
		}
	}
}

// Particles returns the live particle list for rendering.
func (s *System) Particles() []*Particle { return s.particles }

// Constraints returns the live constraint list for rendering.
func (s *System) Constraints() []*Constraint { return s.constraints }

// Clear drops all particles and constraints.
func (s *System) Clear() {
	s.particles = nil
	s.constraints = nil
}
