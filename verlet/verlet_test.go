package verlet

import (
	"math"
	"testing"
)

func TestPinnedParticleNeverMoves(t *testing.T) {
	s := NewSystem(Params{Gravity: 0.5, Friction: 0.98, Bounce: 0.6})
	s.SetBounds(0, 0, 100, 100)

	pin := s.AddParticle(50, 20, true)
	free := s.AddParticle(50, 30, false)
	s.AddConstraint(pin, free, 1)

	s.ApplyForce(3, -2)
	s.ApplyRadialForce(50, 20, 40, 10)

	for i := 0; i < 200; i++ {
		s.Step()
	}

	if pin.X != 50 || pin.Y != 20 {
		t.Errorf("pinned particle moved to (%v, %v), want (50, 20)", pin.X, pin.Y)
	}
}

func TestConstraintConvergence(t *testing.T) {
	s := NewSystem(Params{Friction: 0.98})

	a := s.AddParticle(0, 0, false)
	b := s.AddParticle(20, 0, false)
	c := s.AddConstraint(a, b, 1)

	// Displace one endpoint and let relaxation pull it back.
	b.X += 15
	b.PrevX = b.X

	for i := 0; i < 300; i++ {
		s.Step()
	}

	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if math.Abs(dist-c.RestLen) > 0.01 {
		t.Errorf("constraint distance = %v, want %v within 0.01", dist, c.RestLen)
	}
}

func TestCoincidentConstraintIsNoOp(t *testing.T) {
	s := NewSystem(Params{})
	a := s.AddParticle(10, 10, false)
	b := s.AddParticle(10, 10, false)
	s.AddConstraint(a, b, 1)

	for i := 0; i < 10; i++ {
		s.Step()
	}

	for _, p := range []*Particle{a, b} {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("coincident constraint produced NaN position (%v, %v)", p.X, p.Y)
		}
	}
}

func TestBoundaryCollision(t *testing.T) {
	s := NewSystem(Params{Gravity: 0.5, Bounce: 0.6})
	s.SetBounds(0, 0, 100, 100)
	p := s.AddParticle(50, 95, false)

	for i := 0; i < 200; i++ {
		s.Step()
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Fatalf("step %d: particle escaped bounds at (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestChainHangsBelowPin(t *testing.T) {
	s := NewSystem(Params{Gravity: 0.5, Friction: 0.98, Bounce: 0.6})
	s.SetBounds(0, 0, 100, 100)

	chain := s.NewChain(50, 10, 5, 8, true)

	for i := 0; i < 500; i++ {
		s.Step()
	}

	for i, p := range chain {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("segment %d position is NaN", i)
		}
	}

	// Gravity points in +Y, so every segment settles at or below its
	// parent.
	for i := 1; i < len(chain); i++ {
		if chain[i].Y < chain[i-1].Y-0.5 {
			t.Errorf("segment %d (y=%v) sits above segment %d (y=%v)", i, chain[i].Y, i-1, chain[i-1].Y)
		}
	}

	if head := chain[0]; head.X != 50 || head.Y != 10 {
		t.Errorf("pinned head moved to (%v, %v)", head.X, head.Y)
	}
}

func TestRadialForcePushesAway(t *testing.T) {
	s := NewSystem(Params{Friction: 1})
	p := s.AddParticle(60, 50, false)
	far := s.AddParticle(500, 500, false)

	s.ApplyRadialForce(50, 50, 40, 5)
	s.Step()

	if p.X <= 60 {
		t.Errorf("particle inside radius did not move away from center: x=%v", p.X)
	}
	if far.X != 500 || far.Y != 500 {
		t.Errorf("particle outside radius moved to (%v, %v)", far.X, far.Y)
	}
}

func TestForceAppliesOnce(t *testing.T) {
	s := NewSystem(Params{Friction: 1})
	p := s.AddParticle(0, 0, false)

	s.ApplyForce(2, 0)
	s.Step()
	afterFirst := p.X

	// With friction 1 and no new force, velocity should coast, not grow.
	s.Step()
	v1 := afterFirst - 0
	v2 := p.X - afterFirst
	if math.Abs(v2-v1) > 1e-9 {
		t.Errorf("force persisted across frames: dv1=%v dv2=%v", v1, v2)
	}
}

func TestClothConstruction(t *testing.T) {
	s := NewSystem(Params{})
	grid := s.NewCloth(0, 0, 4, 3, 10, true)

	if len(grid) != 12 {
		t.Fatalf("grid size = %d, want 12", len(grid))
	}
	// Structural constraints: 3*3 horizontal + 4*2 vertical.
	if got, want := len(s.Constraints()), 17; got != want {
		t.Errorf("constraint count = %d, want %d", got, want)
	}
	for c := 0; c < 4; c++ {
		if !grid[c].Pinned {
			t.Errorf("top-row particle %d not pinned", c)
		}
	}
}

func TestClear(t *testing.T) {
	s := NewSystem(Params{})
	s.NewChain(0, 0, 3, 5, true)
	s.Clear()

	if len(s.Particles()) != 0 || len(s.Constraints()) != 0 {
		t.Error("Clear left particles or constraints behind")
	}
}
