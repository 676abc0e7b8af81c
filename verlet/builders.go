package verlet

// NewChain appends a vertical chain of segments+1 particles to the
// system, starting at (x, y) and spaced segLen apart. The first
// particle is pinned when pinHead is set. Returns the particles in
// order from the head.
func (s *System) NewChain(x, y float64, segments int, segLen float64, pinHead bool) []*Particle {
	if segments < 1 {
		segments = 1
	}

	chain := make([]*Particle, 0, segments+1)
	head := s.AddParticle(x, y, pinHead)
	chain = append(chain, head)

	prev := head
	for i := 1; i <= segments; i++ {
		p := s.AddParticle(x, y+float64(i)*segLen, false)
		s.AddConstraint(prev, p, 1)
		chain = append(chain, p)
		prev = p
	}
	return chain
}

// NewCloth appends a cols x rows grid of particles spaced apart by
// spacing, with structural constraints between horizontal and vertical
// neighbours. The top row is pinned when pinTop is set. Returns the
// grid in row-major order.
func (s *System) NewCloth(x, y float64, cols, rows int, spacing float64, pinTop bool) []*Particle {
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}

	grid := make([]*Particle, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pinned := pinTop && r == 0
			grid[r*cols+c] = s.AddParticle(x+float64(c)*spacing, y+float64(r)*spacing, pinned)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				s.AddConstraint(grid[r*cols+c-1], grid[r*cols+c], 1)
			}
			if r > 0 {
				s.AddConstraint(grid[(r-1)*cols+c], grid[r*cols+c], 1)
			}
		}
	}
	return grid
}
