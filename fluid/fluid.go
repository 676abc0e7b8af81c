// Package fluid implements Jos Stam's stable-fluids solver on a fixed
// N x N Eulerian grid: implicit Gauss-Seidel diffusion, projection to a
// divergence-free velocity field, and semi-Lagrangian advection.
package fluid

import "fmt"

// gaussSeidelIters is fixed at 4 regardless of grid size. The visible
// diffusion behavior depends on this count; changing it changes the
// output, not just its accuracy.
const gaussSeidelIters = 4

// Vector is a 2D velocity sample.
type Vector struct {
	X, Y float64
}

// Grid holds the solver state: a scalar density field advected by a
// velocity field. All fields are flat arrays of length N*N indexed
// x + y*N. The grid is allocated once at construction; Clear zeroes it
// in place.
type Grid struct {
	n    int
	dt   float64
	diff float64
	visc float64

	density     []float64
	densityPrev []float64
	vx, vy      []float64
	vxPrev      []float64
	vyPrev      []float64
}

// New creates an n x n grid. n must be at least 3 (one interior cell
// plus boundary), dt must be positive.
func New(n int, dt, diffusion, viscosity float64) (*Grid, error) {
	if n < 3 {
		return nil, fmt.Errorf("fluid: grid resolution must be >= 3, got %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("fluid: dt must be positive, got %v", dt)
	}
	size := n * n
	return &Grid{
		n:           n,
		dt:          dt,
		diff:        diffusion,
		visc:        viscosity,
		density:     make([]float64, size),
		densityPrev: make([]float64, size),
		vx:          make([]float64, size),
		vy:          make([]float64, size),
		vxPrev:      make([]float64, size),
		vyPrev:      make([]float64, size),
	}, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(n int, dt, diffusion, viscosity float64) *Grid {
	g, err := New(n, dt, diffusion, viscosity)
	if err != nil {
		panic(err)
	}
	return g
}

// N returns the grid resolution.
func (g *Grid) N() int { return g.n }

func (g *Grid) ix(x, y int) int { return x + y*g.n }

func (g *Grid) clampIndex(v int) int {
	if v < 0 {
		return 0
	}
	if v >= g.n {
		return g.n - 1
	}
	return v
}

// AddDensity accumulates density into the cell containing (x, y).
// Coordinates outside the grid are clamped.
func (g *Grid) AddDensity(x, y int, amount float64) {
	g.density[g.ix(g.clampIndex(x), g.clampIndex(y))] += amount
}

// AddVelocity accumulates velocity into the cell containing (x, y).
// Coordinates outside the grid are clamped.
func (g *Grid) AddVelocity(x, y int, dx, dy float64) {
	i := g.ix(g.clampIndex(x), g.clampIndex(y))
	g.vx[i] += dx
	g.vy[i] += dy
}

// Step advances the simulation one frame. The pass order is
// load-bearing for stability: diffuse velocity, project, self-advect
// velocity, project again, then diffuse and advect density.
func (g *Grid) Step() {
	g.diffuse(1, g.vxPrev, g.vx, g.visc)
	g.diffuse(2, g.vyPrev, g.vy, g.visc)

	g.project(g.vxPrev, g.vyPrev, g.vx, g.vy)

	g.advect(1, g.vx, g.vxPrev, g.vxPrev, g.vyPrev)
	g.advect(2, g.vy, g.vyPrev, g.vxPrev, g.vyPrev)

	g.project(g.vx, g.vy, g.vxPrev, g.vyPrev)

	g.diffuse(0, g.densityPrev, g.density, g.diff)
	g.advect(0, g.density, g.densityPrev, g.vx, g.vy)
}

// Density returns the density field, valid until the next Step or
// mutator call. Callers must treat it as read-only.
func (g *Grid) Density() []float64 { return g.density }

// DensityAt returns the density at a cell, clamping out-of-range
// coordinates.
func (g *Grid) DensityAt(x, y int) float64 {
	return g.density[g.ix(g.clampIndex(x), g.clampIndex(y))]
}

// VelocityAt returns the velocity at a cell, clamping out-of-range
// coordinates.
func (g *Grid) VelocityAt(x, y int) Vector {
	i := g.ix(g.clampIndex(x), g.clampIndex(y))
	return Vector{X: g.vx[i], Y: g.vy[i]}
}

// Clear zeroes all six fields in place without reallocation.
func (g *Grid) Clear() {
	for _, field := range [...][]float64{g.density, g.densityPrev, g.vx, g.vy, g.vxPrev, g.vyPrev} {
		for i := range field {
			field[i] = 0
		}
	}
}

// diffuse spreads x0 into x implicitly: each cell exchanges with its
// four neighbours through a Gauss-Seidel linear solve, which stays
// stable for any rate.
func (g *Grid) diffuse(b int, x, x0 []float64, rate float64) {
	a := g.dt * rate * float64(g.n-2) * float64(g.n-2)
	g.linSolve(b, x, x0, a, 1+6*a)
}

// linSolve runs gaussSeidelIters sweeps of Gauss-Seidel relaxation on
// x, reading latest neighbour values in place.
func (g *Grid) linSolve(b int, x, x0 []float64, a, c float64) {
	n := g.n
	cRecip := 1.0 / c
	for iter := 0; iter < gaussSeidelIters; iter++ {
		for j := 1; j < n-1; j++ {
			for i := 1; i < n-1; i++ {
				x[g.ix(i, j)] = (x0[g.ix(i, j)] +
					a*(x[g.ix(i+1, j)]+x[g.ix(i-1, j)]+x[g.ix(i, j+1)]+x[g.ix(i, j-1)])) * cRecip
			}
		}
		g.setBnd(b, x)
	}
}

// project forces the velocity field (velX, velY) to be divergence-free:
// compute divergence, solve the pressure Poisson equation, subtract the
// pressure gradient. p and div are scratch fields.
func (g *Grid) project(velX, velY, p, div []float64) {
	n := g.n
	h := 1.0 / float64(n)

	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			div[g.ix(i, j)] = -0.5 * h * (velX[g.ix(i+1, j)] - velX[g.ix(i-1, j)] +
				velY[g.ix(i, j+1)] - velY[g.ix(i, j-1)])
			p[g.ix(i, j)] = 0
		}
	}
	g.setBnd(0, div)
	g.setBnd(0, p)

	g.linSolve(0, p, div, 1, 6)

	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			velX[g.ix(i, j)] -= 0.5 * (p[g.ix(i+1, j)] - p[g.ix(i-1, j)]) / h
			velY[g.ix(i, j)] -= 0.5 * (p[g.ix(i, j+1)] - p[g.ix(i, j-1)]) / h
		}
	}
	g.setBnd(1, velX)
	g.setBnd(2, velY)
}

// advect traces each cell backward along the velocity field by
// dt*(N-2), clamps the source point to the valid interior range, and
// bilinearly interpolates from the previous field d0.
func (g *Grid) advect(b int, d, d0, velX, velY []float64) {
	n := g.n
	dt0 := g.dt * float64(n-2)

	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			x := float64(i) - dt0*velX[g.ix(i, j)]
			y := float64(j) - dt0*velY[g.ix(i, j)]

			if x < 0.5 {
				x = 0.5
			} else if x > float64(n)-1.5 {
				x = float64(n) - 1.5
			}
			if y < 0.5 {
				y = 0.5
			} else if y > float64(n)-1.5 {
				y = float64(n) - 1.5
			}

			i0 := int(x)
			i1 := i0 + 1
			j0 := int(y)
			j1 := j0 + 1

			s1 := x - float64(i0)
			s0 := 1 - s1
			t1 := y - float64(j0)
			t0 := 1 - t1

			d[g.ix(i, j)] = s0*(t0*d0[g.ix(i0, j0)]+t1*d0[g.ix(i0, j1)]) +
				s1*(t0*d0[g.ix(i1, j0)]+t1*d0[g.ix(i1, j1)])
		}
	}
	g.setBnd(b, d)
}

// setBnd rewrites the edge cells after every solve and advection pass:
// each edge cell mirrors its interior neighbour, negated for the
// velocity component perpendicular to that wall (b=1 left/right walls,
// b=2 top/bottom walls, b=0 unsigned). This enforces
// no-flow-through-walls. Corners average their two edge neighbours.
func (g *Grid) setBnd(b int, x []float64) {
	n := g.n

	for i := 1; i < n-1; i++ {
		if b == 2 {
			x[g.ix(i, 0)] = -x[g.ix(i, 1)]
			x[g.ix(i, n-1)] = -x[g.ix(i, n-2)]
		} else {
			x[g.ix(i, 0)] = x[g.ix(i, 1)]
			x[g.ix(i, n-1)] = x[g.ix(i, n-2)]
		}
	}
	for j := 1; j < n-1; j++ {
		if b == 1 {
			x[g.ix(0, j)] = -x[g.ix(1, j)]
			x[g.ix(n-1, j)] = -x[g.ix(n-2, j)]
		} else {
			x[g.ix(0, j)] = x[g.ix(1, j)]
			x[g.ix(n-1, j)] = x[g.ix(n-2, j)]
		}
	}

	x[g.ix(0, 0)] = 0.5 * (x[g.ix(1, 0)] + x[g.ix(0, 1)])
	x[g.ix(0, n-1)] = 0.5 * (x[g.ix(1, n-1)] + x[g.ix(0, n-2)])
	x[g.ix(n-1, 0)] = 0.5 * (x[g.ix(n-2, 0)] + x[g.ix(n-1, 1)])
	x[g.ix(n-1, n-1)] = 0.5 * (x[g.ix(n-2, n-1)] + x[g.ix(n-1, n-2)])
}
