// Package noise provides seedable simplex noise and fractal summation.
package noise

import "math"

// Skew factors for the 2D and 3D simplex grids.
var (
	f2 = 0.5 * (math.Sqrt(3) - 1)
	g2 = (3 - math.Sqrt(3)) / 6
)

const (
	f3 = 1.0 / 3.0
	g3 = 1.0 / 6.0
)

// grad3 holds the 12 gradient directions shared by 2D (first two
// components) and 3D evaluation.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Field is a deterministic simplex noise generator. Two fields seeded
// with the same value produce identical output; fields never share
// state, so independent instances are safe to use side by side.
type Field struct {
	perm      [512]int
	permMod12 [512]int
}

// NewField creates a noise field seeded with the given value.
func NewField(seed uint32) *Field {
	f := &Field{}
	f.Seed(seed)
	return f
}

// Seed reinitializes the permutation table from the given value using a
// linear-congruential shuffle. Calling Seed fully replaces prior state.
func (f *Field) Seed(seed uint32) {
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// LCG (Numerical Recipes constants) drives a Fisher-Yates shuffle.
	state := seed
	next := func() uint32 {
		state = state*1664525 + 1013904223
		return state
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := int(next() % uint32(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	for i := 0; i < 256; i++ {
		f.perm[i] = perm[i]
		f.perm[i+256] = perm[i]
		f.permMod12[i] = perm[i] % 12
		f.permMod12[i+256] = perm[i] % 12
	}
}

// Noise2D evaluates 2D simplex noise at (x, y). The result is in
// approximately [-1, 1].
func (f *Field) Noise2D(x, y float64) float64 {
	// Skew input space to determine the containing simplex cell.
	s := (x + y) * f2
	i := math.Floor(x + s)
	j := math.Floor(y + s)

	t := (i + j) * g2
	x0 := x - (i - t)
	y0 := y - (j - t)

	// Lower or upper triangle of the cell.
	var i1, j1 float64
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - i1 + g2
	y1 := y0 - j1 + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii := int(i) & 255
	jj := int(j) & 255
	gi0 := f.permMod12[ii+f.perm[jj]]
	gi1 := f.permMod12[ii+int(i1)+f.perm[jj+int(j1)]]
	gi2 := f.permMod12[ii+1+f.perm[jj+1]]

	var n0, n1, n2 float64
	if t0 := 0.5 - x0*x0 - y0*y0; t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * (grad3[gi0][0]*x0 + grad3[gi0][1]*y0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * (grad3[gi1][0]*x1 + grad3[gi1][1]*y1)
	}
	if t2 := 0.5 - x2*x2 - y2*y2; t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * (grad3[gi2][0]*x2 + grad3[gi2][1]*y2)
	}

	// 70 scales the corner sum to roughly [-1, 1].
	return 70 * (n0 + n1 + n2)
}

// Noise3D evaluates 3D simplex noise at (x, y, z). The result is in
// approximately [-1, 1].
func (f *Field) Noise3D(x, y, z float64) float64 {
	s := (x + y + z) * f3
	i := math.Floor(x + s)
	j := math.Floor(y + s)
	k := math.Floor(z + s)

	t := (i + j + k) * g3
	x0 := x - (i - t)
	y0 := y - (j - t)
	z0 := z - (k - t)

	// Rank the offsets to pick one of six tetrahedra.
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii := int(i) & 255
	jj := int(j) & 255
	kk := int(k) & 255
	gi0 := f.permMod12[ii+f.perm[jj+f.perm[kk]]]
	gi1 := f.permMod12[ii+i1+f.perm[jj+j1+f.perm[kk+k1]]]
	gi2 := f.permMod12[ii+i2+f.perm[jj+j2+f.perm[kk+k2]]]
	gi3 := f.permMod12[ii+1+f.perm[jj+1+f.perm[kk+1]]]

	var n0, n1, n2, n3 float64
	if t0 := 0.5 - x0*x0 - y0*y0 - z0*z0; t0 > 0 {
		t0 *= t0
		n0 = t0 * t0 * dot3(grad3[gi0], x0, y0, z0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1 - z1*z1; t1 > 0 {
		t1 *= t1
		n1 = t1 * t1 * dot3(grad3[gi1], x1, y1, z1)
	}
	if t2 := 0.5 - x2*x2 - y2*y2 - z2*z2; t2 > 0 {
		t2 *= t2
		n2 = t2 * t2 * dot3(grad3[gi2], x2, y2, z2)
	}
	if t3 := 0.5 - x3*x3 - y3*y3 - z3*z3; t3 > 0 {
		t3 *= t3
		n3 = t3 * t3 * dot3(grad3[gi3], x3, y3, z3)
	}

	return 32 * (n0 + n1 + n2 + n3)
}

// FBM sums octaves of Noise2D at geometrically increasing frequency and
// decreasing amplitude, normalized so the result stays within roughly
// [-1, 1].
func (f *Field) FBM(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	var sum, amp, total float64
	amp = 1
	freq := 1.0
	for o := 0; o < octaves; o++ {
		sum += amp * f.Noise2D(x*freq, y*freq)
		total += amp
		amp *= persistence
		freq *= lacunarity
	}
	return sum / total
}

// FlowAngle maps animated 3D noise at (x, y, t) to an angle in
// [0, 2*Pi], for driving flow-field style effects.
func (f *Field) FlowAngle(x, y, t float64) float64 {
	return (f.Noise3D(x, y, t) + 1) * math.Pi
}

func dot3(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}
