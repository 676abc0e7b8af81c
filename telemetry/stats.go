// Package telemetry collects windowed health statistics from running
// engine instances and writes them to structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated engine statistics for one time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Fluid field health
	FluidTotalMass float64 `csv:"fluid_total_mass"`
	FluidMaxCell   float64 `csv:"fluid_max_cell"`
	FluidNonFinite int     `csv:"fluid_non_finite"`

	// Flock health
	FlockMeanSpeed float64 `csv:"flock_mean_speed"`
	FlockMaxSpeed  float64 `csv:"flock_max_speed"`
	FlockPosStdDev float64 `csv:"flock_pos_stddev"`

	// Verlet health
	VerletMeanConstraintErr float64 `csv:"verlet_constraint_err"`
	VerletMaxConstraintErr  float64 `csv:"verlet_constraint_err_max"`
	VerletNonFinite         int     `csv:"verlet_non_finite"`
}

// LogStats emits the window to slog.
func (w WindowStats) LogStats() {
	slog.Info("window stats",
		"window_end", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"fluid_total_mass", w.FluidTotalMass,
		"fluid_max_cell", w.FluidMaxCell,
		"fluid_non_finite", w.FluidNonFinite,
		"flock_mean_speed", w.FlockMeanSpeed,
		"flock_pos_stddev", w.FlockPosStdDev,
		"verlet_constraint_err", w.VerletMeanConstraintErr,
		"verlet_non_finite", w.VerletNonFinite,
	)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats scans a scalar field and returns its total, its
// maximum cell value, and the number of non-finite cells.
func ComputeFieldStats(field []float64) (total, maxCell float64, nonFinite int) {
	for _, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			nonFinite++
			continue
		}
		total += v
		if v > maxCell {
			maxCell = v
		}
	}
	return total, maxCell, nonFinite
}

// ComputeSpreadStats returns mean, standard deviation, and p10/p50/p90
// of the given values.
func ComputeSpreadStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	std = stat.StdDev(values, nil)
	if math.IsNaN(std) {
		std = 0 // single sample
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, std, p10, p50, p90
}
