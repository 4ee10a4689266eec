/*package stats computes the per-region summaries reported by the
analysis. Region densities span many decades, so their typical values
are medians and quartiles measured in log10 space and converted back to
linear units.

Empty regions are data, not errors. A region with no cells (or no finite
samples) reports N = 0 and NaN estimators and it is the caller's job to
print "no data" instead of feeding the NaNs onward.
*/
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/diskjet/field"
	"github.com/phil-mansfield/diskjet/region"
)

// Summary holds the aggregate statistics of a single region. Velocities
// are cm/s and densities g/cm^3, like the fields they come from.
type Summary struct {
	Class region.Class

	// N counts the region's cells and AreaPct is its share of the whole
	// grid, in percent.
	N       int
	AreaPct float64

	// Velocity statistics over the region's finite samples.
	VMean, VStd, VMin, VMax float64

	// Typical density: median and quartiles estimated in log10 space.
	RhoMedian, RhoP25, RhoP75 float64
}

// Empty returns true if the region contains no cells.
func (s *Summary) Empty() bool { return s.N == 0 }

// Summarize computes a Summary for every class in region.Classes()
// order. vr and rho must share the map's shape.
func Summarize(m *region.Map, vr, rho *field.Field) []Summary {
	if m.Nx != vr.Nx || m.Nz != vr.Nz {
		panic("label map and vr have different shapes.")
	} else if !vr.ShapeEq(rho) {
		panic("vr and rho have different shapes.")
	}

	sums := make([]Summary, 0, len(region.Classes()))
	for _, c := range region.Classes() {
		sums = append(sums, summarizeClass(m, c, vr, rho))
	}
	return sums
}

func summarizeClass(
	m *region.Map, c region.Class, vr, rho *field.Field,
) Summary {
	vs := []float64{}
	rs := []float64{}
	n := 0
	for i, mc := range m.Classes {
		if mc != c { continue }
		n++
		if isFinite(vr.Vals[i]) { vs = append(vs, vr.Vals[i]) }
		rs = append(rs, rho.Vals[i])
	}

	s := Summary{
		Class:   c,
		N:       n,
		AreaPct: 100 * float64(n) / float64(m.Len()),
	}

	if len(vs) == 0 {
		nan := math.NaN()
		s.VMean, s.VStd, s.VMin, s.VMax = nan, nan, nan, nan
	} else {
		s.VMean = stat.Mean(vs, nil)
		s.VStd = stat.PopStdDev(vs, nil)
		s.VMin = floats.Min(vs)
		s.VMax = floats.Max(vs)
	}

	s.RhoMedian, s.RhoP25, s.RhoP75 = LogTypical(rs)
	return s
}

// Percentile returns the empirical p'th percentile of xs, with p in
// [0, 100]. xs is not modified. Returns NaN for empty input.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 { return math.NaN() }

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// LogTypical returns the median and quartiles of xs estimated in log10
// space and converted back to linear units. Non-positive and non-finite
// values carry no information about a quantity spanning decades and are
// skipped. Returns NaNs if no usable values remain.
func LogTypical(xs []float64) (med, p25, p75 float64) {
	logs := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x > 0 && isFinite(x) {
			logs = append(logs, math.Log10(x))
		}
	}
	if len(logs) == 0 {
		nan := math.NaN()
		return nan, nan, nan
	}

	sort.Float64s(logs)
	med = math.Pow(10, stat.Quantile(0.50, stat.Empirical, logs, nil))
	p25 = math.Pow(10, stat.Quantile(0.25, stat.Empirical, logs, nil))
	p75 = math.Pow(10, stat.Quantile(0.75, stat.Empirical, logs, nil))
	return med, p25, p75
}

// RobustLimits returns percentile-based bounds for colour scales, lo and
// hi being percentiles in [0, 100]. With symmetric set, the bounds are
// mirrored around zero, which keeps diverging palettes centered. Only
// finite values participate; if there are none, both limits are NaN.
func RobustLimits(xs []float64, lo, hi float64, symmetric bool) (min, max float64) {
	fin := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) { fin = append(fin, x) }
	}
	if len(fin) == 0 {
		return math.NaN(), math.NaN()
	}

	pLo, pHi := Percentile(fin, lo), Percentile(fin, hi)
	if symmetric {
		bound := math.Max(math.Abs(pLo), math.Abs(pHi))
		return -bound, bound
	}
	return pLo, pHi
}

// Histogram is a binned count of sample values, linear or log10 spaced.
type Histogram struct {
	Centers []float64
	Counts  []int

	Min, Max float64
	Log      bool
}

// NewHistogram bins xs into bins cells spanning [min, max). Log scaling
// bins in log10 space, so min must be positive there. Values outside the
// range, non-finite values, and non-positive values under log scaling
// are skipped, not clamped.
func NewHistogram(xs []float64, min, max float64, bins int, log bool) *Histogram {
	if bins <= 0 {
		panic("bins must be positive.")
	} else if min >= max {
		panic("min must be below max.")
	} else if log && min <= 0 {
		panic("log histograms need a positive min.")
	}

	h := &Histogram{
		Centers: make([]float64, bins),
		Counts:  make([]int, bins),
		Min:     min, Max: max, Log: log,
	}

	lo, hi := min, max
	if log { lo, hi = math.Log10(min), math.Log10(max) }
	dx := (hi - lo) / float64(bins)

	for i := range h.Centers {
		h.Centers[i] = lo + dx*(float64(i)+0.5)
		if log { h.Centers[i] = math.Pow(10, h.Centers[i]) }
	}

	fBins := float64(bins)
	for _, x := range xs {
		if !isFinite(x) { continue }
		if log {
			if x <= 0 { continue }
			x = math.Log10(x)
		}
		idx := (x - lo) / dx
		if idx < 0 || idx >= fBins { continue }
		h.Counts[int(idx)]++
	}

	return h
}

// Total returns the number of binned samples.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.Counts { n += c }
	return n
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
