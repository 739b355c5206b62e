package trajectory

import (
	"math"
	"sort"
)

// SummaryCount is the number of summaries per expanded column
const SummaryCount = 17

// SummaryNames lists the per column summaries in output order
var SummaryNames = [SummaryCount]string{
	"mean", "std", "min", "max", "median", "p25", "p75", "range",
	"skew", "kurtosis",
	"trend_mean", "trend_std", "trend_max", "trend_min",
	"first_last_diff", "first_last_ratio", "volatility",
}

// Summaries computes the 17 summaries of one column. std is the population
// deviation; skew and kurtosis are the bias corrected sample estimators and
// are 0 when undefined. The trend values and volatility are taken over the
// first differences
func Summaries(xs []float64) [SummaryCount]float64 {
	var s [SummaryCount]float64
	if len(xs) == 0 {
		return s
	}
	mean := meanOf(xs)
	std := stdOf(xs, mean)
	lo, hi := minMax(xs)

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	d := diff(xs)
	dMean := meanOf(d)
	dStd := stdOf(d, dMean)
	dLo, dHi := minMax(d)

	first, last := xs[0], xs[len(xs)-1]

	s = [SummaryCount]float64{
		mean, std, lo, hi,
		percentile(sorted, 50), percentile(sorted, 25), percentile(sorted, 75),
		hi - lo,
		skew(xs, mean), kurtosis(xs, mean),
		dMean, dStd, dHi, dLo,
		last - first,
		last / (first + eps),
		dStd,
	}
	finite(s[:])
	return s
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdOf(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func minMax(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

// percentile interpolates linearly between the closest ranks of sorted
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := q / 100 * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// skew is the adjusted Fisher-Pearson coefficient; needs 3 values
func skew(xs []float64, mean float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return 0
	}
	var m2, m3 float64
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 < 1e-14 {
		return 0
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis is the bias corrected excess kurtosis; needs 4 values
func kurtosis(xs []float64, mean float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return 0
	}
	var s2, s4 float64
	for _, x := range xs {
		d := (x - mean) * (x - mean)
		s2 += d
		s4 += d * d
	}
	den := (n - 2) * (n - 3) * s2 * s2
	if den < 1e-14 {
		return 0
	}
	adj := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	return n*(n+1)*(n-1)*s4/den - adj
}
