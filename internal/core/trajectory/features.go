package trajectory

import "vesselq/internal/core/geo"

// Feature vector layout
const (
	HaversineCount = 7
	FeatureWidth   = ExpandedDims*SummaryCount + HaversineCount
)

// Features builds the fixed width vector fed to the pipeline from native rows.
// It returns nil when the rows are narrower than NativeDims
func Features(native [][]float64) []float64 {
	expanded := Expand(native)
	if expanded == nil {
		return nil
	}
	out := make([]float64, 0, FeatureWidth)
	for c := 0; c < ExpandedDims; c++ {
		s := Summaries(column(expanded, c))
		out = append(out, s[:]...)
	}
	h := HaversineSummaries(column(native, colLat), column(native, colLon))
	return append(out, h[:]...)
}

// HaversineSummaries returns, in km:
// mean, max and std of the distance from the first fix, then the sum, the
// mean excluding the leading zero, the max and the std of the consecutive
// distances with a leading zero
func HaversineSummaries(lats, lons []float64) [HaversineCount]float64 {
	var h [HaversineCount]float64
	n := len(lats)
	if n == 0 || len(lons) != n {
		return h
	}

	fromFirst := make([]float64, n)
	steps := make([]float64, n)
	for i := 0; i < n; i++ {
		fromFirst[i] = geo.KM(lats[0], lons[0], lats[i], lons[i])
		if i > 0 {
			steps[i] = geo.KM(lats[i-1], lons[i-1], lats[i], lons[i])
		}
	}

	m := meanOf(fromFirst)
	_, hi := minMax(fromFirst)
	h[0], h[1], h[2] = m, hi, stdOf(fromFirst, m)

	sum := 0.0
	for _, d := range steps {
		sum += d
	}
	sm := meanOf(steps)
	_, shi := minMax(steps)
	h[3] = sum
	h[4] = meanOf(steps[1:])
	h[5] = shi
	h[6] = stdOf(steps, sm)
	finite(h[:])
	return h
}
