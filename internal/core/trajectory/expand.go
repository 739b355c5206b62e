package trajectory

import (
	"math"

	"vesselq/internal/core/geo"
)

// Widths of the per fix feature rows
const (
	NativeDims   = 6
	ExpandedDims = 28
)

const eps = 1e-6

// Native column order
const (
	colLat = iota
	colLon
	colSOG
	colCOG
	colHeading
	colType
)

// Expand derives the 28 column rows from the 6 native columns
// (lat, lon, sog, cog, heading, vessel_type). Column order:
//
//	0..5   raw
//	6..11  z-score within the window
//	12..17 first difference, 0 on the first row
//	18..20 u, v and |uv| where u = sog·cos(cog), v = sog·sin(cog)
//	21..22 first and second difference of sog
//	23..24 planar displacement magnitude and atan2(Δlat, Δlon)
//	25..26 sin(cog), cos(cog)
//	27     drift angle, cog − heading wrapped to [-180,180)
//
// Rows narrower than NativeDims yield nil
func Expand(rows [][]float64) [][]float64 {
	n := len(rows)
	if n == 0 {
		return nil
	}
	for _, r := range rows {
		if len(r) < NativeDims {
			return nil
		}
	}

	var mean, std [NativeDims]float64
	for c := 0; c < NativeDims; c++ {
		col := column(rows, c)
		mean[c] = meanOf(col)
		std[c] = stdOf(col, mean[c])
	}

	out := make([][]float64, n)
	prevDSOG := 0.0
	for i, r := range rows {
		x := make([]float64, ExpandedDims)
		copy(x, r[:NativeDims])
		for c := 0; c < NativeDims; c++ {
			x[6+c] = (r[c] - mean[c]) / (std[c] + eps)
			if i > 0 {
				x[12+c] = r[c] - rows[i-1][c]
			}
		}

		cog := geo.Rad(r[colCOG])
		u := r[colSOG] * math.Cos(cog)
		v := r[colSOG] * math.Sin(cog)
		x[18], x[19], x[20] = u, v, math.Hypot(u, v)

		dsog := x[12+colSOG]
		x[21] = dsog
		if i > 1 {
			x[22] = dsog - prevDSOG
		}
		prevDSOG = dsog

		dlat, dlon := x[12+colLat], x[12+colLon]
		x[23] = math.Hypot(dlat, dlon)
		x[24] = math.Atan2(dlat, dlon)
		x[25], x[26] = math.Sin(cog), math.Cos(cog)
		x[27] = geo.Wrap180(r[colCOG] - r[colHeading])

		out[i] = finite(x)
	}
	return out
}

// finite replaces NaN and ±Inf in place
func finite(x []float64) []float64 {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			x[i] = 0
		}
	}
	return x
}

func column(rows [][]float64, c int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r[c]
	}
	return out
}
