// Package geo holds the spherical helpers shared by the predictor, the verifier
// and the answer formatter
package geo

import "math"

// Earth radii for haversine distances
const (
	EarthRadiusKM = 6371.0
	EarthRadiusNM = 3440.065
)

const rad = math.Pi / 180.0

// Rad converts degrees to radians
func Rad(deg float64) float64 { return deg * rad }

// Deg converts radians to degrees
func Deg(r float64) float64 { return r / rad }

// Haversine is the great circle distance on a sphere of radius r
func Haversine(lat1, lon1, lat2, lon2, r float64) float64 {
	dlat := Rad(lat2 - lat1)
	dlon := Rad(lon2 - lon1)
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(Rad(lat1))*math.Cos(Rad(lat2))*math.Pow(math.Sin(dlon/2), 2)
	return r * 2 * math.Asin(math.Sqrt(math.Min(1, a)))
}

// KM is Haversine in kilometres
func KM(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2, EarthRadiusKM)
}

// NM is Haversine in nautical miles
func NM(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2, EarthRadiusNM)
}

// Bearing is the initial course from point 1 to point 2 in [0,360), 0 = North
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1, p2 := Rad(lat1), Rad(lat2)
	dl := Rad(lon2 - lon1)
	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)
	return Wrap360(Deg(math.Atan2(y, x)))
}

// Wrap360 maps any angle into [0,360)
func Wrap360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Wrap180 maps any angle into [-180,180)
func Wrap180(deg float64) float64 {
	return Wrap360(deg+180) - 180
}

// CourseDelta is the absolute difference between two courses in [0,180]
func CourseDelta(a, b float64) float64 {
	return math.Abs(Wrap180(b - a))
}

var compass16 = [16]string{
	"North", "NNE", "NE", "ENE",
	"East", "ESE", "SE", "SSE",
	"South", "SSW", "SW", "WSW",
	"West", "WNW", "NW", "NNW",
}

// Compass names a course on the 16 point rose
func Compass(deg float64) string {
	return compass16[int((Wrap360(deg)+11.25)/22.5)%16]
}

// Hemispheres returns the N/S and E/W letters for a position
func Hemispheres(lat, lon float64) (string, string) {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return ns, ew
}
