package trajectory

import (
	"math"

	"vesselq/internal/core/geo"
	"vesselq/internal/core/track"
)

// minCosLat keeps the longitude step finite near the poles
const minCosLat = 1e-4

// DeadReckon projects p forward along its reported course at its reported speed.
// Distances are nautical miles and one degree of latitude is 60 nm
func DeadReckon(p track.Position, minutes int) (lat, lon float64) {
	if minutes == 0 {
		return p.Lat, p.Lon
	}
	dist := p.SOG * float64(minutes) / 60
	theta := geo.Rad(90 - p.COG)
	lat = p.Lat + dist/60*math.Sin(theta)
	lon = p.Lon + dist/60*math.Cos(theta)/math.Max(math.Cos(geo.Rad(p.Lat)), minCosLat)
	return lat, lon
}

func deadReckoning(last track.Position, minutes int) Prediction {
	lat, lon := DeadReckon(last, minutes)
	return Prediction{
		Latitude:     lat,
		Longitude:    lon,
		Speed:        last.SOG,
		Course:       last.COG,
		MinutesAhead: minutes,
		Mode:         ModeDeadReckoning,
	}
}
