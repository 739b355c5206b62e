// Package answer assembles the structured reply to a query and renders it as text
package answer

import (
	"fmt"
	"math"
	"strings"

	"vesselq/internal/core/geo"
	"vesselq/internal/core/queryparse"
	"vesselq/internal/core/track"
	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
	ptime "vesselq/internal/platform/time"
)

// UnknownVessel names a reply whose vessel could not be named
const UnknownVessel = "Unknown Vessel"

// Answer is the structured reply. Message, when set, replaces everything else
type Answer struct {
	Intent     queryparse.Intent      `json:"intent"`
	Vessel     string                 `json:"vessel,omitempty"`
	MMSI       int64                  `json:"mmsi,omitempty"`
	Position   *track.Position        `json:"position,omitempty"`
	Track      track.Track            `json:"track,omitempty"`
	Prediction *trajectory.Prediction `json:"prediction,omitempty"`
	Verdict    *verify.Verdict        `json:"verdict,omitempty"`
	Message    string                 `json:"message,omitempty"`
}

// Messagef builds a message only answer
func Messagef(intent queryparse.Intent, format string, a ...any) Answer {
	return Answer{Intent: intent, Message: fmt.Sprintf(format, a...)}
}

// Text renders a for people
func Text(a Answer) string {
	if a.Message != "" {
		return a.Message
	}
	switch a.Intent {
	case queryparse.IntentShow:
		return show(a)
	case queryparse.IntentPredict:
		return predict(a)
	case queryparse.IntentVerify:
		return verifyText(a)
	}
	return "I processed your request but couldn't generate a response."
}

func (a Answer) name() string {
	if a.Vessel != "" {
		return a.Vessel
	}
	if a.Position != nil && a.Position.Name != "" {
		return a.Position.Name
	}
	return UnknownVessel
}

// Coordinates formats a position as "12.3456° N, 45.6789° W"
func Coordinates(lat, lon float64) string {
	ns, ew := geo.Hemispheres(lat, lon)
	return fmt.Sprintf("%.4f° %s, %.4f° %s", math.Abs(lat), ns, math.Abs(lon), ew)
}

func show(a Answer) string {
	p := a.Position
	if p == nil {
		return fmt.Sprintf("I found %s, but position data is not available.", a.name())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** is currently at position %s", a.name(), Coordinates(p.Lat, p.Lon))
	if p.SOG > 0 {
		fmt.Fprintf(&b, " traveling at %.1f knots", p.SOG)
	}
	fmt.Fprintf(&b, " heading %s (%.0f°)", geo.Compass(p.COG), p.COG)
	if !p.Timestamp.IsZero() {
		fmt.Fprintf(&b, " as of %s", ptime.Format(p.Timestamp))
	}
	b.WriteString(".")
	if n := a.Track.Len(); n > 0 {
		fmt.Fprintf(&b, "\n\nI have %d position records for this vessel in the database.", n)
	}
	return b.String()
}

func predict(a Answer) string {
	pr := a.Prediction
	if pr == nil {
		return fmt.Sprintf("I couldn't calculate a prediction for %s.", a.name())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Based on current speed and course, **%s** will be at position %s in %d minutes",
		a.name(), Coordinates(pr.Latitude, pr.Longitude), pr.MinutesAhead)
	if pr.From != nil {
		fmt.Fprintf(&b, " (approximately %.1f nautical miles away)", pr.DistanceNM)
	}
	b.WriteString(".")
	switch pr.Mode {
	case trajectory.ModeLearned:
		b.WriteString(" This estimate comes from the learned trajectory model.")
	case trajectory.ModeLearnedFallback:
		b.WriteString(" The learned model was unavailable, so this extrapolates the recent track.")
	}
	return b.String()
}

func verifyText(a Answer) string {
	v := a.Verdict
	if v == nil {
		return fmt.Sprintf("I couldn't verify the movement of %s.", a.name())
	}
	switch v.Verdict {
	case verify.Consistent:
		return fmt.Sprintf("**%s**'s movement appears consistent and normal.", a.name())
	case verify.Insufficient:
		return fmt.Sprintf("I couldn't verify **%s**'s movement: %s.", a.name(), strings.Join(v.Reasons, "; "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** has some unusual movement patterns:", a.name())
	for _, an := range v.Anomalies {
		switch an.Kind {
		case verify.LargeJump:
			fmt.Fprintf(&b, "\n  • Large position jump: %s", an.Detail)
		case verify.CourseChange:
			fmt.Fprintf(&b, "\n  • Sudden course change: %s", an.Detail)
		default:
			fmt.Fprintf(&b, "\n  • %s: %s", an.Kind, an.Detail)
		}
	}
	return b.String()
}
