// Package verify checks a track for physically implausible movement
package verify

import (
	"fmt"

	"vesselq/internal/core/geo"
	"vesselq/internal/core/track"
)

// Outcome is the overall verdict
type Outcome string

// Outcomes
const (
	Consistent   Outcome = "consistent"
	Suspicious   Outcome = "suspicious"
	Insufficient Outcome = "insufficient"
)

// AnomalyKind classifies a flagged pair of fixes
type AnomalyKind string

// Anomaly kinds
const (
	LargeJump    AnomalyKind = "large_jump"
	CourseChange AnomalyKind = "course_change"
)

// Anomaly is one flagged transition between fixes Index-1 and Index
type Anomaly struct {
	Kind        AnomalyKind `json:"kind"`
	Index       int         `json:"index"`
	DistanceNM  float64     `json:"distance_nm"`
	CourseDelta float64     `json:"course_delta"`
	Detail      string      `json:"detail"`
}

// Verdict is the result of Verify
type Verdict struct {
	Verdict   Outcome     `json:"verdict"`
	Reasons   []string    `json:"reasons"`
	Anomalies []Anomaly   `json:"anomalies,omitempty"`
	Points    track.Track `json:"points,omitempty"`
}

// Defaults
const (
	DefaultJumpNM         = 5.0
	DefaultCourseDeltaDeg = 90.0
	DefaultWindow         = track.DisplayLimit
)

// NotEnoughData is the reason given for tracks shorter than two fixes
const NotEnoughData = "not enough data"

// Verifier flags distance jumps and sharp course changes between consecutive fixes
type Verifier struct {
	JumpNM         float64
	CourseDeltaDeg float64
	Window         int
}

// New returns a Verifier with the default thresholds
func New() *Verifier {
	return &Verifier{JumpNM: DefaultJumpNM, CourseDeltaDeg: DefaultCourseDeltaDeg, Window: DefaultWindow}
}

// Verify inspects the last Window fixes of tr. Every pair is checked and
// every breach is reported in order
func (v *Verifier) Verify(tr track.Track) Verdict {
	pts := tr
	if v.Window > 0 {
		pts = tr.Tail(v.Window)
	}
	if pts.Len() < 2 {
		return Verdict{Verdict: Insufficient, Reasons: []string{NotEnoughData}, Points: pts}
	}

	out := Verdict{Verdict: Consistent, Reasons: []string{}, Points: pts}
	for i := 1; i < pts.Len(); i++ {
		a, b := pts[i-1], pts[i]
		dist := geo.NM(a.Lat, a.Lon, b.Lat, b.Lon)
		delta := geo.CourseDelta(a.COG, b.COG)

		if dist > v.JumpNM {
			msg := fmt.Sprintf("Large jump of %.2f nm between fixes %d and %d", dist, i-1, i)
			out.add(Anomaly{Kind: LargeJump, Index: i, DistanceNM: dist, CourseDelta: delta, Detail: msg})
		}
		if delta > v.CourseDeltaDeg {
			msg := fmt.Sprintf("Sharp course change of %.1f° between fixes %d and %d", delta, i-1, i)
			out.add(Anomaly{Kind: CourseChange, Index: i, DistanceNM: dist, CourseDelta: delta, Detail: msg})
		}
	}
	return out
}

func (v *Verdict) add(a Anomaly) {
	v.Verdict = Suspicious
	v.Reasons = append(v.Reasons, a.Detail)
	v.Anomalies = append(v.Anomalies, a)
}
