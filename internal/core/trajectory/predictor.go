// Package trajectory projects a vessel track forward, either by dead reckoning
// or through a learned pipeline loaded from artifacts on disk
package trajectory

import (
	"context"
	"math"

	"vesselq/internal/core/geo"
	"vesselq/internal/core/track"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/logger"
)

// Mode names how a prediction was produced
type Mode string

// Prediction modes
const (
	ModeDeadReckoning   Mode = "DEAD_RECKONING"
	ModeLearned         Mode = "LEARNED"
	ModeLearnedFallback Mode = "LEARNED_FALLBACK"
)

// Policy selects the prediction method
type Policy string

// Policies
const (
	PolicyAuto          Policy = "auto"
	PolicyDeadReckoning Policy = "dead_reckoning"
	PolicyLearned       Policy = "learned"
)

// Policies lists the accepted policy names, for config enums
var Policies = []string{string(PolicyAuto), string(PolicyDeadReckoning), string(PolicyLearned)}

// MinLearnedPoints is the shortest track the learned path accepts
const MinLearnedPoints = 3

// Prediction is a projected position
type Prediction struct {
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Speed        float64         `json:"speed"`
	Course       float64         `json:"course"`
	MinutesAhead int             `json:"minutes_ahead"`
	Mode         Mode            `json:"mode"`
	From         *track.Position `json:"from,omitempty"`
	DistanceNM   float64         `json:"distance_nm"`
	Baseline     *Prediction     `json:"baseline,omitempty"`
}

// Options configures a Predictor
type Options struct {
	Policy         Policy
	SequenceLength int
	MaxPoints      int
	Log            *logger.Logger
}

// Predictor is safe for concurrent use once built
type Predictor struct {
	pipe *Pipeline
	opt  Options
	log  *logger.Logger
}

// NewPredictor binds a pipeline, which may be nil, to a policy
func NewPredictor(pipe *Pipeline, opt Options) *Predictor {
	if opt.Policy == "" {
		opt.Policy = PolicyAuto
	}
	if opt.SequenceLength <= 0 {
		opt.SequenceLength = 12
	}
	if opt.MaxPoints <= 0 {
		opt.MaxPoints = track.PredictLimit
	}
	log := opt.Log
	if log == nil {
		log = logger.Named("predictor")
	}
	return &Predictor{pipe: pipe, opt: opt, log: log}
}

// Pipeline returns the bound pipeline, possibly nil
func (p *Predictor) Pipeline() *Pipeline { return p.pipe }

// Predict projects tr forward by minutes. The only error is an empty track
func (p *Predictor) Predict(ctx context.Context, tr track.Track, minutes int) (Prediction, error) {
	last, ok := tr.Last()
	if !ok {
		return Prediction{}, perr.Insufficientf("no positions to predict from")
	}

	var out Prediction
	switch {
	case p.opt.Policy == PolicyDeadReckoning:
		out = deadReckoning(last, minutes)
	case tr.Len() >= MinLearnedPoints:
		out = p.learned(ctx, tr, minutes)
	case p.opt.Policy == PolicyLearned:
		out = fallback(tr, minutes)
	default:
		out = deadReckoning(last, minutes)
	}

	if out.Mode != ModeDeadReckoning {
		base := deadReckoning(last, minutes)
		finish(&base, last)
		out.Baseline = &base
	}
	finish(&out, last)
	return out, nil
}

func finish(out *Prediction, last track.Position) {
	from := last
	out.From = &from
	out.DistanceNM = geo.NM(last.Lat, last.Lon, out.Latitude, out.Longitude)
}

// window is min(SequenceLength, len, MaxPoints)
func (p *Predictor) window(n int) int {
	w := p.opt.SequenceLength
	if n < w {
		w = n
	}
	if p.opt.MaxPoints < w {
		w = p.opt.MaxPoints
	}
	return w
}

func (p *Predictor) learned(ctx context.Context, tr track.Track, minutes int) Prediction {
	log := p.log.With().Int("points", tr.Len()).Logger()

	w := p.window(tr.Len())
	if w < p.opt.SequenceLength {
		log.Debug().Int("want", p.opt.SequenceLength).Int("window", w).Msg("sequence window shrunk")
	}
	seq := tr.Tail(w)

	if !p.pipe.Loaded() {
		return fallback(seq, minutes)
	}
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("context done before learned prediction")
		return fallback(seq, minutes)
	}

	x := Features(seq.Native())
	if x == nil {
		log.Warn().Msg("native rows too narrow; using fallback")
		return fallback(seq, minutes)
	}
	if len(x) != p.pipe.Width {
		log.Warn().Int("features", len(x)).Int("expected", p.pipe.Width).Msg("feature width mismatch; using fallback")
		return fallback(seq, minutes)
	}
	y, err := p.pipe.Predict(x)
	if err != nil {
		log.Warn().Err(err).Msg("regressor failed; using fallback")
		return fallback(seq, minutes)
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			log.Warn().Floats64("output", y).Msg("regressor output not finite; using fallback")
			return fallback(seq, minutes)
		}
	}
	return Prediction{
		Latitude:     y[0],
		Longitude:    y[1],
		Speed:        y[2],
		Course:       geo.Wrap360(y[3]),
		MinutesAhead: minutes,
		Mode:         ModeLearned,
	}
}

// fallback extrapolates the mean per fix displacement over two more steps,
// decays speed by 5% and holds the course
func fallback(tr track.Track, minutes int) Prediction {
	first, _ := tr.First()
	last, _ := tr.Last()
	var dlat, dlon float64
	if n := tr.Len(); n > 1 {
		dlat = (last.Lat - first.Lat) / float64(n-1)
		dlon = (last.Lon - first.Lon) / float64(n-1)
	}
	return Prediction{
		Latitude:     last.Lat + dlat*2,
		Longitude:    last.Lon + dlon*2,
		Speed:        last.SOG * 0.95,
		Course:       last.COG,
		MinutesAhead: minutes,
		Mode:         ModeLearnedFallback,
	}
}
