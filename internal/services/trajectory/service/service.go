// Package service predicts and verifies vessel movement over tracks read
// through the vessels ports
package service

import (
	"context"
	"errors"

	"vesselq/internal/core/track"
	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/logger"
	"vesselq/internal/services/trajectory/domain"
	vdomain "vesselq/internal/services/vessels/domain"
)

// Service implements domain.Forecaster and domain.Checker
type Service struct {
	resolver  vdomain.Resolver
	tracks    vdomain.Tracks
	predictor *trajectory.Predictor
	verifier  *verify.Verifier
	cfg       Config
	log       *logger.Logger
}

var (
	_ domain.Forecaster = (*Service)(nil)
	_ domain.Checker    = (*Service)(nil)
)

// New builds the service. pipe may be nil, in which case learned predictions use the fallback
func New(ports vdomain.Ports, pipe *trajectory.Pipeline, cfg Config) *Service {
	if ports.Resolver == nil || ports.Tracks == nil {
		panic("trajectory.Service requires the vessels Resolver and Tracks ports")
	}
	cfg = cfg.withDefaults()
	return &Service{
		resolver: ports.Resolver,
		tracks:   ports.Tracks,
		predictor: trajectory.NewPredictor(pipe, trajectory.Options{
			Policy:         cfg.Policy,
			SequenceLength: cfg.SequenceLength,
			MaxPoints:      track.PredictLimit,
		}),
		verifier: &verify.Verifier{JumpNM: cfg.JumpNM, CourseDeltaDeg: cfg.CourseDeltaDeg, Window: cfg.Window},
		cfg:      cfg,
		log:      logger.Named("trajectory"),
	}
}

// Forecast projects m forward from its record using the fixes leading up to it
func (s *Service) Forecast(ctx context.Context, m vdomain.ResolvedMatch, minutes int) (trajectory.Prediction, error) {
	if minutes <= 0 {
		minutes = s.cfg.DefaultMinutes
	}
	tr := s.recent(ctx, m, track.PredictLimit)
	p, err := s.predictor.Predict(ctx, tr, minutes)
	if err != nil {
		return p, perr.WithOp(err, "forecast")
	}
	logger.C(ctx).Debug().Str("vessel", m.Identity.String()).Str("mode", string(p.Mode)).
		Int("points", tr.Len()).Int("minutes", minutes).Msg("forecast")
	return p, nil
}

// Check verifies the last Window fixes up to m's record
func (s *Service) Check(ctx context.Context, m vdomain.ResolvedMatch) verify.Verdict {
	return s.verifier.Verify(s.recent(ctx, m, s.cfg.Window))
}

// Predict resolves in and forecasts it
func (s *Service) Predict(ctx context.Context, in vdomain.ResolveInput, minutes int) (domain.Forecast, error) {
	m, err := s.resolve(ctx, in)
	if err != nil {
		return domain.Forecast{}, err
	}
	p, err := s.Forecast(ctx, *m, minutes)
	if err != nil {
		return domain.Forecast{}, err
	}
	return domain.Forecast{Match: m, Prediction: p}, nil
}

// Verify resolves in and checks its recent movement
func (s *Service) Verify(ctx context.Context, in vdomain.ResolveInput) (domain.Check, error) {
	m, err := s.resolve(ctx, in)
	if err != nil {
		return domain.Check{}, err
	}
	return domain.Check{Match: m, Verdict: s.Check(ctx, *m)}, nil
}

func (s *Service) resolve(ctx context.Context, in vdomain.ResolveInput) (*vdomain.ResolvedMatch, error) {
	if in.MMSI == 0 && in.Name == "" {
		return nil, perr.WithField(perr.InvalidArgf("%s", vdomain.NoVessel), "name")
	}
	res := s.resolver.Resolve(ctx, in)
	if !res.Found() {
		return nil, perr.NotFoundf("%s", res.Message)
	}
	return res.Match, nil
}

// recent returns up to n fixes ending at m's record. The resolver's trailing
// track is reused when long enough; a failed read degrades to it
func (s *Service) recent(ctx context.Context, m vdomain.ResolvedMatch, n int) track.Track {
	if m.Track.Len() >= n {
		return m.Track.Tail(n)
	}
	tr, err := s.tracks.Trailing(ctx, m.Identity, m.Record.Timestamp, n)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Warn().Err(err).Str("vessel", m.Identity.String()).Msg("trailing read failed; using the resolved track")
		}
		tr = m.Track
	}
	if tr.Empty() {
		return track.Track{m.Record}
	}
	return tr
}
