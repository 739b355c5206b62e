// Package service answers free text vessel questions by parsing them and
// fanning out to the vessels and trajectory ports
package service

import (
	"context"
	"time"

	"vesselq/internal/core/answer"
	"vesselq/internal/core/queryparse"
	"vesselq/internal/core/track"
	"vesselq/internal/platform/logger"
	"vesselq/internal/services/query/domain"
	vdomain "vesselq/internal/services/vessels/domain"
)

// NoIntent is the message for a question with neither an intent nor a vessel
const NoIntent = "I can tell you where a vessel is, where it is heading, or whether its movement looks normal. Please name a vessel or give its MMSI."

// Service implements domain.Asker
type Service struct {
	ports   Ports
	parsers *parsers
	cfg     Config
}

var _ domain.Asker = (*Service)(nil)

// New builds the service over upstream ports
func New(ports Ports, cfg Config) *Service {
	if !ports.complete() {
		panic("query.Service requires vessels and trajectory ports")
	}
	cfg = cfg.withDefaults()
	return &Service{ports: ports, parsers: newParsers(ports.Catalog, cfg), cfg: cfg}
}

// Parse reads text with the current vessel dictionary
func (s *Service) Parse(ctx context.Context, text string) queryparse.ParsedQuery {
	return s.parsers.get(ctx).Parse(text)
}

// Refresh drops the cached parser so the next question sees new vessel names
func (s *Service) Refresh() { s.parsers.invalidate() }

// Ask parses text and answers it. The only error is a finished context
func (s *Service) Ask(ctx context.Context, text string) (domain.Reply, error) {
	q := s.Parse(ctx, text)
	a := s.answer(ctx, q)
	if err := ctx.Err(); err != nil {
		return domain.Reply{}, err
	}
	logger.C(ctx).Debug().Str("intent", string(a.Intent)).Str("vessel", a.Vessel).
		Bool("answered", a.Message == "").Msg("query answered")
	return domain.Reply{Parsed: q, Answer: a, Text: answer.Text(a)}, nil
}

func (s *Service) answer(ctx context.Context, q queryparse.ParsedQuery) answer.Answer {
	intent := q.Intent
	if intent == queryparse.IntentNone {
		if !q.HasVessel() && q.Identifiers.Empty() {
			return answer.Messagef(intent, "%s", NoIntent)
		}
		intent = queryparse.IntentShow
	}

	res := s.ports.Resolver.Resolve(ctx, vdomain.FromParsed(q))
	if !res.Found() {
		return answer.Messagef(intent, "%s", res.Message)
	}
	m := res.Match
	rec := m.Record
	a := answer.Answer{Intent: intent, Vessel: m.Identity.Name, MMSI: rec.MMSI, Position: &rec, Track: m.Track}

	switch intent {
	case queryparse.IntentPredict:
		p, err := s.ports.Forecaster.Forecast(ctx, *m, positive(q.DurationMinutes))
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("vessel", a.Vessel).Msg("forecast failed")
			return a
		}
		a.Prediction = &p
	case queryparse.IntentVerify:
		v := s.ports.Checker.Check(ctx, *m)
		a.Verdict = &v
	default:
		if d := positive(q.DurationMinutes); d > 0 {
			a.Track = s.widen(ctx, m, d, a.Track)
		}
	}
	return a
}

// widen returns the d minutes of track ending at the record, or tr when that read fails
func (s *Service) widen(ctx context.Context, m *vdomain.ResolvedMatch, d int, tr track.Track) track.Track {
	w, err := s.ports.Tracks.Window(ctx, m.Identity, m.Record.Timestamp, time.Duration(d)*time.Minute)
	if err != nil || w.Empty() {
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("vessel", m.Identity.String()).Msg("track window read failed")
		}
		return tr
	}
	return w
}

func positive(d *int) int {
	if d == nil || *d <= 0 {
		return 0
	}
	return *d
}
