// Package http provides http transport for vessels
package http

import (
	stdhttp "net/http"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit/httpkit"
	"vesselq/internal/platform/net/http/bind"
	"vesselq/internal/services/vessels/domain"
)

// Service is what the handlers need
type Service interface {
	domain.Resolver
	domain.Catalog
	domain.Tracks
}

// Register mounts vessels endpoints on the given router
func Register(r httpkit.Router, s Service, prefixLimit int) {
	h := &handlers{svc: s, prefixLimit: prefixLimit}

	// known names, optionally by prefix
	httpkit.Get(r, "/", h.names)

	// per vessel counts and first and last seen
	httpkit.Get(r, "/summary", h.summary)

	// name or mmsi plus optional time to a record and trailing track
	httpkit.PostJSON[domain.ResolveRequest](r, "/resolve", h.resolve)

	// history inside optional bounds
	httpkit.PostJSON[domain.TrackRequest](r, "/track", h.history)
}

type handlers struct {
	svc         Service
	prefixLimit int
}

// swagger:route GET /vessels Vessels vesselNames
// @Summary List known vessel names
// @Tags Vessels
// @Produce json
// @Param prefix query string false "Case insensitive name prefix"
// @Param limit query int false "Maximum names returned"
// @Success 200 {array} string "ok"
// @Router /vessels [get]
func (h *handlers) names(r *stdhttp.Request) (any, error) {
	prefix := bind.QueryString(r, "prefix", "")
	hi := track.HistoryLimit
	if prefix != "" {
		hi = h.prefixLimit
	}
	limit, err := bind.QueryInt(r, "limit", 0, 0, hi)
	if err != nil {
		return nil, err
	}
	names, err := h.svc.Names(r.Context(), prefix, limit)
	if err != nil {
		return nil, err
	}
	return httpkit.List(names, len(names), limit), nil
}

// swagger:route GET /vessels/summary Vessels vesselSummary
// @Summary Per vessel record counts and first and last seen
// @Tags Vessels
// @Produce json
// @Success 200 {array} domain.Summary "ok"
// @Router /vessels/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summaries(r.Context())
}

// swagger:route POST /vessels/resolve Vessels vesselResolve
// @Summary Resolve a vessel and the record nearest a time
// @Tags Vessels
// @Accept json
// @Produce json
// @Param payload body domain.ResolveRequest true "Vessel and optional time"
// @Success 200 {object} domain.Resolution "ok"
// @Router /vessels/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveRequest) (any, error) {
	return h.svc.Resolve(r.Context(), in.Input()), nil
}

// swagger:route POST /vessels/track Vessels vesselTrack
// @Summary Positional history of a vessel
// @Tags Vessels
// @Accept json
// @Produce json
// @Param payload body domain.TrackRequest true "Vessel and optional bounds"
// @Success 200 {array} track.Position "ok"
// @Router /vessels/track [post]
func (h *handlers) history(r *stdhttp.Request, in domain.TrackRequest) (any, error) {
	from, to := in.Bounds()
	ref := domain.ResolveRequest{VesselRef: in.VesselRef}.Input()
	return h.svc.Track(r.Context(), ref, domain.TrackQuery{From: from, To: to, Limit: in.Limit})
}
