// Package http provides http transport for trajectory
package http

import (
	"context"
	stdhttp "net/http"

	"vesselq/internal/modkit/httpkit"
	"vesselq/internal/services/trajectory/domain"
	vdomain "vesselq/internal/services/vessels/domain"
)

// Service is what the handlers need
type Service interface {
	Predict(ctx context.Context, in vdomain.ResolveInput, minutes int) (domain.Forecast, error)
	Verify(ctx context.Context, in vdomain.ResolveInput) (domain.Check, error)
}

// Register mounts trajectory endpoints on the given router
func Register(r httpkit.Router, s Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.PredictRequest](r, "/predict", h.predict)
	httpkit.PostJSON[domain.VerifyRequest](r, "/verify", h.verify)
}

type handlers struct{ svc Service }

// swagger:route POST /trajectory/predict Trajectory trajectoryPredict
// @Summary Predict where a vessel will be
// @Tags Trajectory
// @Accept json
// @Produce json
// @Param payload body domain.PredictRequest true "Vessel, minutes ahead and optional time"
// @Success 200 {object} domain.Forecast "ok"
// @Router /trajectory/predict [post]
func (h *handlers) predict(r *stdhttp.Request, in domain.PredictRequest) (any, error) {
	return h.svc.Predict(r.Context(), in.Input(), in.Minutes)
}

// swagger:route POST /trajectory/verify Trajectory trajectoryVerify
// @Summary Check a vessel's recent movement for jumps and sharp turns
// @Tags Trajectory
// @Accept json
// @Produce json
// @Param payload body domain.VerifyRequest true "Vessel and optional time"
// @Success 200 {object} domain.Check "ok"
// @Router /trajectory/verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.VerifyRequest) (any, error) {
	return h.svc.Verify(r.Context(), in.Input())
}
