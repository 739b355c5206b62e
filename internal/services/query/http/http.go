// Package http provides http transport for free text queries
package http

import (
	stdhttp "net/http"

	"vesselq/internal/modkit/httpkit"
	"vesselq/internal/services/query/domain"
)

// Register mounts the query endpoint on the given router
func Register(r httpkit.Router, s domain.Asker) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.Request](r, "/", h.ask)
}

type handlers struct{ svc domain.Asker }

// swagger:route POST /query Query query
// @Summary Answer a free text question about a vessel
// @Tags Query
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Question"
// @Success 200 {object} domain.Reply "ok"
// @Router /query [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.svc.Ask(r.Context(), in.Text)
}
