package swaggerkit

import (
	"net/http"

	phttp "vesselq/internal/platform/net/http"
)

// Mount serves the document at /api/docs/doc.json and the UI under /api/docs/ when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON("/api/v1"))
	phttp.MountSwagger(r, "/api/docs", "/api/docs/doc.json", true)
}
