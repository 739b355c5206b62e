package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger mounts the swagger UI under prefix, reading the document from docURL
func MountSwagger(r Router, prefix, docURL string, enabled bool) {
	if !enabled {
		return
	}
	h := httpSwagger.Handler(httpSwagger.URL(docURL))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		h.ServeHTTP(w, req)
	})
}
