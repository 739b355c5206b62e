package middleware

import (
	"net/http"
	"regexp"

	pnet "vesselq/internal/platform/net"

	"github.com/google/uuid"
)

// HeaderRequestID is read from and mirrored onto every response
const HeaderRequestID = "X-Request-ID"

// inbound ids are kept only when they look like something we would log
var validReqID = regexp.MustCompile(`^[A-Za-z0-9._:\-]{1,64}$`)

var newID = uuid.NewString // seam

// RequestID propagates a sane inbound X-Request-ID or mints a uuid, and stores it for chi and the logger
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if !validReqID.MatchString(id) {
				id = newID()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
		})
	}
}
