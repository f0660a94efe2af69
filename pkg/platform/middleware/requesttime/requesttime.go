// Package requesttime pins a single "now" for the lifetime of a request so
// createdAt, decidedAt and audit timestamps written by one request agree.
package requesttime

import (
	"net/http"
	"time"

	"counsel/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
