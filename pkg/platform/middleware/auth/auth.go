// Package auth verifies bearer tokens and places the caller on the request context.
package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
	"counsel/pkg/requestcontext"
)

// TokenValidator turns a raw bearer token into the caller it identifies.
type TokenValidator interface {
	ValidateToken(tokenString string) (requestcontext.Caller, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.Warn("unauthorized access - missing token",
					zap.String("request_id", middleware.GetReqID(ctx)),
					zap.String("path", r.URL.Path),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			caller, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("unauthorized access - invalid token",
					zap.Error(err),
					zap.String("request_id", middleware.GetReqID(ctx)),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, caller)))
		})
	}
}
