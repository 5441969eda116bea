package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ordermate/ordermate/internal/auth"
	"github.com/ordermate/ordermate/internal/entity"
)

// SessionCookieName is the cookie the dashboard stores its session token in.
const SessionCookieName = "auth-token"

type ctxKeyUser struct{}

// UserFromContext returns the authenticated user placed by RequireAuth.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(*entity.User)
	return u, ok
}

// RequireAuth resolves the session token from the auth-token cookie (or a
// Bearer header for API clients) and attaches the user to the request
// context.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					token = strings.TrimPrefix(h, "Bearer ")
				}
			}
			if token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			u, err := svc.VerifyToken(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// WithLogging logs one line per request in the structured style used
// everywhere else.
func WithLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("http.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
