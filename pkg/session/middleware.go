// Package session binds each browser to a trip session through a signed cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// IDFromContext returns the session id set by Middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok && v != ""
}

// WithID stores a session id in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// ErrGone is matched by Resolve errors for sessions that ended or expired.
var ErrGone = errors.New("session gone")

// Resolver starts sessions and checks existing ones.
type Resolver interface {
	Start(ctx context.Context) (string, error)
	Resolve(ctx context.Context, id string) error
}

// Config controls the session cookie.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// Middleware puts the caller's session id in the request context. When the
// cookie is missing, forged or names a session that is gone, a new seeded
// session is started and the cookie is replaced. Other Resolve errors fail
// the request and keep the cookie.
func Middleware(svc Resolver, cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(CookieName); err == nil {
				if id, err := VerifyToken(cookie.Value, cfg.Secret); err == nil {
					err = svc.Resolve(r.Context(), id)
					if err == nil {
						next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
						return
					}
					if !errors.Is(err, ErrGone) {
						slog.Error("session resolve failed", "error", err, "session_id", id)
						writeFailure(w)
						return
					}
				}
			}

			id, err := Begin(w, r, svc, cfg)
			if err != nil {
				slog.Error("session start failed", "error", err)
				writeFailure(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

func writeFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "session_failed"})
}

// Begin starts a new session and sets its cookie on w.
func Begin(w http.ResponseWriter, r *http.Request, svc Resolver, cfg Config) (string, error) {
	id, err := svc.Start(r.Context())
	if err != nil {
		return "", err
	}
	SetCookie(w, CreateToken(id, cfg.Secret), cfg.TTL, cfg.Secure)
	return id, nil
}
