package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/pkg/session"
)

// SessionLifecycle is the part of service.SessionService the handler needs.
type SessionLifecycle interface {
	session.Resolver
	End(ctx context.Context, id string) error
}

// SessionHandler starts and ends trip sessions explicitly.
type SessionHandler struct {
	svc SessionLifecycle
	cfg session.Config
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc SessionLifecycle, cfg session.Config) *SessionHandler {
	return &SessionHandler{svc: svc, cfg: cfg}
}

// Start handles POST /api/session. Any current session is ended first and a
// fresh seeded one takes its place.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.cookieSession(r); ok {
		if err := h.svc.End(r.Context(), id); err != nil {
			slog.Warn("previous session not ended", "error", err, "session_id", id)
		}
	}

	id, err := session.Begin(w, r, h.svc, h.cfg)
	if err != nil {
		slog.Error("session start failed", "error", err)
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

// End handles DELETE /api/session. It discards all trip data of the session
// and clears the cookie. Ending without a session is not an error.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.cookieSession(r); ok {
		if err := h.svc.End(r.Context(), id); err != nil {
			slog.Error("session end failed", "error", err, "session_id", id)
			writeError(w, http.StatusInternalServerError, "end_failed")
			return
		}
	}
	session.ClearCookie(w, h.cfg.Secure)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *SessionHandler) cookieSession(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return "", false
	}
	id, err := session.VerifyToken(cookie.Value, h.cfg.Secret)
	if err != nil {
		return "", false
	}
	return id, true
}

// writeSessionError maps service errors shared by the trip handlers.
func writeSessionError(w http.ResponseWriter, err error, op, sessionID string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		writeError(w, http.StatusGone, err.Error())
	default:
		slog.Error(op+" failed", "error", err, "session_id", sessionID)
		writeError(w, http.StatusInternalServerError, op+"_failed")
	}
}
