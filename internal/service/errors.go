package service

import "github.com/tripplanner/backend/pkg/session"

// goneError marks a session that no longer exists. It matches session.ErrGone
// so the cookie middleware can replace the session.
type goneError string

func (e goneError) Error() string { return string(e) }

func (e goneError) Is(target error) bool { return target == session.ErrGone }

var (
	// ErrSessionNotFound is returned when a session id is unknown or already ended.
	ErrSessionNotFound error = goneError("session_not_found")
	// ErrSessionExpired is returned when a session outlived its TTL.
	ErrSessionExpired error = goneError("session_expired")
)
