package handler

import (
	"net/http"

	"github.com/tripplanner/backend/pkg/session"
)

// Deps are the pieces the API is built from.
type Deps struct {
	Base      *Handler
	Sessions  SessionLifecycle
	Itinerary *ItineraryHandler
	Expenses  *ExpenseHandler
	Cookie    session.Config
	Limiter   *RateLimiter // optional; guards write routes
}

// Routes builds the API mux. Trip routes run behind the session middleware.
func Routes(d Deps) http.Handler {
	withSession := session.Middleware(d.Sessions, d.Cookie)
	limited := func(next http.Handler) http.Handler {
		if d.Limiter == nil {
			return next
		}
		return d.Limiter.Middleware(next)
	}
	sessionHandler := NewSessionHandler(d.Sessions, d.Cookie)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", d.Base.Health)
	mux.HandleFunc("GET /api/convert", Convert)

	mux.Handle("POST /api/session", limited(http.HandlerFunc(sessionHandler.Start)))
	mux.HandleFunc("DELETE /api/session", sessionHandler.End)

	mux.Handle("GET /api/itinerary", withSession(http.HandlerFunc(d.Itinerary.List)))
	mux.Handle("PUT /api/itinerary", limited(withSession(http.HandlerFunc(d.Itinerary.Replace))))
	mux.Handle("GET /api/itinerary/export", withSession(http.HandlerFunc(d.Itinerary.Export)))

	mux.Handle("GET /api/expenses", withSession(http.HandlerFunc(d.Expenses.List)))
	mux.Handle("POST /api/expenses", limited(withSession(http.HandlerFunc(d.Expenses.Add))))

	return RequestLogger(SecurityHeaders(d.Base.CORS(mux)))
}
