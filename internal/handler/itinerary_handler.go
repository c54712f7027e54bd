package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tripplanner/backend/internal/model"
	"github.com/tripplanner/backend/internal/service"
	"github.com/tripplanner/backend/pkg/session"
)

// ExportFileName is the download name of the itinerary CSV.
const ExportFileName = "seoul_trip_plan.csv"

// ItineraryHandler serves the trip table of the caller's session.
type ItineraryHandler struct {
	svc service.ItineraryService
}

// NewItineraryHandler creates an ItineraryHandler.
func NewItineraryHandler(svc service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{svc: svc}
}

// List handles GET /api/itinerary.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}
	view, err := h.svc.List(r.Context(), id)
	if err != nil {
		writeSessionError(w, err, "itinerary_list", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Replace handles PUT /api/itinerary. The body carries the whole edited
// table; added, removed and edited rows all arrive this way.
func (h *ItineraryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}

	var req struct {
		Entries []model.ItineraryEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	view, err := h.svc.Replace(r.Context(), id, req.Entries)
	if err != nil {
		writeSessionError(w, err, "itinerary_replace", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Export handles GET /api/itinerary/export and returns the table as a CSV download.
func (h *ItineraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}
	data, err := h.svc.Export(r.Context(), id)
	if err != nil {
		writeSessionError(w, err, "itinerary_export", id)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
