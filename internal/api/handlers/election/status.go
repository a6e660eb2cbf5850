package election

import (
	"net/http"
	"strings"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/photos"
)

// StatusHandler serves turnout counts, tallies and candidate photos.
type StatusHandler struct {
	service elections.Service
	admin   *AdminHandler
	photos  *photos.Store
}

// NewStatusHandler creates a new election status handler. It shares
// year resolution with the admin handler.
func NewStatusHandler(service elections.Service, admin *AdminHandler, photoStore *photos.Store) *StatusHandler {
	return &StatusHandler{service: service, admin: admin, photos: photoStore}
}

// HandleStatus returns turnout counts for the election dashboard
// GET /api/v1/election/status?year=2026
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	year, ok := h.admin.yearParam(w, r)
	if !ok {
		return
	}

	counts, err := h.service.Status(r.Context(), year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, counts)
}

// HandleResults returns the per-candidate tally, grouped by position
// GET /api/v1/election/results?year=2026
func (h *StatusHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	year, ok := h.admin.yearParam(w, r)
	if !ok {
		return
	}

	results, err := h.service.Results(r.Context(), year)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if results == nil {
		results = []elections.ResultRow{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// HandlePhoto serves a stored candidate photo
// GET /api/v1/election/candidates/photos/{file}
func (h *StatusHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	memberNo := strings.TrimSuffix(file, ".jpg")

	path, err := h.photos.Path(memberNo)
	if err != nil {
		handlers.WriteError(w, http.StatusNotFound, "PhotoNotFound", "No photo on file")
		return
	}

	http.ServeFile(w, r, path)
}
