package election

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/sysconfig"
	"CoopLink/internal/photos"
)

// AdminHandler serves the election committee screens: positions,
// candidates and the election window.
type AdminHandler struct {
	service elections.Service
	config  sysconfig.Service
	photos  *photos.Store
}

// NewAdminHandler creates a new election admin handler
func NewAdminHandler(service elections.Service, config sysconfig.Service, photoStore *photos.Store) *AdminHandler {
	return &AdminHandler{service: service, config: config, photos: photoStore}
}

// HandleSetWindow replaces the election window config
// PUT /api/v1/election/config
//
// Request body: { "year": 2026, "from": "2026-03-01", "to": "2026-03-15", "start": true }
func (h *AdminHandler) HandleSetWindow(w http.ResponseWriter, r *http.Request) {
	var window sysconfig.ElectionWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.config.SetElectionWindow(r.Context(), window); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, window)
}

// HandleListElecom returns the election committee access list
// GET /api/v1/election/elecom
func (h *AdminHandler) HandleListElecom(w http.ResponseWriter, r *http.Request) {
	list, err := h.config.ElecomList(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": list.Values()})
}

// HandleAddElecom grants a member committee access
// POST /api/v1/election/elecom
//
// Request body: { "memberNo": "..." }
func (h *AdminHandler) HandleAddElecom(w http.ResponseWriter, r *http.Request) {
	memberNo, ok := decodeMemberNo(w, r)
	if !ok {
		return
	}
	if err := h.config.AddElecomMember(r.Context(), memberNo); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"memberNo": memberNo})
}

// HandleRemoveElecom revokes a member's committee access
// DELETE /api/v1/election/elecom/{memberNo}
func (h *AdminHandler) HandleRemoveElecom(w http.ResponseWriter, r *http.Request) {
	memberNo := chi.URLParam(r, "memberNo")
	if err := h.config.RemoveElecomMember(r.Context(), memberNo); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeMemberNo(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		MemberNo string `json:"memberNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MemberNo == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "memberNo is required")
		return "", false
	}
	return req.MemberNo, true
}

// HandleCreatePosition adds a contested position
// POST /api/v1/election/positions
func (h *AdminHandler) HandleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var p elections.Position
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.CreatePosition(r.Context(), p); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, p)
}

// HandleListPositions lists contested positions
// GET /api/v1/election/positions
func (h *AdminHandler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.ListPositions(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if positions == nil {
		positions = []elections.Position{}
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"positions": positions})
}

// HandleUpdatePosition edits a contested position
// PUT /api/v1/election/positions/{positionId}
func (h *AdminHandler) HandleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var p elections.Position
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	p.PositionID = chi.URLParam(r, "positionId")

	if err := h.service.UpdatePosition(r.Context(), p); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, p)
}

// HandleDeletePosition removes a contested position
// DELETE /api/v1/election/positions/{positionId}
func (h *AdminHandler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePosition(r.Context(), chi.URLParam(r, "positionId")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateCandidate registers a candidate for the year
// POST /api/v1/election/candidates
func (h *AdminHandler) HandleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var c elections.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.CreateCandidate(r.Context(), c); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, c)
}

// HandleListCandidates lists the year's candidates in ballot order
// GET /api/v1/election/candidates?year=2026
func (h *AdminHandler) HandleListCandidates(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	candidates, err := h.service.ListCandidates(r.Context(), year)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if candidates == nil {
		candidates = []elections.CandidateDetail{}
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// HandleUpdateCandidate edits a candidacy
// PUT /api/v1/election/candidates/{candidateId}
func (h *AdminHandler) HandleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var c elections.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	c.CandidateID = chi.URLParam(r, "candidateId")

	if err := h.service.UpdateCandidate(r.Context(), c); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, c)
}

// HandleDeleteCandidate withdraws a candidacy
// DELETE /api/v1/election/candidates/{candidateId}?memberNo=...&year=2026
func (h *AdminHandler) HandleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	memberNo := r.URL.Query().Get("memberNo")

	if err := h.service.DeleteCandidate(r.Context(), chi.URLParam(r, "candidateId"), memberNo, year); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadPhoto stores a candidate's photo, keyed by the
// candidate's member number
// POST /api/v1/election/candidates/{candidateId}/photo?year=2026
//
// Multipart form with a "photo" file field.
func (h *AdminHandler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}

	candidate, err := h.service.GetCandidate(r.Context(), chi.URLParam(r, "candidateId"), year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "photo file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 6<<20))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "failed to read upload")
		return
	}

	name, err := h.photos.Save(candidate.MemberNo, data)
	if err != nil {
		handlePhotoError(w, err)
		return
	}

	candidate.PhotoURL = "/api/v1/election/candidates/photos/" + name
	if err := h.service.UpdateCandidate(r.Context(), *candidate); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"photoUrl": candidate.PhotoURL})
}

func (h *AdminHandler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("year")
	if v == "" {
		window, err := h.config.ElectionWindow(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return 0, false
		}
		return window.Year, true
	}
	year, err := strconv.Atoi(v)
	if err != nil || year <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "year must be a positive number")
		return 0, false
	}
	return year, true
}
