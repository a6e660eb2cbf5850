package survey

import (
	"encoding/json"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/surveys"
)

// AdminHandler serves the survey committee screens.
type AdminHandler struct {
	service surveys.Service
}

// NewAdminHandler creates a new survey admin handler
func NewAdminHandler(service surveys.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// HandleListAll returns every survey with counts and lifecycle state
// GET /api/v1/survey/all
func (h *AdminHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if summaries == nil {
		summaries = []surveys.SurveySummary{}
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"surveys": summaries})
}

// HandleCreate publishes a new survey definition
// POST /api/v1/survey
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var survey surveys.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.CreateSurvey(r.Context(), &survey)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate rewrites a survey definition
// PUT /api/v1/survey/{surveyId}
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}

	var survey surveys.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	survey.SurveyID = surveyID

	if err := h.service.UpdateSurvey(r.Context(), &survey); err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, survey)
}

// HandleDelete removes a survey and its responses
// DELETE /api/v1/survey/{surveyId}
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSurvey(r.Context(), surveyID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResults returns per-choice response counts
// GET /api/v1/survey/{surveyId}/results
func (h *AdminHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}

	results, err := h.service.Results(r.Context(), surveyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if results == nil {
		results = []surveys.ResultRow{}
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
