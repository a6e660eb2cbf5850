package survey

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/surveys"
)

// SurveyHandler serves member-facing survey endpoints.
type SurveyHandler struct {
	service surveys.Service
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(service surveys.Service) *SurveyHandler {
	return &SurveyHandler{service: service}
}

// HandleListOpen lists surveys currently accepting responses
// GET /api/v1/survey
func (h *SurveyHandler) HandleListOpen(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListOpen(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		result = []surveys.Survey{}
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"surveys": result})
}

// HandleGetSurvey returns one survey with its questions and choices
// GET /api/v1/survey/{surveyId}
func (h *SurveyHandler) HandleGetSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}

	survey, err := h.service.GetSurvey(r.Context(), surveyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, survey)
}

// HandleHasResponded reports whether the member already answered
// GET /api/v1/survey/{surveyId}/has-responded
func (h *SurveyHandler) HandleHasResponded(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}
	memberNo := middleware.GetMemberNo(r)

	responded, err := h.service.HasResponded(r.Context(), surveyID, memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"surveyId":     surveyID,
		"hasResponded": responded,
	})
}

// HandleSubmit stores the member's complete response
// POST /api/v1/survey/{surveyId}/submit
//
// Request body: { "answers": [ { "surveyQid": 1, "choiceIds": [2] }, ... ] }
func (h *SurveyHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := surveyIDParam(w, r)
	if !ok {
		return
	}
	memberNo := middleware.GetMemberNo(r)
	if memberNo == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req struct {
		Answers []surveys.AnswerInput `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	err := h.service.Submit(r.Context(), surveys.SubmitRequest{
		SurveyID: surveyID,
		MemberNo: memberNo,
		Answers:  req.Answers,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"surveyId": surveyID,
		"message":  "Response recorded",
	})
}

func surveyIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	surveyID, err := strconv.ParseInt(chi.URLParam(r, "surveyId"), 10, 64)
	if err != nil || surveyID <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "surveyId must be a positive number")
		return 0, false
	}
	return surveyID, true
}
