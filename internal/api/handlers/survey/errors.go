package survey

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/surveys"
)

// handleServiceError converts survey service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, surveys.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, surveys.ErrSurveyNotFound):
		handlers.WriteError(w, http.StatusNotFound, "SurveyNotFound", "Survey not found")
	case errors.Is(err, surveys.ErrSurveyClosed):
		handlers.WriteError(w, http.StatusForbidden, "SurveyClosed", "Survey is not open for responses")
	case errors.Is(err, surveys.ErrAlreadyResponded):
		handlers.WriteError(w, http.StatusConflict, "AlreadyResponded", "A response has already been recorded for this member")
	case errors.Is(err, surveys.ErrUnknownQuestion):
		handlers.WriteError(w, http.StatusBadRequest, "UnknownQuestion", err.Error())
	case errors.Is(err, surveys.ErrUnknownChoice):
		handlers.WriteError(w, http.StatusBadRequest, "UnknownChoice", err.Error())
	case errors.Is(err, surveys.ErrMissingRequired):
		handlers.WriteError(w, http.StatusBadRequest, "MissingRequired", err.Error())
	default:
		log.Printf("survey handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
