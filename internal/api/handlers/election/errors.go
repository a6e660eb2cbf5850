package election

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/sysconfig"
	"CoopLink/internal/photos"
)

// handleServiceError converts election service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, elections.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, elections.ErrAlreadyVoted):
		handlers.WriteError(w, http.StatusConflict, "AlreadyVoted", "A ballot has already been cast for this member")
	case errors.Is(err, elections.ErrUnknownPosition):
		handlers.WriteError(w, http.StatusBadRequest, "UnknownPosition", "Ballot references a position that is not contested")
	case errors.Is(err, elections.ErrTooManySelections):
		handlers.WriteError(w, http.StatusBadRequest, "TooManySelections", "Ballot selects more candidates than the position allows")
	case errors.Is(err, elections.ErrInvalidCandidate):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidCandidate", "Ballot references a candidate not registered for this election")
	case errors.Is(err, elections.ErrCandidateMismatch):
		handlers.WriteError(w, http.StatusBadRequest, "CandidateMismatch", "Ballot lists a candidate under the wrong position")
	case errors.Is(err, elections.ErrBallotNotFound):
		handlers.WriteError(w, http.StatusNotFound, "BallotNotFound", "No ballot on file for this member")
	case errors.Is(err, elections.ErrPositionExists):
		handlers.WriteError(w, http.StatusConflict, "AlreadyExists", "Position already exists")
	case errors.Is(err, elections.ErrPositionNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PositionNotFound", "Position not found")
	case errors.Is(err, elections.ErrCandidateExists):
		handlers.WriteError(w, http.StatusConflict, "AlreadyExists", "Candidate is already registered")
	case errors.Is(err, elections.ErrCandidateNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CandidateNotFound", "Candidate not found")
	case errors.Is(err, sysconfig.ErrNotFound):
		handlers.WriteError(w, http.StatusConflict, "ElectionNotConfigured", "No election window has been configured")
	case errors.Is(err, sysconfig.ErrInvalidValue):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		log.Printf("election handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}

// handlePhotoError converts photo store errors to HTTP responses
func handlePhotoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, photos.ErrTooLarge):
		handlers.WriteError(w, http.StatusRequestEntityTooLarge, "PhotoTooLarge", err.Error())
	case errors.Is(err, photos.ErrUnsupportedFormat):
		handlers.WriteError(w, http.StatusBadRequest, "UnsupportedFormat", err.Error())
	default:
		log.Printf("photo store error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
