package deposit

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/deposits"
)

// handleServiceError converts deposit service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deposits.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, deposits.ErrAccountNotFound):
		handlers.WriteError(w, http.StatusNotFound, "AccountNotFound", "Deposit account not found")
	default:
		log.Printf("deposit handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
