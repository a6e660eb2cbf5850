package auth

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/accounts"
)

// handleServiceError converts account service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounts.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, accounts.ErrMemberNotFound):
		handlers.WriteError(w, http.StatusNotFound, "MemberNotFound", "No member found for that member number")
	case errors.Is(err, accounts.ErrAccountExists):
		handlers.WriteError(w, http.StatusConflict, "AlreadyExists", "An account already exists for this member")
	case errors.Is(err, accounts.ErrAccountNotFound):
		handlers.WriteError(w, http.StatusNotFound, "AccountNotFound", "No account found for that member number")
	case errors.Is(err, accounts.ErrAccountNotActive):
		handlers.WriteError(w, http.StatusForbidden, "AccountNotActive", "Account has not been activated")
	case errors.Is(err, accounts.ErrAlreadyActive):
		handlers.WriteError(w, http.StatusConflict, "AlreadyActive", "Account is already activated")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidCredentials", "Invalid member number or password")
	default:
		log.Printf("auth handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
