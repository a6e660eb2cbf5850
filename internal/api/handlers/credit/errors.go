package credit

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/credit"
	"CoopLink/internal/sms"
)

// handleServiceError converts credit service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, credit.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, credit.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "No credit user found for that username")
	case errors.Is(err, credit.ErrUserDisabled):
		handlers.WriteError(w, http.StatusForbidden, "UserDisabled", "Credit access has been disabled for this user")
	case errors.Is(err, credit.ErrNoMobile):
		handlers.WriteError(w, http.StatusConflict, "NoMobileNumber", "No mobile number on file; contact the credit department")
	case errors.Is(err, credit.ErrOTPNotFound):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidPIN", "No pending PIN; request a new one")
	case errors.Is(err, credit.ErrOTPExpired):
		handlers.WriteError(w, http.StatusUnauthorized, "ExpiredPIN", "PIN has expired; request a new one")
	case errors.Is(err, credit.ErrOTPMismatch):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidPIN", "PIN does not match")
	case errors.Is(err, sms.ErrNotConfigured):
		handlers.WriteError(w, http.StatusServiceUnavailable, "SMSUnavailable", "SMS delivery is not configured on this deployment")
	default:
		log.Printf("credit handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
