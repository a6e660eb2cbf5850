package loan

import (
	"errors"
	"log"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/loans"
)

// handleServiceError converts loan service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loans.ErrInvalidInput):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, loans.ErrLoanNotFound), errors.Is(err, loans.ErrNotLoanOwner):
		handlers.WriteError(w, http.StatusNotFound, "LoanNotFound", "Loan not found")
	case errors.Is(err, loans.ErrTypeNotFound):
		handlers.WriteError(w, http.StatusNotFound, "LoanTypeNotFound", "Loan type not found")
	case errors.Is(err, loans.ErrTypeNotOnline):
		handlers.WriteError(w, http.StatusBadRequest, "LoanTypeNotOnline", "Loan type is not open for online application")
	case errors.Is(err, loans.ErrPendingExists):
		handlers.WriteError(w, http.StatusConflict, "PendingApplicationExists", "A pending application already exists")
	default:
		log.Printf("loan handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
