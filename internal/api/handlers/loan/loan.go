package loan

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/loans"
)

// LoanHandler serves the logged-in member's loan records.
type LoanHandler struct {
	service loans.Service
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(service loans.Service) *LoanHandler {
	return &LoanHandler{service: service}
}

// HandleListLoans lists the member's loans
// GET /api/v1/loan
func (h *LoanHandler) HandleListLoans(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	result, err := h.service.ListLoans(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		result = []loans.Loan{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"loans": result})
}

// HandleGetLoan returns one loan
// GET /api/v1/loan/{loanNo}
func (h *LoanHandler) HandleGetLoan(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	loanNo := chi.URLParam(r, "loanNo")

	loan, err := h.service.GetLoan(r.Context(), memberNo, loanNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, loan)
}

// HandleLedger returns the loan's subsidiary ledger
// GET /api/v1/loan/{loanNo}/ledger
func (h *LoanHandler) HandleLedger(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	loanNo := chi.URLParam(r, "loanNo")

	entries, err := h.service.GetLedger(r.Context(), memberNo, loanNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []loans.LedgerEntry{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// HandleAmortization returns the loan's amortization schedule
// GET /api/v1/loan/{loanNo}/amortization
func (h *LoanHandler) HandleAmortization(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	loanNo := chi.URLParam(r, "loanNo")

	schedule, err := h.service.GetAmortization(r.Context(), memberNo, loanNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if schedule == nil {
		schedule = []loans.Amortization{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"schedule": schedule})
}

// HandleLoanTypes lists products open for online application
// GET /api/v1/loan/types
func (h *LoanHandler) HandleLoanTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListOnlineTypes(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if types == nil {
		types = []loans.LoanType{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"loanTypes": types})
}

// HandleApply files a loan application
// POST /api/v1/loan/applications
//
// Request body: { "loanType": "...", "amount": 0, "termMonths": 0 }
func (h *LoanHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var req loans.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	req.MemberNo = middleware.GetMemberNo(r)

	app, err := h.service.Apply(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, app)
}

// HandleApplications lists the member's applications, optionally
// filtered by status
// GET /api/v1/loan/applications?status=P
func (h *LoanHandler) HandleApplications(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	apps, err := h.service.ListApplications(r.Context(), memberNo, r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if apps == nil {
		apps = []loans.Application{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"applications": apps})
}
