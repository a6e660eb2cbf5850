package deposit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/deposits"
)

// DepositHandler serves the logged-in member's deposit records.
type DepositHandler struct {
	service deposits.Service
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(service deposits.Service) *DepositHandler {
	return &DepositHandler{service: service}
}

// HandleListAccounts lists the member's deposit accounts
// GET /api/v1/deposit
func (h *DepositHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	accounts, err := h.service.ListAccounts(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if accounts == nil {
		accounts = []deposits.Account{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

// HandleGetAccount returns one deposit account
// GET /api/v1/deposit/{acctNo}
func (h *DepositHandler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	acctNo := chi.URLParam(r, "acctNo")

	account, err := h.service.GetAccount(r.Context(), memberNo, acctNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, account)
}

// HandleLedger returns the account's subsidiary ledger
// GET /api/v1/deposit/{acctNo}/ledger
func (h *DepositHandler) HandleLedger(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	acctNo := chi.URLParam(r, "acctNo")

	entries, err := h.service.GetLedger(r.Context(), memberNo, acctNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []deposits.LedgerEntry{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// HandleTimeDeposits lists the member's time deposit certificates
// GET /api/v1/deposit/time-deposits
func (h *DepositHandler) HandleTimeDeposits(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	certs, err := h.service.ListTimeDeposits(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if certs == nil {
		certs = []deposits.TimeDeposit{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"timeDeposits": certs})
}
