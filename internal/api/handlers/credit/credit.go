package credit

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/credit"
)

// CreditHandler serves the credit console: OTP login over SMS and
// credit history lookups behind a session cookie.
type CreditHandler struct {
	service credit.Service
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(service credit.Service) *CreditHandler {
	return &CreditHandler{service: service}
}

// HandleRequestOTP issues a login PIN over SMS
// POST /api/v1/credit/login
//
// Request body: { "username": "..." }
func (h *CreditHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	challenge, err := h.service.RequestOTP(r.Context(), req.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, challenge)
}

// HandleVerifyOTP consumes the PIN and opens a console session
// POST /api/v1/credit/verify
//
// Request body: { "username": "...", "pin": "..." }
func (h *CreditHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		PIN      string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.VerifyOTP(r.Context(), req.Username, req.PIN)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	session, err := GetCookieStore().Get(r, sessionName)
	if err != nil {
		// A stale or tampered cookie still yields a usable new session
		log.Printf("failed to decode credit session, issuing a new one: %v", err)
	}
	session.Values[sessionUserKey] = user.Username
	if err := session.Save(r, w); err != nil {
		log.Printf("failed to save credit session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleLogout drops the console session
// POST /api/v1/credit/logout
func (h *CreditHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := GetCookieStore().Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("failed to clear credit session: %v", err)
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// HandleHistory returns the member's credit history for a date range
// GET /api/v1/credit/history?from=2026-01-01&to=2026-03-31
func (h *CreditHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessionUser(r)
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Credit console login required")
		return
	}

	from, ok := parseDateParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r, "to")
	if !ok {
		return
	}

	creditUser, err := h.service.LookupUser(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	records, err := h.service.GetHistory(r.Context(), creditUser.MemberNo, from, to)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if records == nil {
		records = []credit.Record{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// HandleStores lists partner stores
// GET /api/v1/credit/stores
func (h *CreditHandler) HandleStores(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionUser(r); !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Credit console login required")
		return
	}

	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if stores == nil {
		stores = []credit.Store{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"stores": stores})
}

func (h *CreditHandler) sessionUser(r *http.Request) (string, bool) {
	session, err := GetCookieStore().Get(r, sessionName)
	if err != nil {
		return "", false
	}
	username, ok := session.Values[sessionUserKey].(string)
	return username, ok && username != ""
}

func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
