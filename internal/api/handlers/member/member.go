package member

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/credit"
	"CoopLink/internal/core/members"
)

// MemberHandler serves membership master lookups for the logged-in
// member.
type MemberHandler struct {
	service members.Service
	credit  credit.Service
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(service members.Service, creditService credit.Service) *MemberHandler {
	return &MemberHandler{service: service, credit: creditService}
}

// HandleGetProfile returns the member's master file record
// GET /api/v1/member/profile
func (h *MemberHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	profile, err := h.service.GetProfile(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleMembershipAge returns years and months since joining
// GET /api/v1/member/membership-age
func (h *MemberHandler) HandleMembershipAge(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	age, err := h.service.GetMembershipAge(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, age)
}

// HandleDividend returns the dividend and patronage posting for a year
// GET /api/v1/member/dividend?year=2025
func (h *MemberHandler) HandleDividend(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	year := 0
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "year must be a number")
			return
		}
		year = parsed
	}

	summary, err := h.service.GetDividend(r.Context(), memberNo, year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, summary)
}

// HandleSearch finds regular active members by number or name. Used by
// the committee screens when registering candidates.
// GET /api/v1/member/search?q=...&limit=25
func (h *MemberHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a number")
			return
		}
		limit = parsed
	}

	results, err := h.service.SearchRegularActive(r.Context(), query, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if results == nil {
		results = []members.Member{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": results})
}

// HandleCreditHistory returns the member's own store-credit postings
// GET /api/v1/member/credit-history?from=2026-01-01&to=2026-03-31
//
// Dates default to the last three months when omitted.
func (h *MemberHandler) HandleCreditHistory(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	from, ok := parseDateParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r, "to")
	if !ok {
		return
	}

	records, err := h.credit.GetHistory(r.Context(), memberNo, from, to)
	if err != nil {
		if errors.Is(err, credit.ErrInvalidInput) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return
		}
		handleServiceError(w, err)
		return
	}
	if records == nil {
		records = []credit.Record{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": records})
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
