package election

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/sysconfig"
)

// BallotHandler handles ballot submission and lookups for the
// logged-in member.
type BallotHandler struct {
	service elections.Service
	config  sysconfig.Service
}

// NewBallotHandler creates a new ballot handler
func NewBallotHandler(service elections.Service, config sysconfig.Service) *BallotHandler {
	return &BallotHandler{service: service, config: config}
}

// HandleSubmitVote casts the member's ballot for the configured
// election year
// POST /api/v1/election/vote
//
// Request body: { "votes": [ { "positionId": "...", "candidateIds": ["..."] } ] }
func (h *BallotHandler) HandleSubmitVote(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	if memberNo == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	window, err := h.config.ElectionWindow(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if !windowOpen(window, time.Now()) {
		handlers.WriteError(w, http.StatusForbidden, "ElectionClosed", "Voting is not open")
		return
	}

	var req struct {
		Votes []elections.PositionSelection `json:"votes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	receipt, err := h.service.SubmitVote(r.Context(), elections.SubmitVoteRequest{
		Year:     window.Year,
		MemberNo: memberNo,
		Votes:    req.Votes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, receipt)
}

// HandleHasVoted reports whether the member already holds a ballot
// GET /api/v1/election/has-voted
func (h *BallotHandler) HandleHasVoted(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	year, ok := h.electionYear(w, r)
	if !ok {
		return
	}

	voted, err := h.service.HasVoted(r.Context(), memberNo, year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"memberNo": memberNo,
		"year":     year,
		"hasVoted": voted,
	})
}

// HandleGetBallot returns the member's ballot header
// GET /api/v1/election/ballot
func (h *BallotHandler) HandleGetBallot(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	year, ok := h.electionYear(w, r)
	if !ok {
		return
	}

	ballot, err := h.service.GetBallot(r.Context(), memberNo, year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ballot)
}

// HandleListCastVotes returns the member's vote lines with candidate
// detail
// GET /api/v1/election/votes
func (h *BallotHandler) HandleListCastVotes(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)

	year, ok := h.electionYear(w, r)
	if !ok {
		return
	}

	votes, err := h.service.ListCastVotes(r.Context(), memberNo, year)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if votes == nil {
		votes = []elections.CastVote{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"votes": votes})
}

// HandleGetWindow returns the configured election window
// GET /api/v1/election/config
func (h *BallotHandler) HandleGetWindow(w http.ResponseWriter, r *http.Request) {
	window, err := h.config.ElectionWindow(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, window)
}

// electionYear resolves the year query param, defaulting to the
// configured election year.
func (h *BallotHandler) electionYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "year must be a positive number")
			return 0, false
		}
		return year, true
	}

	window, err := h.config.ElectionWindow(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return 0, false
	}
	return window.Year, true
}

// windowOpen applies the committee's switch plus the date range. Dates
// are inclusive and read in the server's timezone.
func windowOpen(window *sysconfig.ElectionWindow, now time.Time) bool {
	if !window.Start {
		return false
	}
	from, err := time.ParseInLocation("2006-01-02", window.From, now.Location())
	if err != nil {
		return false
	}
	to, err := time.ParseInLocation("2006-01-02", window.To, now.Location())
	if err != nil {
		return false
	}
	to = to.AddDate(0, 0, 1)
	return !now.Before(from) && now.Before(to)
}
