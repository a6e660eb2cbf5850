package auth

import (
	"encoding/json"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/core/accounts"
)

// RegisterHandler handles portal account registration
type RegisterHandler struct {
	service accounts.Service
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(service accounts.Service) *RegisterHandler {
	return &RegisterHandler{service: service}
}

// HandleRegister creates a pending account and mails an activation link
// POST /api/v1/auth/register
//
// Request body: { "memberNo": "...", "email": "...", "password": "..." }
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounts.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"memberNo": user.MemberNo,
		"email":    user.Email,
		"status":   user.Status,
	})
}

// HandleActivate flips a pending account to active
// POST /api/v1/auth/activate
//
// Request body: { "token": "..." }
func (h *RegisterHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Token == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "token is required")
		return
	}

	user, err := h.service.Activate(r.Context(), req.Token)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"memberNo": user.MemberNo,
		"status":   user.Status,
	})
}

// HandleResendActivation mails a fresh activation link to a pending
// account
// POST /api/v1/auth/resend-activation
//
// Request body: { "memberNo": "..." }
func (h *RegisterHandler) HandleResendActivation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberNo string `json:"memberNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.ResendActivation(r.Context(), req.MemberNo); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Activation link sent",
	})
}

// HandleCheckMember answers the signup page's existence checks
// GET /api/v1/auth/check-member?memberNo=...
func (h *RegisterHandler) HandleCheckMember(w http.ResponseWriter, r *http.Request) {
	check, err := h.service.CheckMember(r.Context(), r.URL.Query().Get("memberNo"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, check)
}
