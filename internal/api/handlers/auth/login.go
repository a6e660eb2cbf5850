package auth

import (
	"encoding/json"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/accounts"
)

// LoginHandler handles portal login and token verification
type LoginHandler struct {
	service accounts.Service
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service accounts.Service) *LoginHandler {
	return &LoginHandler{service: service}
}

// HandleLogin authenticates a member and returns an access token
// POST /api/v1/auth/login
//
// Request body: { "memberNo": "...", "password": "..." }
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounts.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleVerify confirms the caller's token is still valid and returns
// the account it belongs to
// GET /api/v1/auth/verify
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	if memberNo == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	user, err := h.service.GetAccount(r.Context(), memberNo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"memberNo": user.MemberNo,
		"email":    user.Email,
		"status":   user.Status,
	})
}
