package auth

import (
	"encoding/json"
	"net/http"

	"CoopLink/internal/api/handlers"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/accounts"
)

// PasswordHandler handles the password reset and change flows
type PasswordHandler struct {
	service accounts.Service
}

// NewPasswordHandler creates a new password handler
func NewPasswordHandler(service accounts.Service) *PasswordHandler {
	return &PasswordHandler{service: service}
}

// HandleForgotPassword mails a reset link. Always answers 200 so the
// endpoint does not reveal which accounts exist.
// POST /api/v1/auth/forgot-password
//
// Request body: { "memberNo": "..." }
func (h *PasswordHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberNo string `json:"memberNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.MemberNo); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If the account exists, a reset link has been sent",
	})
}

// HandleResetPassword sets a new password using a mailed reset token
// POST /api/v1/auth/reset-password
//
// Request body: { "token": "...", "password": "..." }
func (h *PasswordHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Token == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "token is required")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// HandleChangePassword changes the authenticated member's password
// POST /api/v1/auth/change-password
//
// Request body: { "oldPassword": "...", "newPassword": "..." }
func (h *PasswordHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	memberNo := middleware.GetMemberNo(r)
	if memberNo == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(r.Context(), memberNo, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
