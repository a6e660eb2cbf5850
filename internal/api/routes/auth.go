package routes

import (
	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers/auth"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/accounts"
)

// RegisterAuthRoutes registers the account registration and login
// endpoints under /api/v1/auth. Credential endpoints sit behind the
// login rate limiter.
func RegisterAuthRoutes(r chi.Router, service accounts.Service, authMiddleware *middleware.MemberAuthMiddleware, loginLimiter *middleware.RateLimiter) {
	registerHandler := auth.NewRegisterHandler(service)
	loginHandler := auth.NewLoginHandler(service)
	passwordHandler := auth.NewPasswordHandler(service)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/register", registerHandler.HandleRegister)
		r.Post("/activate", registerHandler.HandleActivate)
		r.With(loginLimiter.Middleware).Post("/resend-activation", registerHandler.HandleResendActivation)
		r.Get("/check-member", registerHandler.HandleCheckMember)
		r.With(loginLimiter.Middleware).Post("/login", loginHandler.HandleLogin)
		r.With(loginLimiter.Middleware).Post("/forgot-password", passwordHandler.HandleForgotPassword)
		r.Post("/reset-password", passwordHandler.HandleResetPassword)

		r.With(authMiddleware.RequireAuth).Get("/verify", loginHandler.HandleVerify)
		r.With(authMiddleware.RequireAuth).Post("/change-password", passwordHandler.HandleChangePassword)
	})
}
