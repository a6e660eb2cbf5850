package routes

import (
	chi "github.com/go-chi/chi/v5"

	creditHandlers "CoopLink/internal/api/handlers/credit"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/credit"
)

// RegisterCreditRoutes registers the credit console endpoints under
// /api/v1/credit. Login runs over SMS OTP and the rest of the console
// rides the session cookie, so these routes do not use the JWT
// middleware.
func RegisterCreditRoutes(r chi.Router, service credit.Service, loginLimiter *middleware.RateLimiter) {
	handler := creditHandlers.NewCreditHandler(service)

	r.Route("/api/v1/credit", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/login", handler.HandleRequestOTP)
		r.With(loginLimiter.Middleware).Post("/verify", handler.HandleVerifyOTP)
		r.Post("/logout", handler.HandleLogout)
		r.Get("/history", handler.HandleHistory)
		r.Get("/stores", handler.HandleStores)
	})
}
