package routes

import (
	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers/member"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/credit"
	"CoopLink/internal/core/members"
)

// RegisterMemberRoutes registers membership master endpoints under
// /api/v1/member. All endpoints require a logged-in member; search is
// reserved for the election committee screens.
func RegisterMemberRoutes(r chi.Router, service members.Service, creditService credit.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	handler := member.NewMemberHandler(service, creditService)

	r.Route("/api/v1/member", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/profile", handler.HandleGetProfile)
		r.Get("/membership-age", handler.HandleMembershipAge)
		r.Get("/dividend", handler.HandleDividend)
		r.Get("/credit-history", handler.HandleCreditHistory)
		r.With(authMiddleware.RequireElecom).Get("/search", handler.HandleSearch)
	})
}
