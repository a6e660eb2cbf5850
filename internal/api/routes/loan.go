package routes

import (
	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers/loan"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/loans"
)

// RegisterLoanRoutes registers loan endpoints under /api/v1/loan.
func RegisterLoanRoutes(r chi.Router, service loans.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	handler := loan.NewLoanHandler(service)

	r.Route("/api/v1/loan", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", handler.HandleListLoans)
		// Declared before the loanNo wildcard so chi matches them first
		r.Get("/types", handler.HandleLoanTypes)
		r.Get("/applications", handler.HandleApplications)
		r.Post("/applications", handler.HandleApply)
		r.Get("/{loanNo}", handler.HandleGetLoan)
		r.Get("/{loanNo}/ledger", handler.HandleLedger)
		r.Get("/{loanNo}/amortization", handler.HandleAmortization)
	})
}
