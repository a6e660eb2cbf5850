package routes

import (
	"github.com/go-chi/chi/v5"

	"CoopLink/internal/api/handlers/deposit"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/deposits"
)

// RegisterDepositRoutes registers deposit endpoints under
// /api/v1/deposit. The time-deposits route is declared before the
// acctNo wildcard so it does not get captured by it.
func RegisterDepositRoutes(r chi.Router, service deposits.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	handler := deposit.NewDepositHandler(service)

	r.Route("/api/v1/deposit", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", handler.HandleListAccounts)
		r.Get("/time-deposits", handler.HandleTimeDeposits)
		r.Get("/{acctNo}", handler.HandleGetAccount)
		r.Get("/{acctNo}/ledger", handler.HandleLedger)
	})
}
