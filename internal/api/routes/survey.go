package routes

import (
	"github.com/go-chi/chi/v5"

	surveyHandlers "CoopLink/internal/api/handlers/survey"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/surveys"
)

// RegisterSurveyRoutes registers the survey endpoints under
// /api/v1/survey. Committee endpoints require the survey admin list.
func RegisterSurveyRoutes(r chi.Router, service surveys.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	handler := surveyHandlers.NewSurveyHandler(service)
	adminHandler := surveyHandlers.NewAdminHandler(service)

	r.Route("/api/v1/survey", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", handler.HandleListOpen)
		// Declared before the surveyId wildcard so chi matches it first
		r.With(authMiddleware.RequireSurveyAdmin).Get("/all", adminHandler.HandleListAll)
		r.Get("/{surveyId}", handler.HandleGetSurvey)
		r.Get("/{surveyId}/has-responded", handler.HandleHasResponded)
		r.Post("/{surveyId}/submit", handler.HandleSubmit)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireSurveyAdmin)

			r.Post("/", adminHandler.HandleCreate)
			r.Put("/{surveyId}", adminHandler.HandleUpdate)
			r.Delete("/{surveyId}", adminHandler.HandleDelete)
			r.Get("/{surveyId}/results", adminHandler.HandleResults)
		})
	})
}
