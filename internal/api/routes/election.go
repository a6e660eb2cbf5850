package routes

import (
	"github.com/go-chi/chi/v5"

	electionHandlers "CoopLink/internal/api/handlers/election"
	"CoopLink/internal/api/middleware"
	"CoopLink/internal/core/elections"
	"CoopLink/internal/core/sysconfig"
	"CoopLink/internal/photos"
)

// RegisterElectionRoutes registers the election endpoints under
// /api/v1/election. Member endpoints require login; committee
// endpoints additionally require elecom membership.
func RegisterElectionRoutes(r chi.Router, service elections.Service, config sysconfig.Service, photoStore *photos.Store, authMiddleware *middleware.MemberAuthMiddleware) {
	ballotHandler := electionHandlers.NewBallotHandler(service, config)
	adminHandler := electionHandlers.NewAdminHandler(service, config, photoStore)
	statusHandler := electionHandlers.NewStatusHandler(service, adminHandler, photoStore)

	r.Route("/api/v1/election", func(r chi.Router) {
		// The landing page shows the window, slate and committee
		// before any login
		r.Get("/candidates/photos/{file}", statusHandler.HandlePhoto)
		r.Get("/config", ballotHandler.HandleGetWindow)
		r.Get("/candidates", adminHandler.HandleListCandidates)
		r.Get("/positions", adminHandler.HandleListPositions)
		r.Get("/elecom", adminHandler.HandleListElecom)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Post("/vote", ballotHandler.HandleSubmitVote)
			r.Get("/has-voted", ballotHandler.HandleHasVoted)
			r.Get("/ballot", ballotHandler.HandleGetBallot)
			r.Get("/votes", ballotHandler.HandleListCastVotes)
			r.Get("/status", statusHandler.HandleStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Use(authMiddleware.RequireElecom)

			r.Put("/config", adminHandler.HandleSetWindow)
			r.Post("/elecom", adminHandler.HandleAddElecom)
			r.Delete("/elecom/{memberNo}", adminHandler.HandleRemoveElecom)
			r.Post("/positions", adminHandler.HandleCreatePosition)
			r.Put("/positions/{positionId}", adminHandler.HandleUpdatePosition)
			r.Delete("/positions/{positionId}", adminHandler.HandleDeletePosition)
			r.Post("/candidates", adminHandler.HandleCreateCandidate)
			r.Put("/candidates/{candidateId}", adminHandler.HandleUpdateCandidate)
			r.Delete("/candidates/{candidateId}", adminHandler.HandleDeleteCandidate)
			r.Post("/candidates/{candidateId}/photo", adminHandler.HandleUploadPhoto)
			r.Get("/results", statusHandler.HandleResults)
		})
	})
}
