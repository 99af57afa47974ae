package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"event-inbox/internal/database"
	"event-inbox/internal/handlers"
)

// NewRouter builds the API router. runner and pusher may be nil on servers
// without the matching credentials; those endpoints then return 503.
func NewRouter(db *database.DB, runner handlers.LaunchRunner, pusher handlers.CalendarPusher, logger *slog.Logger) http.Handler {
	healthHandler := handlers.NewHealthHandler(db)
	emailHandler := handlers.NewEmailHandler(db)
	suggestedHandler := handlers.NewSuggestedEventHandler(db)
	savedHandler := handlers.NewSavedEventHandler(db)
	launchHandler := handlers.NewLaunchHandler(db, runner)
	calendarHandler := handlers.NewCalendarHandler(db, pusher)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)

		r.Post("/launch", launchHandler.Launch)
		r.Get("/launches", launchHandler.GetLaunches)

		r.Get("/emails", emailHandler.GetEmails)
		r.Get("/emails/{id}", emailHandler.GetEmail)

		r.Route("/suggested-events", func(r chi.Router) {
			r.Get("/", suggestedHandler.GetSuggestedEvents)
			r.Post("/bulk-accept", suggestedHandler.BulkAccept)
			r.Post("/bulk-reject", suggestedHandler.BulkReject)
			r.Get("/{id}", suggestedHandler.GetSuggestedEvent)
			r.Delete("/{id}", suggestedHandler.DeleteSuggestedEvent)
			r.Post("/{id}/accept", suggestedHandler.AcceptSuggestedEvent)
			r.Post("/{id}/reject", suggestedHandler.RejectSuggestedEvent)
		})

		r.Get("/saved-events", savedHandler.GetSavedEvents)
		r.Post("/saved-events/{id}/sync", calendarHandler.SyncSavedEvent)
	})

	return r
}
