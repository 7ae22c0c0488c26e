package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/4the-win/go-party-weekend/internal/api/contact"
	"github.com/4the-win/go-party-weekend/internal/api/event"
	"github.com/4the-win/go-party-weekend/internal/api/party"
	"github.com/4the-win/go-party-weekend/internal/api/wizard"
)

// Config contains the handlers the router mounts.
type Config struct {
	WizardHandler  *wizard.Handler
	PartyHandler   *party.Handler
	EventHandler   *event.Handler
	ContactHandler *contact.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "https://4the.win"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		cfg.WizardHandler.RegisterRoutes(r)

		r.Get("/events", cfg.EventHandler.ListEvents)
		r.Get("/events/{event}/parties", cfg.PartyHandler.GetPartiesByEvent)
		r.Get("/parties/events", cfg.PartyHandler.GetAvailableEvents)

		r.Post("/contact", cfg.ContactHandler.Submit)
	})

	return r
}
