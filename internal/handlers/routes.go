package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/events-app/events-api/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, cfg *config.Config, eventHandler *EventHandler, registrationHandler *RegistrationHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(CORS(cfg.FrontendURL))
	}

	// Initialize Huma API
	apiConfig := huma.DefaultConfig("Events API", "1.0.0")
	api := humachi.New(r, apiConfig)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/events", eventHandler.HandleCreateEvent, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/events", eventHandler.HandleListEvents)
	huma.Get(api, "/events/{id}", eventHandler.HandleGetEvent)
	huma.Put(api, "/events/{id}", eventHandler.HandleUpdateEvent)
	huma.Delete(api, "/events/{id}", eventHandler.HandleDeleteEvent, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusNoContent
	})
	huma.Post(api, "/events/{id}/register", registrationHandler.HandleRegister, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
}
