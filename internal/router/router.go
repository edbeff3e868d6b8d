package router

import (
	"net/http"

	"churro-kiosk/internal/handler"
	"churro-kiosk/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the facade router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	sessionHandler *handler.SessionHandler,
	catalogHandler *handler.CatalogHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Put("/", sessionHandler.Put)
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Delete)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.Get)
			r.Post("/refresh", catalogHandler.Refresh)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Get)
			r.Post("/start", checkoutHandler.Start)
			r.Post("/confirm", checkoutHandler.Confirm)
			r.Post("/ack", checkoutHandler.Acknowledge)
			r.Post("/cancel", checkoutHandler.Cancel)
		})
	})

	return r
}
