package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"bizchat/internal/handlers"
	"bizchat/internal/middleware"
)

func New(relayHandler *handlers.RelayHandler, allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(allowedOrigin))

	r.MethodNotAllowed(relayHandler.MethodNotAllowed)

	// Health check
	r.Get("/health", handlers.Health)

	// Relay
	r.Post("/", relayHandler.Chat)

	return r
}
