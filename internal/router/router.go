// Package router sets up all HTTP routes and middleware chains for the
// promptsite server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptsite/internal/handlers"
	"promptsite/internal/middleware"
)

// New creates and returns the configured Chi router. limiter guards the
// generation endpoint, the only route that spends AI calls.
func New(api *handlers.API, public *handlers.Public, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	// JSON API
	r.With(limiter.Middleware).Post("/generate", api.Generate)
	r.Get("/sites", api.ListSites)

	// Pages
	r.Get("/", public.Home)
	r.Route("/website/{slug}", func(r chi.Router) {
		r.Get("/", public.Website)
		r.Get("/qr.png", public.QRCode)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
