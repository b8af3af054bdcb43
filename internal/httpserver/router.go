package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pokedex-service/internal/handlers"
	"pokedex-service/internal/metrics"
	"pokedex-service/internal/middleware"
)

// SetupRouter wires middleware and routes. A nil auth handler disables the
// token gate and the login endpoint.
func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, pokemon *handlers.PokemonHandler, auth *handlers.AuthHandler) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(30 * time.Second)) // request timeout
	r.Use(middleware.MaxBodySize(64 * 1024))    // 64 KB max body

	// routes
	r.Route("/api/v1", func(r chi.Router) {
		if auth != nil {
			r.Post("/login", auth.Login)
		}

		r.Group(func(r chi.Router) {
			if auth != nil {
				r.Use(middleware.Auth(auth.Secret))
			}

			r.Get("/pokemon", pokemon.List)
			r.Get("/pokemon/numbers", pokemon.ListByNumbers)
			r.Get("/pokemon/{id}", pokemon.Detail)
		})
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
