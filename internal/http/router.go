package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/gnhen/sports/internal/metrics"
)

// NewRouter registers the API routes.
func NewRouter(handler *Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(LoggingMiddleware(logger, recorder))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/leagues", handler.Leagues)

	r.Route("/scoreboard", func(r chi.Router) {
		r.Get("/", handler.Scoreboard)
		r.Post("/refresh", handler.Refresh)
		r.Get("/{league}/games/{id}", handler.GameDetail)
	})

	return r
}
