/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLog: zerolog request logging
  4. CORS:       Cross-origin requests for operational tooling

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog(h))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Calendar routes
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/day/{date}", h.GetDayInfo)
			r.Get("/day/{date}/next-working-day", h.GetNextWorkingDay)
			r.Get("/day/{date}/previous-working-day", h.GetPreviousWorkingDay)
			r.Get("/range", h.GetRange)
			r.Post("/add-working-days", h.AddWorkingDays)
			r.Get("/holidays", h.ListHolidays)
			r.Put("/custom-holidays", h.UpdateCustomHolidays)
			r.Get("/version", h.GetVersion)
		})

		// Deadline routes
		r.Route("/deadlines", func(r chi.Router) {
			r.Post("/calculate", h.Calculate)
			r.Post("/validate", h.Validate)
			r.Get("/rules", h.ListRules)
			r.Get("/rules/match", h.MatchRule)
		})
	})

	return r
}

// requestLog logs one structured line per request.
func requestLog(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			h.Log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
