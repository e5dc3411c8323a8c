/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the payroll frontend

ROUTE GROUPS:
  /api/rates                      Statutory rate lookups
  /api/calculations/*             One endpoint per statutory element
  /api/employees/{id}/pay-items   Pay history feed for AWE
  /api/employees/{id}/schedules   Persisted calculation snapshots

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/rates", h.GetRates)

		r.Route("/calculations", func(r chi.Router) {
			r.Post("/maternity", h.CalculateMaternity)
			r.Post("/adoption", h.CalculateAdoption)
			r.Post("/paternity", h.CalculatePaternity)
			r.Post("/shared-parental", h.CalculateSharedParental)
			r.Post("/parental-bereavement", h.CalculateParentalBereavement)
			r.Post("/ssp", h.CalculateSSP)
			r.Post("/holiday-pay", h.CalculateHolidayPay)
		})

		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/pay-items", h.ListPayItems)
			r.Post("/pay-items", h.AddPayItems)
			r.Get("/schedules", h.ListSchedules)
		})
	})

	return r
}
