/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the browser frontend

AUTHENTICATION:
  /api/auth/login is the only open route. Everything else requires a
  valid bearer session token; decision and admin routes additionally
  gate on role.

SEE ALSO:
  - handlers.go: Handler implementations
  - authn.go: Session token middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/campus/leaveflow/workflow"
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
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Post("/auth/logout", h.Logout)
			r.Get("/auth/me", h.Me)
			r.Get("/notifications", h.ListNotifications)

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.ListLeaves)

				r.With(requireRole(workflow.RoleStaff)).
					Post("/", h.SubmitLeave)

				r.With(requireRole(workflow.RoleHOD, workflow.RolePrincipal)).
					Get("/pending", h.ListPending)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(requireRole(workflow.RoleHOD, workflow.RolePrincipal))
					r.Post("/approve", h.ApproveLeave)
					r.Post("/reject", h.RejectLeave)
				})
			})

			r.With(requireRole(workflow.RoleAdmin)).
				Get("/admin/summary", h.GetSummary)
		})
	})

	return r
}
