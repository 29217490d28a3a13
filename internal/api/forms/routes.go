package forms

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the form lifecycle routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/forms", func(r chi.Router) {
		r.Post("/", h.Generate)
		r.Get("/{id}", h.View)
		r.Post("/{id}/values", h.SaveValues)
		r.Post("/{id}/submit", h.Submit)
		r.Get("/{id}/export", h.Export)
		r.Post("/{id}/reset", h.Reset)
	})
}
