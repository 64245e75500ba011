package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all genetics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/genetics", func(r chi.Router) {
		r.Get("/populations", h.HandleListPopulations)
		r.Get("/distance", h.HandleGetDistance)
	})
}
