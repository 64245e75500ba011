package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all atlas routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/atlas", func(r chi.Router) {
		r.Get("/status", h.HandleGetStatus)
		r.Post("/load", h.HandleLoad)
		r.Post("/retry", h.HandleRetry)
		r.Get("/continents", h.HandleListContinents)
		r.Get("/continents/{name}", func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "name")
			h.HandleGetContinent(w, r, name)
		})
		r.Get("/countries/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			h.HandleGetCountry(w, r, id)
		})
	})
}
