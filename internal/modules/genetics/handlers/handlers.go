// Package handlers provides HTTP handlers for the genetic-distance
// widget.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/atlas/internal/modules/genetics"
)

// Handler handles genetics HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new genetics handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "genetics").Logger(),
	}
}

// HandleListPopulations handles GET /api/genetics/populations
func (h *Handler) HandleListPopulations(w http.ResponseWriter, r *http.Request) {
	populations := genetics.Populations()

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"populations": populations,
			"count":       len(populations),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetDistance handles GET /api/genetics/distance?from=&to=
func (h *Handler) HandleGetDistance(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to parameters are required", http.StatusBadRequest)
		return
	}

	distance, err := genetics.Distance(from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"from":     from,
			"to":       to,
			"distance": distance,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
