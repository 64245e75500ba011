// Package handlers provides HTTP handlers for the correlation page.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/atlas/internal/clients/sparql"
	"github.com/aristath/atlas/internal/modules/correlation"
)

// Handler handles correlation HTTP requests
type Handler struct {
	service *correlation.Service
	log     zerolog.Logger
}

// NewHandler creates a new correlation handler
func NewHandler(service *correlation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "correlation").Logger(),
	}
}

// HandleGetCorrelation handles GET /api/correlation?x=&y=&scale=
// Both metric parameters are required; scale=log switches the axes to
// log10. Unknown metric names answer 400.
func (h *Handler) HandleGetCorrelation(w http.ResponseWriter, r *http.Request) {
	xMetric := r.URL.Query().Get("x")
	yMetric := r.URL.Query().Get("y")
	if xMetric == "" || yMetric == "" {
		http.Error(w, "x and y metric parameters are required", http.StatusBadRequest)
		return
	}
	logScale := r.URL.Query().Get("scale") == "log"

	points, stats, err := h.service.Points(r.Context(), xMetric, yMetric, logScale)
	if err != nil {
		h.log.Warn().Err(err).Str("x", xMetric).Str("y", yMetric).Msg("Correlation failed")
		// Upstream fetch trouble is the server's problem, a bad metric
		// name is the caller's.
		var fetchErr *sparql.FetchError
		if errors.As(err, &fetchErr) {
			http.Error(w, "Upstream data source unavailable", http.StatusBadGateway)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"x":      xMetric,
			"y":      yMetric,
			"points": points,
			"stats":  stats,
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
