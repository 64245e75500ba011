// Package handlers provides HTTP handlers for the atlas data layer.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/atlas/internal/modules/atlas"
)

// Handler handles atlas HTTP requests
type Handler struct {
	store *atlas.Store
	log   zerolog.Logger
}

// NewHandler creates a new atlas handler
func NewHandler(store *atlas.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "atlas").Logger(),
	}
}

// HandleGetStatus handles GET /api/atlas/status
// Reports the store's load state without triggering a load.
func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.store.Status()

	response := map[string]interface{}{
		"data": status,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleLoad handles POST /api/atlas/load
// Brings the store to Ready, waiting on any in-flight load. Returns the
// resulting status either way; a failed load answers 502 so the client
// can distinguish upstream trouble from its own request.
func (h *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	err := h.store.EnsureLoaded(r.Context())

	status := h.store.Status()
	response := map[string]interface{}{
		"data": status,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	if err != nil {
		h.log.Warn().Err(err).Msg("Load failed")
		h.writeJSON(w, http.StatusBadGateway, response)
		return
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleRetry handles POST /api/atlas/retry
// Clears a remembered failure and re-fetches only the missing domains.
func (h *Handler) HandleRetry(w http.ResponseWriter, r *http.Request) {
	err := h.store.Retry(r.Context())

	status := h.store.Status()
	response := map[string]interface{}{
		"data": status,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	if err != nil {
		h.log.Warn().Err(err).Msg("Retry failed")
		h.writeJSON(w, http.StatusBadGateway, response)
		return
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleListContinents handles GET /api/atlas/continents
// Lists the continents known to the membership table. Does not require
// the domain tables, so it works before any load.
func (h *Handler) HandleListContinents(w http.ResponseWriter, r *http.Request) {
	continents := h.store.Continents()

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"continents": continents,
			"count":      len(continents),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetContinent handles GET /api/atlas/continents/{name}
// Demand-loads the domain tables, then folds the continent's members.
// When the load has failed the summary is still rendered from whatever
// tables survived, with the load error alongside, so the panel can show
// its title and partial figures instead of nothing.
func (h *Handler) HandleGetContinent(w http.ResponseWriter, r *http.Request, name string) {
	loadErr := h.store.EnsureLoaded(r.Context())

	summary, err := h.store.SummarizeContinent(name)
	if err != nil {
		http.Error(w, "Unknown continent", http.StatusNotFound)
		return
	}

	data := map[string]interface{}{
		"summary": summary,
	}
	if loadErr != nil {
		data["load_error"] = loadErr.Error()
	}

	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetCountry handles GET /api/atlas/countries/{id}
// Probes the three domain tables for a single country. Absent domains
// are omitted from the payload rather than rendered as zeros.
func (h *Handler) HandleGetCountry(w http.ResponseWriter, r *http.Request, idParam string) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "Country id must be an ISO 3166-1 numeric code", http.StatusBadRequest)
		return
	}

	loadErr := h.store.EnsureLoaded(r.Context())

	detail := h.store.LookupCountry(id)

	data := map[string]interface{}{
		"country": detail,
	}
	if name := h.store.CountryName(id); name != "" {
		data["name"] = name
	}
	if loadErr != nil {
		data["load_error"] = loadErr.Error()
	}

	response := map[string]interface{}{
		"data": data,
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
