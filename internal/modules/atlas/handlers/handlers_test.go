package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/atlas/internal/clients/sparql"
	"github.com/aristath/atlas/internal/events"
	"github.com/aristath/atlas/internal/modules/atlas"
)

// stubClient answers every query with one canned result, or an error
type stubClient struct {
	mu    sync.Mutex
	calls int
	res   *sparql.Result
	err   error
}

func (c *stubClient) Query(ctx context.Context, query string) (*sparql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.res, nil
}

func speciesResult() *sparql.Result {
	res := &sparql.Result{}
	res.Results.Bindings = []sparql.Binding{
		{
			"isoNum":       {Type: "literal", Value: "76"},
			"countryLabel": {Type: "literal", Value: "Brazil"},
			"total":        {Type: "literal", Value: "120"},
			"cr":           {Type: "literal", Value: "5"},
		},
	}
	return res
}

func newTestRouter(client atlas.QueryClient) (*chi.Mux, *atlas.Store) {
	membership := map[int]string{76: "South America", 36: "Oceania"}
	names := map[int]string{76: "Brazil", 36: "Australia"}
	store := atlas.NewStore(client, membership, names, events.NewBus(), zerolog.Nop())

	handler := NewHandler(store, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router, store
}

func decodeData(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok, "response must carry a data envelope")
	return data
}

func TestRegisterRoutes(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	assert.NotEmpty(t, router.Routes())
}

func TestHandleGetStatusDoesNotLoad(t *testing.T) {
	client := &stubClient{res: speciesResult()}
	router, _ := newTestRouter(client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "unloaded", data["state"])
	assert.Zero(t, client.calls, "status must not trigger a load")
}

func TestHandleLoad(t *testing.T) {
	client := &stubClient{res: speciesResult()}
	router, _ := newTestRouter(client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/atlas/load", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "ready", data["state"])
}

func TestHandleLoadUpstreamFailure(t *testing.T) {
	client := &stubClient{err: errors.New("endpoint down")}
	router, _ := newTestRouter(client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/atlas/load", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "failed", data["state"])
	assert.NotEmpty(t, data["error"])
}

func TestHandleRetryAfterFailure(t *testing.T) {
	client := &stubClient{err: errors.New("endpoint down")}
	router, _ := newTestRouter(client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/atlas/load", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// Endpoint recovers
	client.mu.Lock()
	client.err = nil
	client.res = speciesResult()
	client.mu.Unlock()

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/atlas/retry", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "ready", data["state"])
}

func TestHandleListContinents(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/continents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, float64(2), data["count"])
}

func TestHandleGetContinent(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/continents/South%20America", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	summary, ok := data["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "South America", summary["continent"])
	assert.NotContains(t, data, "load_error")
}

func TestHandleGetContinentUnknown(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/continents/Atlantis", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetContinentRendersDespiteLoadFailure(t *testing.T) {
	client := &stubClient{err: errors.New("endpoint down")}
	router, _ := newTestRouter(client)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/continents/Oceania", nil))

	// The panel still gets its title and member count
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.NotEmpty(t, data["load_error"])
	summary, ok := data["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Oceania", summary["continent"])
}

func TestHandleGetCountry(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/countries/76", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec.Body.Bytes())
	assert.Equal(t, "Brazil", data["name"])
	country, ok := data["country"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "South America", country["continent"])
}

func TestHandleGetCountryBadID(t *testing.T) {
	router, _ := newTestRouter(&stubClient{res: speciesResult()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/atlas/countries/brazil", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
