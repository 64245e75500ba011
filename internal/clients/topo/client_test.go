package topo

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A two-country topology: quantized deltas with scale 1 and no offset,
// so decoded points equal the raw cumulative sums.
const testTopology = `{
	"type": "Topology",
	"transform": {"scale": [1, 1], "translate": [0, 0]},
	"arcs": [
		[[10, 20], [2, 0], [0, 2], [-2, 0]],
		[[40, -10], [4, 0]]
	],
	"objects": {
		"countries": {
			"type": "GeometryCollection",
			"geometries": [
				{"type": "Polygon", "id": "076", "arcs": [[0]], "properties": {"name": "Brazil"}},
				{"type": "MultiPolygon", "id": 36, "arcs": [[[1]]], "properties": {"name": "Australia"}},
				{"type": "Polygon", "id": "-99", "arcs": [[0]], "properties": {"name": "Somaliland"}},
				{"type": "Polygon", "arcs": [[0]], "properties": {"name": "No ID"}}
			]
		}
	}
}`

func TestDecode(t *testing.T) {
	countries, err := Decode([]byte(testTopology))
	require.NoError(t, err)

	// "-99" parses as a numeric ID (placeholder entities keep their
	// key), while the geometry with no ID at all is dropped.
	require.Len(t, countries, 3)

	byID := make(map[int]Country)
	for _, c := range countries {
		byID[c.ID] = c
	}

	brazil, ok := byID[76]
	require.True(t, ok)
	assert.Equal(t, "Brazil", brazil.Name)
	// Cumulative points: (10,20) (12,20) (12,22) (10,22) -> mean (11,21)
	assert.InDelta(t, 11.0, brazil.Centroid.Lon, 1e-9)
	assert.InDelta(t, 21.0, brazil.Centroid.Lat, 1e-9)

	australia, ok := byID[36]
	require.True(t, ok)
	// Points: (40,-10) (44,-10) -> mean (42,-10)
	assert.InDelta(t, 42.0, australia.Centroid.Lon, 1e-9)
	assert.InDelta(t, -10.0, australia.Centroid.Lat, 1e-9)
}

func TestDecodeGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(testTopology))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	countries, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, countries, 3)
}

func TestDecodeRejectsNonTopology(t *testing.T) {
	_, err := Decode([]byte(`{"type": "FeatureCollection"}`))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testTopology))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	countries, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, countries, 3)
}

func TestFetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
