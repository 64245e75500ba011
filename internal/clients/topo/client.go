// Package topo fetches and decodes the TopoJSON world topology that
// supplies the set of countries, their numeric keys, and centroids.
package topo

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Country is one country derived from the topology. ID is the ISO
// 3166-1 numeric code, the join key against the SPARQL domain tables.
type Country struct {
	ID       int
	Name     string
	Centroid Centroid
}

// Centroid is an approximate geographic center (arc point average, not
// an area centroid; good enough for continent inference).
type Centroid struct {
	Lat float64
	Lon float64
}

// topology mirrors the subset of TopoJSON we consume
type topology struct {
	Type      string `json:"type"`
	Transform *struct {
		Scale     [2]float64 `json:"scale"`
		Translate [2]float64 `json:"translate"`
	} `json:"transform"`
	Arcs    [][][2]float64 `json:"arcs"`
	Objects map[string]struct {
		Type       string     `json:"type"`
		Geometries []geometry `json:"geometries"`
	} `json:"objects"`
}

type geometry struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id"`
	Arcs       json.RawMessage `json:"arcs"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

// Client fetches the world topology
type Client struct {
	topologyURL string
	httpClient  *http.Client
	log         zerolog.Logger
}

// NewClient creates a new topology client
func NewClient(topologyURL string, log zerolog.Logger) *Client {
	return &Client{
		topologyURL: topologyURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log.With().Str("client", "topo").Logger(),
	}
}

// Fetch downloads and decodes the topology. Called once at startup;
// countries without a parseable numeric ID are dropped (they cannot be
// joined to any domain table).
func (c *Client) Fetch(ctx context.Context) ([]Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.topologyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topology: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("topology fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology body: %w", err)
	}

	countries, err := Decode(body)
	if err != nil {
		return nil, err
	}

	c.log.Info().Int("countries", len(countries)).Msg("Topology loaded")
	return countries, nil
}

// Decode parses a (possibly gzip-compressed) TopoJSON document into
// countries with centroids.
func Decode(data []byte) ([]Country, error) {
	// Some mirrors serve the file pre-compressed without setting
	// Content-Encoding; sniff the gzip magic bytes.
	if len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip topology: %w", err)
		}
		defer gz.Close()
		data, err = io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress topology: %w", err)
		}
	}

	var topo topology
	if err := json.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("failed to parse topology: %w", err)
	}
	if topo.Type != "Topology" {
		return nil, fmt.Errorf("unexpected topology type: %q", topo.Type)
	}

	countriesObj, ok := topo.Objects["countries"]
	if !ok {
		return nil, fmt.Errorf("topology has no countries object")
	}

	arcs := decodeArcs(&topo)

	var countries []Country
	for _, geom := range countriesObj.Geometries {
		id, ok := parseID(geom.ID)
		if !ok {
			continue
		}

		centroid, ok := centroidOf(&geom, arcs)
		if !ok {
			continue
		}

		countries = append(countries, Country{
			ID:       id,
			Name:     geom.Properties.Name,
			Centroid: centroid,
		})
	}

	return countries, nil
}

// decodeArcs expands the topology's delta-encoded, quantized arcs into
// absolute lon/lat point sequences.
func decodeArcs(topo *topology) [][][2]float64 {
	decoded := make([][][2]float64, len(topo.Arcs))

	for i, arc := range topo.Arcs {
		points := make([][2]float64, len(arc))
		var x, y float64
		for j, delta := range arc {
			if topo.Transform != nil {
				// Quantized arcs are cumulative integer deltas
				x += delta[0]
				y += delta[1]
				points[j] = [2]float64{
					x*topo.Transform.Scale[0] + topo.Transform.Translate[0],
					y*topo.Transform.Scale[1] + topo.Transform.Translate[1],
				}
			} else {
				points[j] = delta
			}
		}
		decoded[i] = points
	}

	return decoded
}

// centroidOf averages the points of every arc a geometry references
func centroidOf(geom *geometry, arcs [][][2]float64) (Centroid, bool) {
	var indices []int
	collectArcIndices(geom.Arcs, &indices)

	var sumLon, sumLat float64
	var n int
	for _, idx := range indices {
		// A negative index ~i references arc i reversed; reversal does
		// not change the point average.
		if idx < 0 {
			idx = ^idx
		}
		if idx >= len(arcs) {
			continue
		}
		for _, p := range arcs[idx] {
			sumLon += p[0]
			sumLat += p[1]
			n++
		}
	}

	if n == 0 {
		return Centroid{}, false
	}
	return Centroid{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}, true
}

// collectArcIndices flattens the arbitrarily nested arc index arrays of
// Polygon and MultiPolygon geometries.
func collectArcIndices(raw json.RawMessage, out *[]int) {
	if len(raw) == 0 {
		return
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		*out = append(*out, asInt)
		return
	}

	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		for _, item := range nested {
			collectArcIndices(item, out)
		}
	}
}

// parseID coerces a TopoJSON geometry ID (string or number) to the ISO
// numeric code.
func parseID(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		id, err := strconv.Atoi(asString)
		if err != nil {
			return 0, false
		}
		return id, true
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return int(asNumber), true
	}

	return 0, false
}
