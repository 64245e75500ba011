package geo

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/atlas/internal/clients/topo"
)

func TestContinentForCode(t *testing.T) {
	tests := []struct {
		iso  int
		want string
	}{
		{76, "South America"},
		{36, "Oceania"},
		{276, "Europe"},
		{392, "Asia"},
		{818, "Africa"},
		{840, "North America"},
		{10, "Antarctica"},
	}

	for _, tt := range tests {
		got, ok := ContinentForCode(tt.iso)
		require.True(t, ok, "code %d should be in the table", tt.iso)
		assert.Equal(t, tt.want, got)
	}

	_, ok := ContinentForCode(999999)
	assert.False(t, ok)
}

func TestContinentForCentroid(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"amazon basin", -5, -60, "South America"},
		{"central australia", -25, 134, "Oceania"},
		{"sahara", 22, 10, "Africa"},
		{"central europe", 50, 10, "Europe"},
		{"siberia", 60, 100, "Asia"},
		{"great plains", 40, -100, "North America"},
		{"antarctic plateau", -80, 45, "Antarctica"},
		{"mid pacific", 0, -140, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContinentForCentroid(tt.lat, tt.lon))
		})
	}
}

func TestNewService(t *testing.T) {
	countries := []topo.Country{
		{ID: 76, Name: "Brazil", Centroid: topo.Centroid{Lat: -10, Lon: -55}},
		{ID: 36, Name: "Australia", Centroid: topo.Centroid{Lat: -25, Lon: 134}},
		// Not in the code table; placed by centroid
		{ID: 900, Name: "Somaliland", Centroid: topo.Centroid{Lat: 9.5, Lon: 46}},
		// Neither in the table nor inside any box; dropped
		{ID: 901, Name: "Null Island", Centroid: topo.Centroid{Lat: 0, Lon: -140}},
	}

	svc := NewService(countries, zerolog.Nop())

	membership := svc.Membership()
	assert.Equal(t, "South America", membership[76])
	assert.Equal(t, "Oceania", membership[36])
	assert.Equal(t, "Africa", membership[900])

	_, ok := membership[901]
	assert.False(t, ok, "unplaceable geometry must be excluded")

	// Names are kept even for unplaceable geometries
	names := svc.Names()
	assert.Equal(t, "Brazil", names[76])
	assert.Equal(t, "Null Island", names[901])
}
