package atlas

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/atlas/internal/events"
)

// storeWithTables builds a Ready store directly from tables
func storeWithTables(
	membership map[int]string,
	species map[int]SpeciesRecord,
	economy map[int]EconomyRecord,
	population map[int]PopulationRecord,
) *Store {
	store := NewStore(nil, membership, nil, events.NewBus(), zerolog.Nop())
	store.state = StateReady
	store.species = species
	store.economy = economy
	store.population = population
	return store
}

func TestSummarizeContinentSums(t *testing.T) {
	membership := map[int]string{
		1: "Testlandia",
		2: "Testlandia",
		3: "Testlandia",
	}
	species := map[int]SpeciesRecord{
		// A: total 10, nt 1, vu 2
		1: {Total: 10, NearThreatened: 1, Vulnerable: 2},
		// B (key 2) absent from the species domain
		// C: total 5, en 1, cr 1
		3: {Total: 5, Endangered: 1, CriticallyEndangered: 1},
	}

	store := storeWithTables(membership, species, nil, nil)

	summary, err := store.SummarizeContinent("Testlandia")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Members)
	require.NotNil(t, summary.Species)
	assert.Equal(t, 2, summary.Species.Countries)
	assert.Equal(t, 15, summary.Species.Total)
	assert.Equal(t, 5, summary.Species.Threatened) // 1+2+1+1

	// No member contributed economy or population data
	assert.Nil(t, summary.Economy)
	assert.Nil(t, summary.Population)
}

func TestSummarizeContinentZeroIsPresence(t *testing.T) {
	membership := map[int]string{1: "Testlandia"}
	species := map[int]SpeciesRecord{
		1: {}, // present with all-zero counts
	}

	store := storeWithTables(membership, species, nil, nil)

	summary, err := store.SummarizeContinent("Testlandia")
	require.NoError(t, err)

	// A zero-count record still counts toward presence; the summary is
	// "zero", not "no data".
	require.NotNil(t, summary.Species)
	assert.Equal(t, 1, summary.Species.Countries)
	assert.Zero(t, summary.Species.Total)
}

func TestSummarizeContinentYearRanges(t *testing.T) {
	membership := map[int]string{1: "Testlandia", 2: "Testlandia", 3: "Testlandia"}
	economy := map[int]EconomyRecord{
		1: {GDP: 100, Year: 2018},
		2: {GDP: 200, Year: 2021},
		3: {GDP: 300, Year: 2019},
	}
	population := map[int]PopulationRecord{
		1: {Population: 50, Year: 2020},
	}

	store := storeWithTables(membership, nil, economy, population)

	summary, err := store.SummarizeContinent("Testlandia")
	require.NoError(t, err)

	require.NotNil(t, summary.Economy)
	assert.Equal(t, 3, summary.Economy.Countries)
	assert.InDelta(t, 600.0, summary.Economy.GDP, 1e-9)
	assert.Equal(t, "latest years: 2018–2021", summary.Economy.YearRange)

	require.NotNil(t, summary.Population)
	assert.Equal(t, int64(50), summary.Population.Population)
	assert.Equal(t, "latest year: 2020", summary.Population.YearRange)
}

func TestSummarizeContinentUnknown(t *testing.T) {
	store := storeWithTables(map[int]string{1: "Testlandia"}, nil, nil, nil)

	_, err := store.SummarizeContinent("Atlantis")
	assert.Error(t, err)
}

func TestFormatYearRange(t *testing.T) {
	assert.Equal(t, "", formatYearRange(nil))
	assert.Equal(t, "", formatYearRange(map[int]struct{}{}))
	assert.Equal(t, "latest year: 2020", formatYearRange(map[int]struct{}{2020: {}}))
	assert.Equal(t, "latest years: 2018–2021", formatYearRange(map[int]struct{}{
		2018: {}, 2021: {}, 2019: {},
	}))
}

func TestLookupCountryZeroVsAbsent(t *testing.T) {
	membership := map[int]string{76: "South America", 36: "Oceania"}
	species := map[int]SpeciesRecord{
		76: {}, // present, all-zero
	}

	store := storeWithTables(membership, species, nil, nil)

	present := store.LookupCountry(76)
	require.NotNil(t, present.Species)
	assert.Zero(t, present.Species.Total)
	assert.Nil(t, present.Economy)
	assert.Nil(t, present.Population)
	assert.Equal(t, "South America", present.Continent)

	absent := store.LookupCountry(36)
	assert.Nil(t, absent.Species)
}

func TestLookupCountryReturnsCopies(t *testing.T) {
	species := map[int]SpeciesRecord{76: {Total: 10}}
	store := storeWithTables(map[int]string{76: "South America"}, species, nil, nil)

	detail := store.LookupCountry(76)
	detail.Species.Total = 999

	// Mutating the returned record must not touch the table
	assert.Equal(t, 10, store.species[76].Total)
}

func TestContinents(t *testing.T) {
	membership := map[int]string{
		76:  "South America",
		36:  "Oceania",
		554: "Oceania",
	}
	store := storeWithTables(membership, nil, nil, nil)

	infos := store.Continents()
	require.Len(t, infos, 2)
	assert.Equal(t, ContinentInfo{Name: "Oceania", Members: 2}, infos[0])
	assert.Equal(t, ContinentInfo{Name: "South America", Members: 1}, infos[1])
}
