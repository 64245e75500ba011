// Package atlas implements the data layer behind the world-map
// dashboard: per-country domain tables built from live query results
// and on-demand continent aggregation.
package atlas

// SpeciesRecord holds a country's endemic species counts. A record with
// all-zero counts is distinct from a country absent from the table.
type SpeciesRecord struct {
	Label string `json:"label"`
	Code  string `json:"code"` // ISO 3166-1 alpha-2, empty when the source had none

	Total int `json:"total"`
	// The four tracked IUCN threat tiers. Their sum may be below Total:
	// the total can include species in untracked tiers (known source
	// data caveat, deliberately not reconciled).
	NearThreatened       int `json:"nt"`
	Vulnerable           int `json:"vu"`
	Endangered           int `json:"en"`
	CriticallyEndangered int `json:"cr"`
}

// Threatened is the derived sum of the four tracked tiers
func (r SpeciesRecord) Threatened() int {
	return r.NearThreatened + r.Vulnerable + r.Endangered + r.CriticallyEndangered
}

// EconomyRecord holds a country's nominal GDP observation
type EconomyRecord struct {
	Label string  `json:"label"`
	Code  string  `json:"code"`
	GDP   float64 `json:"gdp"`
	Year  int     `json:"year"` // observation year, 0 when unknown
}

// PopulationRecord holds a country's population observation
type PopulationRecord struct {
	Label      string `json:"label"`
	Code       string `json:"code"`
	Population int64  `json:"population"`
	Year       int    `json:"year"`
}

// CountryDetail is a single-country probe across the three domains.
// Nil sub-records mean the domain has no data for the country, which
// callers must keep distinct from zero values.
type CountryDetail struct {
	ID         int               `json:"id"`
	Continent  string            `json:"continent,omitempty"`
	Species    *SpeciesRecord    `json:"species,omitempty"`
	Economy    *EconomyRecord    `json:"economy,omitempty"`
	Population *PopulationRecord `json:"population,omitempty"`
}

// SpeciesSummary aggregates the species domain over a continent
type SpeciesSummary struct {
	Countries            int `json:"countries"` // members that contributed a record
	Total                int `json:"total"`
	NearThreatened       int `json:"nt"`
	Vulnerable           int `json:"vu"`
	Endangered           int `json:"en"`
	CriticallyEndangered int `json:"cr"`
	Threatened           int `json:"threatened"`
}

// EconomySummary aggregates the economy domain over a continent
type EconomySummary struct {
	Countries int     `json:"countries"`
	GDP       float64 `json:"gdp"`
	YearRange string  `json:"year_range"`
}

// PopulationSummary aggregates the population domain over a continent
type PopulationSummary struct {
	Countries  int    `json:"countries"`
	Population int64  `json:"population"`
	YearRange  string `json:"year_range"`
}

// ContinentSummary is the on-demand fold over a continent's members.
// Nil domain summaries mean no member contributed a record ("no data",
// never rendered as zero).
type ContinentSummary struct {
	Continent  string             `json:"continent"`
	Members    int                `json:"members"`
	Species    *SpeciesSummary    `json:"species,omitempty"`
	Economy    *EconomySummary    `json:"economy,omitempty"`
	Population *PopulationSummary `json:"population,omitempty"`
}

// ContinentInfo is one entry in the continent listing
type ContinentInfo struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}
