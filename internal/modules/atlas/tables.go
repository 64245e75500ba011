package atlas

import (
	"strconv"
	"strings"

	"github.com/aristath/atlas/internal/clients/sparql"
)

// Table construction: each builder folds raw SPARQL bindings into a
// per-country lookup table keyed by ISO numeric code. Rows without a
// parseable key are dropped (nothing to join them to); missing numeric
// fields coerce to zero, missing strings to ""; a duplicate key
// overwrites the earlier row (the queries pre-aggregate, so duplicates
// are unexpected but must not crash).

// BuildSpeciesTable builds the endemic-species table
func BuildSpeciesTable(res *sparql.Result) map[int]SpeciesRecord {
	table := make(map[int]SpeciesRecord)
	for _, row := range res.Results.Bindings {
		id, ok := rowKey(row)
		if !ok {
			continue
		}
		table[id] = SpeciesRecord{
			Label:                rowString(row, "countryLabel"),
			Code:                 rowString(row, "isoCode"),
			Total:                rowInt(row, "total"),
			NearThreatened:       rowInt(row, "nt"),
			Vulnerable:           rowInt(row, "vu"),
			Endangered:           rowInt(row, "en"),
			CriticallyEndangered: rowInt(row, "cr"),
		}
	}
	return table
}

// BuildEconomyTable builds the GDP table
func BuildEconomyTable(res *sparql.Result) map[int]EconomyRecord {
	table := make(map[int]EconomyRecord)
	for _, row := range res.Results.Bindings {
		id, ok := rowKey(row)
		if !ok {
			continue
		}
		table[id] = EconomyRecord{
			Label: rowString(row, "countryLabel"),
			Code:  rowString(row, "isoCode"),
			GDP:   rowFloat(row, "gdp"),
			Year:  rowInt(row, "gdpYear"),
		}
	}
	return table
}

// BuildPopulationTable builds the population table
func BuildPopulationTable(res *sparql.Result) map[int]PopulationRecord {
	table := make(map[int]PopulationRecord)
	for _, row := range res.Results.Bindings {
		id, ok := rowKey(row)
		if !ok {
			continue
		}
		table[id] = PopulationRecord{
			Label:      rowString(row, "countryLabel"),
			Code:       rowString(row, "isoCode"),
			Population: rowInt64(row, "population"),
			Year:       rowInt(row, "popYear"),
		}
	}
	return table
}

// rowKey parses the ISO numeric entity key, reporting rows that lack one
func rowKey(row sparql.Binding) (int, bool) {
	raw, ok := row["isoNum"]
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw.Value))
	if err != nil {
		return 0, false
	}
	return id, true
}

func rowString(row sparql.Binding, field string) string {
	if v, ok := row[field]; ok {
		return v.Value
	}
	return ""
}

func rowInt(row sparql.Binding, field string) int {
	v, ok := row[field]
	if !ok {
		return 0
	}
	// Some endpoints emit integer aggregates as decimals ("5.0")
	if n, err := strconv.Atoi(v.Value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
		return int(f)
	}
	return 0
}

func rowInt64(row sparql.Binding, field string) int64 {
	v, ok := row[field]
	if !ok {
		return 0
	}
	if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
		return int64(f)
	}
	return 0
}

func rowFloat(row sparql.Binding, field string) float64 {
	v, ok := row[field]
	if !ok {
		return 0
	}
	if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
		return f
	}
	return 0
}
