package atlas

import (
	"fmt"
	"sort"
)

// SummarizeContinent folds the continent's member countries across the
// three domain tables. Presence is tracked independently per domain: a
// member missing from a table contributes nothing to that domain's
// sums or its presence count. Recomputed on every call; the tables are
// small enough that caching would buy nothing.
func (s *Store) SummarizeContinent(name string) (ContinentSummary, error) {
	var members []int
	for id, continent := range s.membership {
		if continent == name {
			members = append(members, id)
		}
	}
	if len(members) == 0 {
		return ContinentSummary{}, fmt.Errorf("unknown continent: %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summary := ContinentSummary{
		Continent: name,
		Members:   len(members),
	}

	var species SpeciesSummary
	var economy EconomySummary
	var population PopulationSummary
	gdpYears := make(map[int]struct{})
	popYears := make(map[int]struct{})

	for _, id := range members {
		if rec, ok := s.species[id]; ok {
			species.Countries++
			species.Total += rec.Total
			species.NearThreatened += rec.NearThreatened
			species.Vulnerable += rec.Vulnerable
			species.Endangered += rec.Endangered
			species.CriticallyEndangered += rec.CriticallyEndangered
			species.Threatened += rec.Threatened()
		}

		if rec, ok := s.economy[id]; ok {
			economy.Countries++
			economy.GDP += rec.GDP
			if rec.Year != 0 {
				gdpYears[rec.Year] = struct{}{}
			}
		}

		if rec, ok := s.population[id]; ok {
			population.Countries++
			population.Population += rec.Population
			if rec.Year != 0 {
				popYears[rec.Year] = struct{}{}
			}
		}
	}

	// Zero presence means "no data", a different thing from a summed
	// value of zero; absent domains stay nil in the output.
	if species.Countries > 0 {
		summary.Species = &species
	}
	if economy.Countries > 0 {
		economy.YearRange = formatYearRange(gdpYears)
		summary.Economy = &economy
	}
	if population.Countries > 0 {
		population.YearRange = formatYearRange(popYears)
		summary.Population = &population
	}

	return summary, nil
}

// LookupCountry probes each domain table independently for one country.
// Never errors: a country with no data in any domain still resolves so
// the dashboard can render its title.
func (s *Store) LookupCountry(id int) CountryDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail := CountryDetail{
		ID:        id,
		Continent: s.membership[id],
	}

	if rec, ok := s.species[id]; ok {
		detail.Species = &rec
	}
	if rec, ok := s.economy[id]; ok {
		detail.Economy = &rec
	}
	if rec, ok := s.population[id]; ok {
		detail.Population = &rec
	}

	return detail
}

// CountryName returns the topology name for a country, empty when unknown
func (s *Store) CountryName(id int) string {
	return s.names[id]
}

// Continents lists the continents present in the membership with their
// member counts, sorted by name.
func (s *Store) Continents() []ContinentInfo {
	counts := make(map[string]int)
	for _, continent := range s.membership {
		counts[continent]++
	}

	infos := make([]ContinentInfo, 0, len(counts))
	for name, members := range counts {
		infos = append(infos, ContinentInfo{Name: name, Members: members})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// formatYearRange renders a set of observation years for display:
// empty set -> "", one year -> "latest year: Y", several -> the min-max
// span (gaps inside the span are collapsed on purpose).
func formatYearRange(years map[int]struct{}) string {
	if len(years) == 0 {
		return ""
	}

	min, max := 0, 0
	first := true
	for y := range years {
		if first {
			min, max = y, y
			first = false
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}

	if min == max {
		return fmt.Sprintf("latest year: %d", min)
	}
	return fmt.Sprintf("latest years: %d–%d", min, max)
}
