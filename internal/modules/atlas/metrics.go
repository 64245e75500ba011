package atlas

import "fmt"

// Metric names accepted by Metric
const (
	MetricSpecies    = "species"
	MetricThreatened = "threatened"
	MetricGDP        = "gdp"
	MetricPopulation = "population"
)

// MetricSample is one country's value in a numeric series
type MetricSample struct {
	Label string
	Value float64
}

// Metric extracts one per-country numeric series from the domain
// tables. Countries absent from the backing domain are absent from the
// series; callers must not zero-fill them. Labels fall back to the
// topology name when the source row carried none.
func (s *Store) Metric(name string) (map[int]MetricSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case MetricSpecies:
		series := make(map[int]MetricSample, len(s.species))
		for id, rec := range s.species {
			series[id] = MetricSample{Label: s.labelFor(id, rec.Label), Value: float64(rec.Total)}
		}
		return series, nil

	case MetricThreatened:
		series := make(map[int]MetricSample, len(s.species))
		for id, rec := range s.species {
			series[id] = MetricSample{Label: s.labelFor(id, rec.Label), Value: float64(rec.Threatened())}
		}
		return series, nil

	case MetricGDP:
		series := make(map[int]MetricSample, len(s.economy))
		for id, rec := range s.economy {
			series[id] = MetricSample{Label: s.labelFor(id, rec.Label), Value: rec.GDP}
		}
		return series, nil

	case MetricPopulation:
		series := make(map[int]MetricSample, len(s.population))
		for id, rec := range s.population {
			series[id] = MetricSample{Label: s.labelFor(id, rec.Label), Value: float64(rec.Population)}
		}
		return series, nil

	default:
		return nil, fmt.Errorf("unknown metric: %q", name)
	}
}

// labelFor prefers the source row's label, then the topology name.
// Callers hold s.mu.
func (s *Store) labelFor(id int, label string) string {
	if label != "" {
		return label
	}
	return s.names[id]
}
