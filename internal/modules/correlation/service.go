// Package correlation builds the scatter-plot data behind the
// correlation page: paired per-country metric values plus a Pearson
// coefficient over the pairs.
package correlation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/atlas/internal/modules/atlas"
)

// Source is the slice of the atlas store the service needs
type Source interface {
	EnsureLoaded(ctx context.Context) error
	Metric(name string) (map[int]atlas.MetricSample, error)
}

// Point is one country on the scatter plot
type Point struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Stats describes the plotted sample
type Stats struct {
	Pearson  float64 `json:"pearson"`
	Samples  int     `json:"samples"`
	LogScale bool    `json:"log_scale"`
}

// Service computes correlation views over the atlas metrics
type Service struct {
	source Source
	log    zerolog.Logger
}

// NewService creates a correlation service backed by the atlas store
func NewService(source Source, log zerolog.Logger) *Service {
	return &Service{
		source: source,
		log:    log.With().Str("service", "correlation").Logger(),
	}
}

// Points pairs two metrics country by country. Only countries present
// in both series are plotted; absent countries are excluded rather
// than zero-filled, so missing data never drags the correlation toward
// the origin. With logScale both axes are log10-transformed and
// non-positive values are dropped.
func (s *Service) Points(ctx context.Context, xMetric, yMetric string, logScale bool) ([]Point, Stats, error) {
	if err := s.source.EnsureLoaded(ctx); err != nil {
		return nil, Stats{}, fmt.Errorf("failed to load domain tables: %w", err)
	}

	xs, err := s.source.Metric(xMetric)
	if err != nil {
		return nil, Stats{}, err
	}
	ys, err := s.source.Metric(yMetric)
	if err != nil {
		return nil, Stats{}, err
	}

	points := make([]Point, 0, len(xs))
	for id, x := range xs {
		y, ok := ys[id]
		if !ok {
			continue
		}

		px, py := x.Value, y.Value
		if logScale {
			if px <= 0 || py <= 0 {
				continue
			}
			px, py = math.Log10(px), math.Log10(py)
		}

		label := x.Label
		if label == "" {
			label = y.Label
		}
		points = append(points, Point{ID: id, Label: label, X: px, Y: py})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ID < points[j].ID })

	stats := Stats{Samples: len(points), LogScale: logScale}
	if len(points) >= 2 {
		xv := make([]float64, len(points))
		yv := make([]float64, len(points))
		for i, p := range points {
			xv[i] = p.X
			yv[i] = p.Y
		}
		r := stat.Correlation(xv, yv, nil)
		// Degenerate series (zero variance) produce NaN; report no
		// correlation instead of an unencodable value.
		if !math.IsNaN(r) {
			stats.Pearson = r
		}
	}

	s.log.Debug().Str("x", xMetric).Str("y", yMetric).Int("samples", stats.Samples).
		Float64("pearson", stats.Pearson).Msg("Correlation computed")
	return points, stats, nil
}
