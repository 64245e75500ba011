package geo

import (
	"github.com/rs/zerolog"

	"github.com/aristath/atlas/internal/clients/topo"
)

// Service holds the continent membership and display names derived from
// the world topology. Built once at startup and read-only afterwards.
type Service struct {
	membership map[int]string
	names      map[int]string
	log        zerolog.Logger
}

// NewService assigns every topology country to a continent. The static
// code table wins; countries it does not know are placed by centroid,
// and geometries that match neither are left out of the membership.
func NewService(countries []topo.Country, log zerolog.Logger) *Service {
	s := &Service{
		membership: make(map[int]string, len(countries)),
		names:      make(map[int]string, len(countries)),
		log:        log.With().Str("service", "geo").Logger(),
	}

	for _, c := range countries {
		s.names[c.ID] = c.Name

		continent, ok := ContinentForCode(c.ID)
		if !ok {
			continent = ContinentForCentroid(c.Centroid.Lat, c.Centroid.Lon)
			if continent == "" {
				s.log.Warn().Int("id", c.ID).Str("name", c.Name).
					Msg("Country not assignable to a continent, skipping")
				continue
			}
			s.log.Debug().Int("id", c.ID).Str("name", c.Name).
				Str("continent", continent).Msg("Assigned continent by centroid")
		}
		s.membership[c.ID] = continent
	}

	s.log.Info().Int("countries", len(s.membership)).Msg("Continent membership built")
	return s
}

// Membership maps ISO numeric codes to continent names
func (s *Service) Membership() map[int]string {
	return s.membership
}

// Names maps ISO numeric codes to the topology's display names
func (s *Service) Names() map[int]string {
	return s.names
}
