package atlas

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/atlas/internal/clients/sparql"
	"github.com/aristath/atlas/internal/events"
)

// State is the store's load lifecycle state
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// Domain names used in status reports and events
const (
	DomainSpecies    = "species"
	DomainEconomy    = "economy"
	DomainPopulation = "population"
)

// QueryClient is the slice of the SPARQL client the store needs
type QueryClient interface {
	Query(ctx context.Context, query string) (*sparql.Result, error)
}

// Store owns the three domain tables and the country-to-continent
// membership for the lifetime of the process. Tables are populated at
// most once; a failed preload is remembered and short-circuits demand
// until Retry clears it.
type Store struct {
	client QueryClient
	bus    *events.Bus
	log    zerolog.Logger

	// Static after construction
	membership map[int]string // ISO numeric -> continent name
	names      map[int]string // ISO numeric -> country name from the topology

	mu         sync.Mutex
	state      State
	loading    chan struct{} // closed when the in-flight load finishes
	loadErr    error
	species    map[int]SpeciesRecord
	economy    map[int]EconomyRecord
	population map[int]PopulationRecord
}

// NewStore creates the session store. Membership and names come from
// the geography service, computed once after the topology loads, and
// are not mutated afterwards.
func NewStore(client QueryClient, membership, names map[int]string, bus *events.Bus, log zerolog.Logger) *Store {
	return &Store{
		client:     client,
		bus:        bus,
		log:        log.With().Str("service", "atlas").Logger(),
		membership: membership,
		names:      names,
		state:      StateUnloaded,
	}
}

// EnsureLoaded brings the store to Ready, firing the three domain
// fetches in parallel on first demand. Once Ready it is a no-op; once
// Failed it returns the remembered error without re-fetching.
// Concurrent demand coalesces into the single in-flight load.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	for {
		s.mu.Lock()
		switch s.state {
		case StateReady:
			s.mu.Unlock()
			return nil

		case StateFailed:
			err := s.loadErr
			s.mu.Unlock()
			return err

		case StateLoading:
			done := s.loading
			s.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			// Re-inspect the outcome

		default: // StateUnloaded
			s.state = StateLoading
			s.loading = make(chan struct{})
			done := s.loading
			s.mu.Unlock()

			// The load is shared session state, so it must not ride on
			// the triggering request's lifetime: a client disconnect or
			// request timeout would otherwise record context.Canceled as
			// the remembered failure for every other client.
			err := s.load(context.WithoutCancel(ctx))

			s.mu.Lock()
			if err != nil {
				s.state = StateFailed
				s.loadErr = err
			} else {
				s.state = StateReady
				s.loadErr = nil
			}
			close(done)
			s.mu.Unlock()
			return err
		}
	}
}

// Retry clears a remembered failure and re-attempts only the domains
// that are still missing; tables that loaded successfully are kept.
// A no-op when the store is already Ready.
func (s *Store) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateFailed {
		s.state = StateUnloaded
		s.loadErr = nil
	}
	s.mu.Unlock()

	return s.EnsureLoaded(ctx)
}

// load fetches whichever domain tables are still nil, in parallel. The
// join is non-cancelling: one domain failing does not abort the others,
// so their tables survive for a later partial retry.
func (s *Store) load(ctx context.Context) error {
	s.bus.Publish(events.LoadStarted, "atlas", nil)
	s.log.Info().Msg("Loading domain tables")

	var g errgroup.Group

	s.mu.Lock()
	needSpecies := s.species == nil
	needEconomy := s.economy == nil
	needPopulation := s.population == nil
	s.mu.Unlock()

	if needSpecies {
		g.Go(func() error {
			res, err := s.client.Query(ctx, sparql.SpeciesQuery)
			if err != nil {
				return s.domainFailed(DomainSpecies, err)
			}
			table := BuildSpeciesTable(res)
			s.mu.Lock()
			s.species = table
			s.mu.Unlock()
			s.domainLoaded(DomainSpecies, len(table))
			return nil
		})
	}

	if needEconomy {
		g.Go(func() error {
			res, err := s.client.Query(ctx, sparql.EconomyQuery)
			if err != nil {
				return s.domainFailed(DomainEconomy, err)
			}
			table := BuildEconomyTable(res)
			s.mu.Lock()
			s.economy = table
			s.mu.Unlock()
			s.domainLoaded(DomainEconomy, len(table))
			return nil
		})
	}

	if needPopulation {
		g.Go(func() error {
			res, err := s.client.Query(ctx, sparql.PopulationQuery)
			if err != nil {
				return s.domainFailed(DomainPopulation, err)
			}
			table := BuildPopulationTable(res)
			s.mu.Lock()
			s.population = table
			s.mu.Unlock()
			s.domainLoaded(DomainPopulation, len(table))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.bus.Publish(events.LoadFailed, "atlas", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	s.mu.Lock()
	counts := map[string]interface{}{
		DomainSpecies:    len(s.species),
		DomainEconomy:    len(s.economy),
		DomainPopulation: len(s.population),
	}
	s.mu.Unlock()

	s.bus.Publish(events.LoadCompleted, "atlas", counts)
	s.log.Info().Interface("counts", counts).Msg("Domain tables ready")
	return nil
}

func (s *Store) domainLoaded(domain string, countries int) {
	s.log.Info().Str("domain", domain).Int("countries", countries).Msg("Domain loaded")
	s.bus.Publish(events.DomainLoaded, "atlas", map[string]interface{}{
		"domain":    domain,
		"countries": countries,
	})
}

func (s *Store) domainFailed(domain string, err error) error {
	s.log.Warn().Str("domain", domain).Err(err).Msg("Domain load failed")
	s.bus.Publish(events.DomainFailed, "atlas", map[string]interface{}{
		"domain": domain,
		"error":  err.Error(),
	})
	return fmt.Errorf("failed to load %s domain: %w", domain, err)
}

// DomainStatus reports one domain's table in the status endpoint
type DomainStatus struct {
	Loaded    bool `json:"loaded"`
	Countries int  `json:"countries"`
}

// Status is the store's externally visible state
type Status struct {
	State   State                   `json:"state"`
	Error   string                  `json:"error,omitempty"`
	Domains map[string]DomainStatus `json:"domains"`
}

// Status returns the current load state and per-domain table sizes
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		State: s.state,
		Domains: map[string]DomainStatus{
			DomainSpecies:    {Loaded: s.species != nil, Countries: len(s.species)},
			DomainEconomy:    {Loaded: s.economy != nil, Countries: len(s.economy)},
			DomainPopulation: {Loaded: s.population != nil, Countries: len(s.population)},
		},
	}
	if s.loadErr != nil {
		status.Error = s.loadErr.Error()
	}
	return status
}
