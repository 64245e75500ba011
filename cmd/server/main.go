// Package main is the entry point for the Atlas dashboard backend. It
// serves the data layer behind the world-map, correlation, and
// genetic-distance pages: live statistics fetched from a public SPARQL
// endpoint, folded into continent summaries on demand.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/atlas/internal/clients/sparql"
	"github.com/aristath/atlas/internal/clients/topo"
	"github.com/aristath/atlas/internal/config"
	"github.com/aristath/atlas/internal/events"
	"github.com/aristath/atlas/internal/modules/atlas"
	"github.com/aristath/atlas/internal/modules/correlation"
	"github.com/aristath/atlas/internal/modules/geo"
	"github.com/aristath/atlas/internal/server"
	"github.com/aristath/atlas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Atlas")

	// The topology defines the country set; without it there is no
	// membership to aggregate over, so startup fails hard.
	topoCtx, topoCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer topoCancel()

	topoClient := topo.NewClient(cfg.TopologyURL, log)
	countries, err := topoClient.Fetch(topoCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch world topology")
	}
	log.Info().Int("countries", len(countries)).Msg("World topology loaded")

	geoService := geo.NewService(countries, log)

	bus := events.NewBus()

	sparqlClient := sparql.NewClient(cfg.EndpointURL, sparql.Options{
		MaxRetries: cfg.FetchMaxRetries,
		BaseDelay:  cfg.FetchBaseDelay,
		Timeout:    cfg.FetchTimeout,
	}, log)

	store := atlas.NewStore(sparqlClient, geoService.Membership(), geoService.Names(), bus, log)
	correlationService := correlation.NewService(store, log)

	srv := server.New(server.Config{
		Log:         log,
		Config:      cfg,
		Store:       store,
		Correlation: correlationService,
		EventBus:    bus,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Block until SIGINT or SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
