package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"roadtrip-planner-service/internal/adapters/cache"
	"roadtrip-planner-service/internal/adapters/geocode"
	"roadtrip-planner-service/internal/adapters/repositories"
	"roadtrip-planner-service/internal/adapters/routing"
	"roadtrip-planner-service/internal/api"
	"roadtrip-planner-service/internal/config"
	"roadtrip-planner-service/internal/platform/db"
	"roadtrip-planner-service/internal/ports"
	"roadtrip-planner-service/internal/services"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, Nominatim) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	local, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer local.Close()

	repo := repositories.NewSqliteTripRepository(local)

	// Initialize schema and seed the sample trip on first run.
	if err := initAndSeed(ctx, local, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	var remote ports.TripRepository
	var remoteDB *sql.DB
	if cfg.DatabaseURL != "" {
		remoteDB, err = db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer remoteDB.Close()

		if err := repositories.InitSchema(ctx, remoteDB); err != nil {
			log.Fatal(err)
		}
		remote = repositories.NewPostgresTripRepository(remoteDB)
	} else {
		log.Println("DATABASE_URL not set; trip sync disabled")
	}

	geocodeCache, closeCache, err := newGeocodeCache(cfg, local, remoteDB)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	provider, err := routing.NewOSRMRouteProvider(cfg.OSRMBaseURL, cfg.OSRMProfile, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal(err)
	}
	routeClient := services.NewRouteClient(provider, cache.NewMemoryRouteCache())
	routeClient.FallbackSpeedMPH = cfg.FallbackSpeedMPH

	schedule := services.DefaultScheduleOptions()
	schedule.DefaultBufferMinutes = cfg.DefaultBufferMinutes

	handler := api.NewRouter(api.Deps{
		Repo:        repo,
		Remote:      remote,
		RouteClient: routeClient,
		Router:      services.NewTripRouter(routeClient, cfg.RouteConcurrency),
		Geocoder:    geocode.NewNominatimGeocoder(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.HTTPTimeout, geocodeCache),
		Matrix:      provider,
		Schedule:    schedule,
		Thresholds:  services.DefaultLoadThresholds(),
		CORSOrigins: cfg.CORSOrigins,
	})

	// Write timeout covers a cold trip summary: one OSRM call per leg, with retries.
	log.Printf("Server listening addr=:%s osrm=%s geocode_cache=%s", cfg.Port, cfg.OSRMBaseURL, cfg.GeocodeCache)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(ctx context.Context, conn *sql.DB, repo ports.TripRepository, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	days, err := repo.ListDays(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if len(days) > 0 {
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("seeded trip from %s", seedPath)
	return nil
}

// newGeocodeCache selects the geocode cache backend named by GEOCODE_CACHE.
func newGeocodeCache(cfg config.Config, local, remote *sql.DB) (ports.GeocodeCache, func(), error) {
	switch cfg.GeocodeCache {
	case "", "sqlite":
		return cache.NewSqliteGeocodeCache(local), func() {}, nil
	case "postgres":
		if remote == nil {
			return nil, nil, fmt.Errorf("geocode cache: postgres requires DATABASE_URL")
		}
		return cache.NewSQLGeocodeCache(remote), func() {}, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("geocode cache: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("geocode cache: unknown backend %q", cfg.GeocodeCache)
	}
}
