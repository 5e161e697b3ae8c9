package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port     string
	DBPath   string
	SeedPath string

	// DatabaseURL points at the remote Postgres store used for trip sync.
	// Empty disables sync.
	DatabaseURL string

	OSRMBaseURL        string
	OSRMProfile        string
	NominatimBaseURL   string
	NominatimUserAgent string

	// GeocodeCache selects the geocode cache backend: sqlite, postgres or redis.
	GeocodeCache    string
	GeocodeCacheTTL time.Duration
	RedisURL        string

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string

	DefaultBufferMinutes int
	FallbackSpeedMPH     float64
	RouteConcurrency     int
	HTTPTimeout          time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	return Config{
		Port:                 Get("PORT", "8080"),
		DBPath:               Get("DB_PATH", "data/app.db"),
		SeedPath:             Get("SEED_PATH", "data/seeds/trip.json"),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OSRMBaseURL:          Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		OSRMProfile:          Get("OSRM_PROFILE", "driving"),
		NominatimBaseURL:     Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:   Get("NOMINATIM_USER_AGENT", "roadtrip-planner-service/1.0"),
		GeocodeCache:         strings.ToLower(Get("GEOCODE_CACHE", "sqlite")),
		GeocodeCacheTTL:      GetDuration("GEOCODE_CACHE_TTL", 30*24*time.Hour),
		RedisURL:             Get("REDIS_URL", "redis://localhost:6379/0"),
		CORSOrigins:          GetList("CORS_ORIGINS", []string{"*"}),
		DefaultBufferMinutes: GetInt("DEFAULT_BUFFER_MINUTES", 20),
		FallbackSpeedMPH:     GetFloat("FALLBACK_SPEED_MPH", 45),
		RouteConcurrency:     GetInt("ROUTE_CONCURRENCY", 4),
		HTTPTimeout:          GetDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetList splits a comma-separated value, dropping blank items.
func GetList(key string, fallback []string) []string {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	out := make([]string, 0, 4)
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float key=%s value=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
