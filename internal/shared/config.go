package shared

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// API paging defaults. Limits outside [1, MaxPageSize] are clamped.
const (
	DefaultPageSize  = 100
	MaxPageSize      = 1000
	DefaultSortBy    = "submittedAt"
	DefaultSortOrder = "desc"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	HostawayBase    string
	HostawayToken   string
	HostawayAccount string
	PlacesBase      string
	PlacesKey       string

	UseMockData bool
	Workers     int
	SourceRPS   int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/flexreviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		HostawayBase:    env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayToken:   env("HOSTAWAY_API_KEY", ""),
		HostawayAccount: env("HOSTAWAY_ACCOUNT_ID", ""),
		PlacesBase:      env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesKey:       env("GOOGLE_PLACES_API_KEY", ""),

		UseMockData: env("USE_MOCK_DATA", "") == "true",
		Workers:     atoi("INGEST_WORKERS", 4),
		SourceRPS:   atoi("SOURCE_RPS", 5),
	}
	if c.HostawayToken == "" {
		log.Warn().Msg("HOSTAWAY_API_KEY is empty")
	}
	if c.PlacesKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
