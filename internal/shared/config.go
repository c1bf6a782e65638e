package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://www.airlinequality.com/airline-reviews/united-airlines"

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	BaseURL     string
	Pages       int
	PageSize    int
	Workers     int
	HTTPTimeout time.Duration
	OutputPath  string
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer setting")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		BaseURL:     env("SKYTRAX_BASE_URL", DefaultBaseURL),
		Pages:       atoi("SCRAPE_PAGES", 1),
		PageSize:    atoi("SCRAPE_PAGE_SIZE", 100),
		Workers:     atoi("SCRAPE_WORKERS", 8),
		HTTPTimeout: time.Duration(atoi("SCRAPE_TIMEOUT_SECONDS", 20)) * time.Second,
		OutputPath:  env("OUTPUT_PATH", "./Data/reviews.csv"),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.Workers <= 0 {
		log.Warn().Int("workers", c.Workers).Msg("SCRAPE_WORKERS must be positive, using 8")
		c.Workers = 8
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
