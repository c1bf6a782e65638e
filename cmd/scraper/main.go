package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"aeropulse/internal/adapters/csvfile"
	"aeropulse/internal/adapters/observability"
	redisad "aeropulse/internal/adapters/redis"
	"aeropulse/internal/adapters/skytrax"
	"aeropulse/internal/app"
	"aeropulse/internal/domain"
	"aeropulse/internal/shared"
	mysqlrepo "aeropulse/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("base", cfg.BaseURL).
		Int("pages", cfg.Pages).
		Int("pageSize", cfg.PageSize).
		Int("workers", cfg.Workers).
		Msg("scraper starting")

	if _, err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("scrape failed")
		stop()
		os.Exit(1)
	}
}

// run wires the pipeline from cfg and executes one scrape. The store is only
// used when cfg.MySQLDSN is set, and cache invalidation only with a store and
// cfg.RedisAddr.
func run(ctx context.Context, cfg shared.Config) (app.Outcome, error) {
	client, err := skytrax.New(cfg.BaseURL, cfg.HTTPTimeout)
	if err != nil {
		return app.Outcome{}, err
	}

	var repo domain.ReviewRepository
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return app.Outcome{}, err
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	ing := app.NewIngestionService(
		app.NewScrapeService(client, skytrax.Parser{}, cfg.Workers),
		csvfile.Writer{},
		repo,
	)
	// the read API caches review lists; drop them once a new run is stored
	if repo != nil && cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer func() { _ = rc.Close() }()
		ing.WithCacheInvalidation(rc)
	}
	return ing.Run(ctx, app.Params{
		Pages:    cfg.Pages,
		PageSize: cfg.PageSize,
		OutPath:  cfg.OutputPath,
		RunID:    time.Now().UTC().Format("20060102T150405Z"),
	})
}
