package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"flex_reviews/internal/adapters/googleplaces"
	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/observability"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/shared"
	mysqlrepo "flex_reviews/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Bool("mock", cfg.UseMockData).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	placeIDs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	hostawayClient := hostaway.New(cfg.HostawayBase, cfg.HostawayToken, cfg.HostawayAccount, cfg.SourceRPS)
	placesClient := googleplaces.New(cfg.PlacesBase, cfg.PlacesKey, cfg.SourceRPS, placeIDs)

	ing := app.NewIngestionService(
		hostawayClient, placesClient, placeIDs, repo,
		hostaway.MockReviews, googleplaces.MockReviews,
	)

	// Hostaway first: one account-wide call that also seeds the property
	// rows the per-property Google ingestion looks up.
	res, err := ing.IngestHostaway(ctx, cfg.UseMockData)
	if err != nil {
		log.Fatal().Err(err).Msg("hostaway ingestion failed")
	}
	log.Info().Int("stored", len(res.Reviews)).Int("created", res.Created).Msg("hostaway ingest ok")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, p := range shared.Properties {
		p := p

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(propertyID string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			res, err := ing.IngestGoogle(ctx, propertyID, cfg.UseMockData)
			if err != nil {
				log.Warn().Str("property", propertyID).Err(err).Msg("google ingest failed")
				return
			}
			log.Info().Str("property", propertyID).Int("stored", len(res.Reviews)).Int("created", res.Created).Msg("google ingest ok")
		}(p.ID)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
