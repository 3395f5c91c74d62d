package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"review_intake/internal/adapters/observability"
	"review_intake/internal/app"
	"review_intake/internal/classifier"
	"review_intake/internal/domain"
	"review_intake/internal/shared"
	"review_intake/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	src := cfg.IngestFile
	if len(os.Args) > 1 {
		src = os.Args[1]
	}

	log.Info().
		Str("file", src).
		Int("workers", cfg.IngestWorkers).
		Str("driver", cfg.StoreDriver).
		Msg("ingestor starting")

	var in io.Reader = os.Stdin
	if src != "" && src != "-" {
		f, err := os.Open(src)
		if err != nil {
			log.Fatal().Err(err).Msg("open input failed")
		}
		defer f.Close()
		in = f
	}

	cls, err := classifier.Load(cfg.KeywordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load keywords failed")
	}

	repo, closer, err := storage.Open(storage.Options{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.SQLitePath,
		MySQLDSN:   cfg.MySQLDSN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	defer closer.Close()

	svc := app.NewReviewService(repo, cls, clockwork.NewRealClock())
	stats, err := svc.Ingest(ctx, in, cfg.IngestWorkers)
	if err != nil {
		log.Error().Err(err).Msg("ingestion interrupted")
	}

	log.Info().
		Int("total", stats.Total).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Int("positive", stats.BySentiment[domain.SentimentPositive]).
		Int("negative", stats.BySentiment[domain.SentimentNegative]).
		Int("neutral", stats.BySentiment[domain.SentimentNeutral]).
		Msg("ingestion completed")

	if err != nil || stats.Failed > 0 {
		stop()
		_ = closer.Close()
		os.Exit(1)
	}
}
