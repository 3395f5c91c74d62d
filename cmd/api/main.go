package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	server "review_intake/internal/adapters/http_server"
	"review_intake/internal/adapters/observability"
	"review_intake/internal/app"
	"review_intake/internal/classifier"
	"review_intake/internal/shared"
	"review_intake/internal/storage"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	cls, err := classifier.Load(cfg.KeywordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load keywords failed")
	}
	log.Info().Str("version", cls.Version()).Msg("classifier keywords loaded")

	// db
	repo, closer, err := storage.Open(storage.Options{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.SQLitePath,
		MySQLDSN:   cfg.MySQLDSN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("close store failed")
		}
	}()

	// deps
	svc := app.NewReviewService(repo, cls, clockwork.NewRealClock())

	// http
	opts := server.Options{RequestTimeout: cfg.RequestTimeout}
	if cfg.RateLimitRPS > 0 {
		opts.RateLimit = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	srv := server.New(opts)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(sctx)
		}
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server failed")
	}
}
