package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger/internal/amqp"
	"ledger/internal/backend"
	"ledger/internal/cache"
	"ledger/internal/cli"
	apphttp "ledger/internal/http"
	"ledger/internal/ledger"
	"ledger/internal/log"
)

const (
	shutdownTimeout = 30 * time.Second
	cacheSweepEvery = time.Minute
)

func main() {
	cfg, logger, err := cli.Bootstrap(log.ComponentApp)
	if err != nil {
		logger.Error("Startup failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := cli.ShutdownContext(context.Background(), logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create storage backend", log.FieldError, err, log.FieldBackend, backendCfg.Type)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	store, err := ledger.New(ctx, res.Store, ledger.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to load ledger", log.FieldError, err, log.FieldBackend, backendCfg.Type)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, apphttp.Options{
		CacheSize:       cfg.CacheSize,
		CacheTTL:        cfg.CacheTTL,
		Locale:          cfg.Locale(),
		CurrencySymbol:  cfg.CurrencySymbol,
		Logger:          logger,
		WritesPerMinute: cfg.RateLimitWrites,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	caches := cache.NewManager(logger)
	caches.Register(srv.Views())

	g, gctx := errgroup.WithContext(ctx)

	if res.Publisher != nil {
		notifier := amqp.NewNotifier(res.Publisher, logger, 0)
		detach := notifier.Attach(store)
		defer detach()
		g.Go(func() error { return notifier.Run(gctx) })
		logger.Info("Change notifications enabled", "exchange", cfg.AMQPExchange)
	}

	g.Go(func() error { return caches.Run(gctx, cacheSweepEvery) })
	if limiter := srv.Limiter(); limiter != nil {
		g.Go(func() error { return limiter.Run(gctx) })
	}

	g.Go(func() error {
		logger.Info("Starting ledger server",
			"port", cfg.Port,
			log.FieldBackend, backendCfg.Type,
			"version", store.Version(),
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
