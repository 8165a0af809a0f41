package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fname-registry/internal/platform/config"
	"fname-registry/internal/platform/httpserver"
	"fname-registry/internal/platform/logger"
	"fname-registry/internal/platform/metrics"
	redisplatform "fname-registry/internal/platform/redis"
	transfermetrics "fname-registry/internal/transfers/metrics"
	"fname-registry/internal/transfers/publisher"
	"fname-registry/internal/transfers/service"
)

// main wires configuration, storage, signing and transport, then serves
// until SIGINT or SIGTERM. Business logic lives in internal/transfers.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Service, cfg.Environment)

	if err := run(cfg, log); err != nil {
		log.Error("fname-registry stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisplatform.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	storage, err := openStorage(ctx, cfg, redisClient, log)
	if err != nil {
		return err
	}
	defer storage.close()

	authority, err := newAuthority(cfg, redisClient, log)
	if err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(transfermetrics.New()),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := publisher.New(ctx, cfg.Kafka, publisher.WithLogger(log))
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer pub.Close()
		opts = append(opts, service.WithPublisher(pub))
	} else {
		log.Info("transfer events disabled: KAFKA_BROKERS is empty")
	}
	transfers := service.New(storage.store, authority, opts...)

	router := newRouter(transfers, storage.db, redisClient, log, metrics.New(), cfg.Server.RequestTimeout)
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting fname-registry",
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage,
			"auth_mode", cfg.Signer.AuthMode,
			"signer", authority.Address().Hex(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down fname-registry")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func shutdownTimeout(cfg config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
