package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/metrics"
	characterrepo "github.com/kailas-cloud/chardex/internal/repository/character"
	searchrepo "github.com/kailas-cloud/chardex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/chardex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/chardex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/chardex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/chardex/internal/usecase/suggest"
	"github.com/kailas-cloud/chardex/internal/version"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API server",
		Action: runServe,
	}
}

func runServe(ctx context.Context, c *cli.Command) error {
	cfg, logger, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting chardex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", c.String("env")),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	metrics.RegisterBackendMetrics()

	keys := cfg.Search.Keyspace()
	cat := catalog.Default()

	charRepo := characterrepo.New(store, keys, cat)
	searchRepo := searchrepo.New(store, keys)

	if cfg.Search.BootstrapIndex {
		created, err := charRepo.EnsureIndex(ctx)
		if err != nil {
			return fmt.Errorf("bootstrap index: %w", err)
		}
		logger.Info("Search index ready", zap.String("index", keys.IndexName()), zap.Bool("created", created))
	}

	searchSvc := searchuc.New(searchRepo, charRepo, cat)
	suggestSvc := suggestuc.New(searchRepo, cfg.Search.SuggestLimit)
	healthSvc := healthuc.New(store, store, keys.IndexName())

	server := chiTransport.NewServer(searchSvc, suggestSvc, healthSvc, cat, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
