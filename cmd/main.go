// Copyright (c) The lighttp Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shove70/lighttp"
	"github.com/shove70/lighttp/examples/echo"
	"github.com/shove70/lighttp/pkg/health"
	"github.com/shove70/lighttp/pkg/metrics"
	"github.com/shove70/lighttp/pkg/ratelimit"
	"github.com/shove70/lighttp/pkg/server"
)

const envPrefix = "LIGHTTP_"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := lighttp.NewConfig(env.Options{Prefix: envPrefix})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	m := metrics.New("lighttp")

	var limiter *ratelimit.Limiter
	if cfg.RateLimitCapacity > 0 {
		limiter = ratelimit.NewLimiter(cfg.RateLimitCapacity, cfg.RateLimitRefill, 0)
	}

	// Application router plus health probes.
	mux := echo.NewRouter(logger, m)
	checker := health.NewChecker(10 * time.Second)
	checker.RegisterRoutes(mux)

	srv := server.New(server.Config{
		Address:         cfg.Address(),
		ServerHeader:    cfg.ServerHeader,
		ReadBufferSize:  cfg.ReadBufferSize,
		ReadTimeout:     cfg.ReadTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Limiter:         limiter,
		Metrics:         m,
		Logger:          logger,
	}, mux)

	g.Go(func() error {
		return srv.Listen(ctx)
	})

	g.Go(func() error {
		return serveMetrics(ctx, cfg.MetricsPort, logger)
	})

	g.Go(func() error {
		return stopSignalHandler(ctx, cancel, logger)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("lighttp service terminated with error: %s", err))
	} else {
		logger.Info("lighttp service stopped")
	}
}

func setupLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// serveMetrics exposes the Prometheus registry on its own listener.
func serveMetrics(ctx context.Context, port string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: promhttp.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("metrics server started", slog.String("port", port))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func stopSignalHandler(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", slog.String("signal", sig.String()))
		cancel()
		return nil
	case <-ctx.Done():
		return nil
	}
}
