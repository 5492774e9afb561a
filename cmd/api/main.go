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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	"github.com/BruksfildServices01/advocate-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/advocate-scheduler/internal/db"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
	"github.com/BruksfildServices01/advocate-scheduler/internal/routes"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// run returns instead of exiting so every deferred cleanup runs.
func run() error {

	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	flushSentry, err := monitoring.InitSentry(cfg.SentryDSN, cfg.AppEnv, version)
	if err != nil {
		slog.Error("sentry disabled", slog.Any("error", err))
		flushSentry = func() {}
	}
	defer flushSentry()

	if !timezone.IsValid(cfg.Timezone) {
		slog.Warn("unknown PRACTICE_TIMEZONE, using default",
			slog.String("timezone", cfg.Timezone),
			slog.String("default", timezone.DefaultTimezone),
		)
	}

	db := dbpkg.NewDB(cfg)

	// --------------------------------------------------
	// Keyed locks: redis when configured, in-process otherwise
	// --------------------------------------------------
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		locker = lock.NewRedis(client, cfg.LockTTL)
		slog.Info("using redis locks", slog.Duration("ttl", cfg.LockTTL))
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	// after the server has drained: no request can dispatch anymore
	defer auditDispatcher.Close()

	r := gin.Default()

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Locker: locker,
		Audit:  auditDispatcher,
		Clock:  timezone.NewClock(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("server running", slog.String("addr", cfg.Addr()), slog.String("version", version))
	return serve(ctx, srv)
}

// serve runs srv until ctx is done or the listener fails, then shuts it down
// gracefully. Either way the server is stopped when serve returns.
func serve(ctx context.Context, srv *http.Server) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
