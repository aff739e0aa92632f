package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedspin/feedspin/internal/bootstrap"
	"github.com/feedspin/feedspin/internal/config"
	"github.com/feedspin/feedspin/internal/database"
	"github.com/feedspin/feedspin/internal/ratelimit"
	"github.com/feedspin/feedspin/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	for _, warning := range warnings {
		slog.Warn(warning)
	}
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	slog.Info(bootstrap.LogMsgStartingFeedspin,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"port", cfg.Port)
	slog.Debug(bootstrap.LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info(bootstrap.LogMsgDatabaseConnected)

	repos := bootstrap.InitializeRepositories(dbPool)
	services := bootstrap.InitializeServices(repos)

	spinLimiter := ratelimit.NewLimiter(cfg.SpinRateLimit, cfg.SpinRateWindow)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, services.Spin, services.Coupon, services.Loyalty, spinLimiter)

	// Run the server in a goroutine so signal handling stays on main
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: dbPool,
	})
}
