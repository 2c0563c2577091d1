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

	"github.com/msomdec/eco-track/internal/config"
	"github.com/msomdec/eco-track/internal/handler"
	"github.com/msomdec/eco-track/internal/repository/sqlite"
	"github.com/msomdec/eco-track/internal/service"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost, cfg.TokenTTL)
	actionService := service.NewActionService(db.Actions())
	dashboardService := service.NewDashboardService(actionService)

	loginLimiter := service.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst)
	defer loginLimiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, actionService, dashboardService, loginLimiter, cfg.CookieSecure)
	mux.Handle("GET /readyz", handler.Readiness(db))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Chain(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
