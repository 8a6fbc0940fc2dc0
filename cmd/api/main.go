// Package main is the entry point for the travel map API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/geotrails/travelmap/internal/config"
	"github.com/geotrails/travelmap/internal/database"
	"github.com/geotrails/travelmap/internal/events"
	"github.com/geotrails/travelmap/internal/handler"
	"github.com/geotrails/travelmap/internal/metrics"
	"github.com/geotrails/travelmap/internal/middleware"
	"github.com/geotrails/travelmap/internal/repo"
	"github.com/geotrails/travelmap/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := database.Open(context.Background(), cfg.DatabaseURL, database.Options{
		MaxConns:       cfg.DBMaxConns,
		MinConns:       cfg.DBMinConns,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("database connection established", "max_conns", pool.Config().MaxConns)

	// --- Metrics ----------------------------------------------------------
	reg := metrics.NewRegistry()
	metrics.RegisterPool(reg, pool)
	httpMetrics := metrics.NewHTTP(reg)

	// --- Change events ----------------------------------------------------
	var publisher events.Publisher
	if cfg.NATSURL != "" {
		nc, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			slog.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		publisher = nc
		slog.Info("publishing change events", "nats_url", cfg.NATSURL)
	}

	// --- Services ---------------------------------------------------------
	server := handler.NewServer(
		service.NewTravelPointService(repo.NewTravelPointRepo(pool), publisher),
		service.NewTravelRouteService(repo.NewTravelRouteRepo(pool), publisher),
		service.NewMemberService(repo.NewMemberRepo(pool), publisher),
		pool,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order:
	// RequestID → RealIP → CORS → Logger → Metrics → Recoverer → Timeout → MaxBodySize.
	// CORS answers every OPTIONS request itself, so preflights stop there.
	// Recoverer sits inside the logger so a recovered panic is still logged as a 500.
	r := handler.NewRouter(server,
		middleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewCORSHandler(cfg.CORSOrigins),
		middleware.NewSlogLogger(logger),
		httpMetrics.Middleware,
		middleware.NewRecoverer(logger),
		middleware.NewRequestTimeout(cfg.RequestTimeout),
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	// --- HTTP Server ------------------------------------------------------
	// The write timeout leaves room for a handler to answer 504 after the
	// per-request deadline fires.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newLogger builds the process logger. Unknown levels fall back to info;
// config.Load has already rejected them, so this only matters in tests.
func newLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
