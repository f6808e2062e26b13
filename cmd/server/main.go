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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/cantineo/internal/auth"
	"github.com/mmynk/cantineo/internal/config"
	"github.com/mmynk/cantineo/internal/httpapi"
	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/storage/sqlite"
	"github.com/mmynk/cantineo/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := httpapi.Options{
		Store:          store,
		Gatherer:       reg,
		Metrics:        metrics.New(reg),
		RequestTimeout: cfg.HTTP.RequestTimeout,
		StaticPath:     cfg.HTTP.StaticPath,
	}

	if cfg.Auth.AdminPIN != "" {
		authenticator, err := auth.NewPINAuthenticator(cfg.Auth.AdminPIN)
		if err != nil {
			slog.Error("Invalid ADMIN_PIN", "error", err)
			os.Exit(1)
		}
		jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("Failed to set up sessions", "error", err)
			os.Exit(1)
		}
		if cfg.Auth.JWTSecret == "" {
			slog.Warn("JWT_SECRET not set, sessions end on restart")
		}
		opts.Authenticator = authenticator
		opts.JWT = jwtManager
	} else {
		slog.Warn("ADMIN_PIN not set, mutating routes are open")
	}

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		// h2c serves HTTP/2 without TLS alongside HTTP/1.1.
		Handler:           h2c.NewHandler(httpapi.New(opts).Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("HTTP server starting", "address", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
