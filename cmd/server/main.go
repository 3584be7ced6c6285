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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/petrossemanhica07/app-poupanca/internal/auth"
	"github.com/petrossemanhica07/app-poupanca/internal/config"
	"github.com/petrossemanhica07/app-poupanca/internal/server"
	"github.com/petrossemanhica07/app-poupanca/internal/service"
	"github.com/petrossemanhica07/app-poupanca/internal/storage/sqlite"
	"github.com/petrossemanhica07/app-poupanca/pkg/logging"
)

func main() {
	logging.Setup()
	logger := slog.Default()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("Using the built-in JWT secret, set JWT_SECRET in production")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(store, jwtManager, logger)
	groupSvc := service.NewGroupService(store, logger)
	ledgerSvc := service.NewLedgerService(store, logger)
	reportSvc := service.NewReportService(store, logger)

	if err := authSvc.Bootstrap(context.Background()); err != nil {
		logger.Error("Bootstrap failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(authSvc, groupSvc, ledgerSvc, reportSvc, jwtManager, cfg.StaticPath)

	// h2c enables HTTP/2 without TLS for clients behind a terminating proxy.
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(srv.Handler(), &http2.Server{}),
	}

	go func() {
		logger.Info("Server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}
