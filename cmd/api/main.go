package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/adapter/handler"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/messaging"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/source"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/pkg/config"
	"github.com/johnquangdev/meeting-archive/pkg/jwt"
	"github.com/johnquangdev/meeting-archive/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-archive/pkg/validator"
)

type publisher interface {
	archive.EventPublisher
	Close()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zl, err := logger.New(cfg.Log, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Initialize raw archive cache
	zl.Info("cache.init", zap.String("driver", cfg.Cache.Driver))
	store, closeStore, err := cache.New(cfg)
	if err != nil {
		zl.Fatal("cache.init_failed", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			zl.Warn("cache.close_failed", zap.Error(err))
		}
	}()

	// Initialize archive source
	src, err := source.New(cfg, store, zl)
	if err != nil {
		zl.Fatal("source.init_failed", zap.String("type", cfg.Archive.SourceType), zap.Error(err))
	}
	zl.Info("source.init", zap.String("source", src.Name()))

	// Reload events are optional
	var pub publisher = messaging.NopPublisher{}
	if cfg.NATS.URL != "" {
		np, err := messaging.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			zl.Warn("messaging.init_failed", zap.String("url", cfg.NATS.URL), zap.Error(err))
		} else {
			pub = np
			zl.Info("messaging.init", zap.String("subject", cfg.NATS.Subject))
		}
	}
	defer pub.Close()

	service := archive.NewArchiveService(src, pub, zl, archive.Options{
		ReloadTimeout: cfg.Archive.ReloadTimeout,
	})

	// Initial load; the server still starts and reports 503 until a reload succeeds
	if _, err := service.Reload(context.Background(), archive.TriggerStartup); err != nil {
		zl.Error("archive.initial_load_failed", zap.Error(err))
	}

	if cfg.Archive.ReloadInterval > 0 {
		if err := service.StartAutoReload(context.Background(), cfg.Archive.ReloadInterval); err != nil {
			zl.Fatal("archive.auto_reload_failed", zap.Error(err))
		}
	}
	defer service.Stop()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	handler.NewRouter(cfg, service, jwtManager, zl).Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		zl.Info("server.starting",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server.start_failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("server.shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zl.Error("server.forced_shutdown", zap.Error(err))
		return
	}

	zl.Info("server.stopped")
}
