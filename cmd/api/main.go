package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/employee-search/api/internal/auth"
	"github.com/octobees/employee-search/api/internal/config"
	"github.com/octobees/employee-search/api/internal/database"
	"github.com/octobees/employee-search/api/internal/handler"
	"github.com/octobees/employee-search/api/internal/logger"
	"github.com/octobees/employee-search/api/internal/metrics"
	middlewarepkg "github.com/octobees/employee-search/api/internal/middleware"
	"github.com/octobees/employee-search/api/internal/people"
	"github.com/octobees/employee-search/api/internal/provider"
	"github.com/octobees/employee-search/api/internal/repository"
	"github.com/octobees/employee-search/api/internal/router"
	"github.com/octobees/employee-search/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	adapter, err := provider.New(cfg.Provider)
	if err != nil {
		zlog.Fatal("failed to configure provider", zap.Error(err))
	}
	if cfg.Provider.CredentialRef == "" {
		zlog.Warn("PROVIDER_API_KEY not set, searches require a caller supplied key",
			zap.Bool("request_keys_allowed", cfg.AllowRequestAPIKey))
	}

	httpClient := &http.Client{Timeout: cfg.Provider.TimeoutOrDefault()}
	opts := []service.SearchOption{service.WithRequestKeys(cfg.AllowRequestAPIKey)}

	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			zlog.Fatal("failed to connect database", zap.Error(err))
		}
		defer pool.Close()

		searchLogs := repository.NewPGXSearchLogRepository(pool)
		if err := searchLogs.EnsureSchema(ctx); err != nil {
			cancel()
			zlog.Fatal("failed to prepare search_logs table", zap.Error(err))
		}
		cancel()
		opts = append(opts, service.WithRecorder(searchLogs))
	}

	searchService := service.NewSearchService(
		adapter,
		provider.NewClient(httpClient, adapter),
		people.NewNormalizer(cfg.PhoneRegion),
		cfg.Provider.CredentialRef,
		opts...,
	)

	var jwtManager *auth.JWTManager
	if cfg.JWTEnabled() {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID(zlog))
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Search: handler.NewSearchHandler(searchService),
		Health: handler.NewHealthHandler(searchService.ProviderName()),
	})

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("employee search API listening",
			zap.String("port", cfg.Port),
			zap.String("provider", searchService.ProviderName()),
			zap.Bool("jwt", jwtManager != nil),
			zap.Bool("audit_log", cfg.DatabaseURL != ""),
		)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
