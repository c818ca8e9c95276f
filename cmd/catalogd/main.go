package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"campusevents/config"
	_ "campusevents/docs"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/restapi"
	delivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Campus Events Catalog Gateway API
// @version 1.0
// @description Annotated event catalog, session lifecycle, and insight passthroughs for the campus event service.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	sessions := postgres.NewSessionStore(db)
	inspector := auth.NewJWTInspector()
	api := restapi.New(cfg.APIBaseURL, &http.Client{Timeout: serviceTimeout}, sessions, inspector, logger)

	catalogSvc := services.NewCatalogService(api, sessions, logger, serviceTimeout)
	authSvc := services.NewAuthService(api, sessions, inspector, logger)
	insightsSvc := services.NewInsightsService(api, serviceTimeout)

	router := delivery.NewRouter(
		controllers.NewCatalogController(logger, catalogSvc),
		controllers.NewAuthController(logger, authSvc),
		controllers.NewInsightsController(logger, insightsSvc),
	)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the snapshot; the event service being down at boot is not fatal.
	if err := catalogSvc.Refresh(ctx); err != nil {
		logger.Warn("initial catalog fetch failed", "err", err)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		if err := catalogSvc.Refresh(refreshCtx); err != nil {
			logger.Warn("scheduled catalog refresh failed", "err", err)
		}
	}); err != nil {
		logger.Error("invalid refresh schedule", "schedule", cfg.RefreshSchedule, "err", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("catalog gateway listening", "port", cfg.Port, "api", cfg.APIBaseURL, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
