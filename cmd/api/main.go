package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plantstore/plantstore-backend/internal/config"
	"github.com/plantstore/plantstore-backend/internal/database"
	"github.com/plantstore/plantstore-backend/internal/modules/health"
	"github.com/plantstore/plantstore-backend/internal/modules/plants"
	"github.com/plantstore/plantstore-backend/internal/observability"
)

const appName = "plantstore-api"

func main() {
	logger := observability.InitLogger(appName)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	defer db.Close()
	logger.Info().Msg("connected to the database")

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	observability.RegisterMetrics()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(observability.RequestID)
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.RequestMetrics)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", observability.RequestIDHeader},
		ExposedHeaders: []string{observability.RequestIDHeader},
	}))

	// ── Modules ─────────────────────────────────────────────
	health.NewHandler(db, appName).RegisterRoutes(router)

	plantRepo := plants.NewPostgresRepository(db)
	plantService := plants.NewService(plantRepo)
	plants.NewHandler(plantService).RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())

	// ── Serve ───────────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("plant store API listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
		logger.Info().Msg("server stopped")
	}
}
