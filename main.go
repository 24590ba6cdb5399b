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

	"portfolio-api/config"
	"portfolio-api/database"
	"portfolio-api/logger"
	"portfolio-api/metrics"
	"portfolio-api/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.New(cfg.Service, cfg.Log.Level, cfg.Log.Format)
	logg.Info().Str("env", cfg.Env).Msg("config loaded")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context with timeout for initial connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout())
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoSchema {
		if err := db.EnsureSchema(ctx); err != nil {
			logg.Fatal().Err(err).Msg("failed to ensure schema")
		}
	}

	r := router.New(router.Dependencies{
		Config:  cfg,
		Store:   db,
		Logger:  logg,
		Metrics: metrics.New(),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logg.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logg.Info().Msg("server exited gracefully")
}
