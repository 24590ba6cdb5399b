package main

import (
	"context"
	"fmt"
	"log"

	"portfolio-api/config"
	"portfolio-api/database"
	"portfolio-api/logger"

	"github.com/joho/godotenv"
)

// migrate creates the portfolios table and indexes and exits. It is for
// deployments that run the API with database.auto_schema disabled.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logg := logger.New(cfg.Service+"-migrate", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout())
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to ensure schema")
	}

	fmt.Println("\nSchema is up to date!")
}
