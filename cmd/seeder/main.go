package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/database"
	"github.com/alexivanou/geoweather/internal/repository"
	"github.com/alexivanou/geoweather/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	migrations := flag.String("migrations", "migrations", "Directory holding the sqlite/ and postgres/ migrations")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, *migrations); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Starting data import...",
		zap.String("data_dir", cfg.Seeder.DataDir),
		zap.String("cities_file", cfg.Seeder.CitiesFile),
		zap.Int("min_population", cfg.Seeder.MinPopulation),
	)

	repos := repository.NewRepositories(db, cfg.DB.Type)
	res, err := seeder.Seed(ctx, seeder.NewParser(cfg.Seeder), repos, logger)
	if err != nil {
		logger.Fatal("Data import failed", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("countries", res.Countries),
		zap.Int("regions", res.Regions),
		zap.Int("cities", res.Cities),
	)
}
