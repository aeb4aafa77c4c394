package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/geoweather/internal/api"
	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/database"
	"github.com/alexivanou/geoweather/internal/forecast"
	"github.com/alexivanou/geoweather/internal/geocoding"
	"github.com/alexivanou/geoweather/internal/repository"
	"github.com/alexivanou/geoweather/internal/seeder"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"github.com/alexivanou/geoweather/internal/stats"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var (
		db        *sqlx.DB
		resolver  service.Resolver
		suggester service.Suggester
	)

	if cfg.Gazetteer.Enabled {
		db, err = database.Connect(ctx, cfg.DB)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

		if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		repos := repository.NewRepositories(db, cfg.DB.Type)
		isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
		if err != nil {
			logger.Warn("Failed to check if database is empty", zap.Error(err))
		} else if isEmpty {
			logger.Info("Gazetteer is empty, auto-seeding data...")
			if _, err := seeder.Seed(ctx, seeder.NewParser(cfg.Seeder), repos, logger); err != nil {
				logger.Fatal("Failed to auto-seed gazetteer", zap.Error(err))
			}
		}

		gazetteer := geocoding.NewGazetteer(repos.Place)
		suggester = gazetteer
		if cfg.Upstream.Geocoder == config.GeocoderGazetteer {
			resolver = gazetteer
		}
	}

	if resolver == nil {
		resolver = geocoding.NewClient(cfg.Upstream.GeocodingBaseURL, cfg.Upstream.Timeout, cfg.Upstream.UserAgent, logger)
	}
	fetcher := forecast.NewClient(cfg.Upstream.ForecastBaseURL, cfg.Upstream.Timeout, cfg.Upstream.UserAgent, logger)

	svc := service.NewService(resolver, fetcher, suggester, logger)
	sessions := session.NewStore(cfg.Server.SessionTTL)
	statsCollector := stats.NewCollector(db, cfg.DB, svc, sessions)

	router := api.NewRouter(svc, sessions, statsCollector, api.Options{
		Logger:          logger,
		DefaultLocation: cfg.Display.DefaultLocation,
		DefaultLocale:   cfg.Display.DefaultLocale,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + 2*cfg.Upstream.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("geocoder", string(cfg.Upstream.Geocoder)),
			zap.Bool("gazetteer", cfg.Gazetteer.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
