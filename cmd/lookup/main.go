package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/forecast"
	"github.com/alexivanou/geoweather/internal/geocoding"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		query  = flag.String("q", cfg.Display.DefaultLocation, "Place to look up")
		locale = flag.String("lang", cfg.Display.DefaultLocale, "Display locale, e.g. en-GB or de")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := service.NewService(
		geocoding.NewClient(cfg.Upstream.GeocodingBaseURL, cfg.Upstream.Timeout, cfg.Upstream.UserAgent, logger),
		forecast.NewClient(cfg.Upstream.ForecastBaseURL, cfg.Upstream.Timeout, cfg.Upstream.UserAgent, logger),
		nil,
		logger,
	)

	view, err := svc.Search(ctx, session.NewDisplay(), *query, *locale)
	if errors.Is(err, service.ErrEmptyQuery) {
		flag.Usage()
		os.Exit(2)
	}

	if werr := writeView(os.Stdout, view); werr != nil {
		logger.Fatal("Failed to write output", zap.Error(werr))
	}
	if err != nil {
		os.Exit(1)
	}
}
