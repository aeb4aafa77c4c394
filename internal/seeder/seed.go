package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/repository"
	"go.uber.org/zap"
)

// Result summarizes one import
type Result struct {
	Countries int
	Regions   int
	Cities    int
}

// Seed imports countries, regions and cities into the gazetteer. Existing
// rows are updated in place, so re-running an import is safe.
func Seed(ctx context.Context, parser *Parser, repos *repository.Container, logger *zap.Logger) (*Result, error) {
	logger.Info("Parsing countries...")
	countries, err := parser.ParseCountries()
	if err != nil {
		return nil, fmt.Errorf("failed to parse countries: %w", err)
	}
	known := CreateCountryCodeMap(countries)

	logger.Info("Parsing regions...")
	regions, err := parser.ParseRegions(known)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regions: %w", err)
	}

	logger.Info("Inserting countries...", zap.Int("count", len(countries)))
	if err := repos.Country.BulkInsertCountries(ctx, countries); err != nil {
		return nil, fmt.Errorf("failed to insert countries: %w", err)
	}

	logger.Info("Inserting regions...", zap.Int("count", len(regions)))
	if err := repos.Country.BulkInsertRegions(ctx, regions); err != nil {
		return nil, fmt.Errorf("failed to insert regions: %w", err)
	}

	logger.Info("Importing cities (streaming mode)...")
	cities, err := parser.ProcessCities(known, func(batch []model.City) error {
		return repos.Place.BulkInsertCities(ctx, batch)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import cities: %w", err)
	}

	res := &Result{Countries: len(countries), Regions: len(regions), Cities: cities}
	logger.Info("Gazetteer import finished",
		zap.Int("countries", res.Countries),
		zap.Int("regions", res.Regions),
		zap.Int("cities", res.Cities),
	)
	return res, nil
}
