//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/database"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPostgres connects to a running PostgreSQL instance and migrates it
func setupPostgres(t *testing.T) *sqlx.DB {
	cfg := config.DBConfig{
		Type:     config.DBTypePostgreSQL,
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     envOr("TEST_DB_PORT", "5432"),
		User:     envOr("TEST_DB_USER", "geoweather"),
		Password: envOr("TEST_DB_PASSWORD", "geoweather_password"),
		Name:     envOr("TEST_DB_NAME", "geoweather_test"),
		SSLMode:  "disable",
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPlaceRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupPostgres(t)
	defer db.Close()

	repos := NewRepositories(db, config.DBTypePostgreSQL)
	ctx := context.Background()

	require.NoError(t, repos.Country.BulkInsertCountries(ctx, []model.Country{{Code: "IN", Name: "India"}}))
	require.NoError(t, repos.Country.BulkInsertRegions(ctx, []model.Region{{Code: "IN.35", CountryCode: "IN", Name: "Madhya Pradesh"}}))
	require.NoError(t, repos.Place.BulkInsertCities(ctx, []model.City{
		{ID: 1275841, Name: "Bhopal", ASCIIName: "Bhopal", CountryCode: "IN", Admin1Code: "35", Population: 1599914, Lat: 23.25469, Lon: 77.40289},
	}))

	t.Run("FindBestMatch", func(t *testing.T) {
		place, err := repos.Place.FindBestMatch(ctx, "bhopal")
		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Equal(t, "Madhya Pradesh", place.Region)
	})

	t.Run("SearchPlaces", func(t *testing.T) {
		results, err := repos.Place.SearchPlaces(ctx, "Bho", 10)
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("FindNearest", func(t *testing.T) {
		place, dist, err := repos.Place.FindNearest(ctx, 23.26, 77.41)
		require.NoError(t, err)
		require.NotNil(t, place)
		assert.Less(t, dist, 5.0)
	})
}
