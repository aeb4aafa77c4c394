package repository

import (
	"context"
	"strings"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/jmoiron/sqlx"
)

// PlaceRepository answers place-name lookups against the gazetteer
type PlaceRepository interface {
	FindBestMatch(ctx context.Context, name string) (*model.Suggestion, error)
	SearchPlaces(ctx context.Context, prefix string, limit int) ([]model.Suggestion, error)
	FindNearest(ctx context.Context, lat, lon float64) (*model.Suggestion, float64, error)
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// CountryRepository writes countries and their first-level regions
type CountryRepository interface {
	BulkInsertCountries(ctx context.Context, countries []model.Country) error
	BulkInsertRegions(ctx context.Context, regions []model.Region) error
}

// Container holds all repositories
type Container struct {
	Place   PlaceRepository
	Country CountryRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Place:   &pgPlaceRepository{db: db},
			Country: &pgCountryRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Place:   &sqlitePlaceRepository{db: db},
		Country: &sqliteCountryRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether the gazetteer holds no cities yet
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities")
	if err != nil {
		// Missing table counts as empty
		return true, nil
	}
	return count == 0, nil
}

// suggestionColumns selects a model.Suggestion from cities c joined with
// countries cnt and regions r.
const suggestionColumns = `
	c.id,
	c.name,
	COALESCE(r.name, '') AS region,
	cnt.name AS country,
	c.population,
	c.lat,
	c.lon`

const suggestionJoins = `
	FROM cities c
	JOIN countries cnt ON cnt.code = c.country_code
	LEFT JOIN regions r ON r.code = c.country_code || '.' || c.admin1_code`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern builds a LIKE pattern matching values that start with s
func prefixPattern(s string) string {
	return likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func inBatches[T any](items []T, size int, fn func([]T) error) error {
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		if err := fn(items[i:end]); err != nil {
			return err
		}
	}
	return nil
}
