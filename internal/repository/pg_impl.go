package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgPlaceRepository struct {
	db *sqlx.DB
}

func (r *pgPlaceRepository) FindBestMatch(ctx context.Context, name string) (*model.Suggestion, error) {
	q := `SELECT` + suggestionColumns + suggestionJoins + `
		WHERE unaccent(LOWER(c.name)) LIKE unaccent($1)
			OR LOWER(c.ascii_name) LIKE unaccent($1)
		ORDER BY
			CASE WHEN unaccent(LOWER(c.name)) = unaccent(LOWER($2))
				OR LOWER(c.ascii_name) = unaccent(LOWER($2)) THEN 0 ELSE 1 END,
			c.population DESC
		LIMIT 1
	`
	var s model.Suggestion
	if err := r.db.GetContext(ctx, &s, q, prefixPattern(name), name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *pgPlaceRepository) SearchPlaces(ctx context.Context, prefix string, limit int) ([]model.Suggestion, error) {
	q := `SELECT` + suggestionColumns + suggestionJoins + `
		WHERE unaccent(LOWER(c.name)) LIKE unaccent($1)
			OR LOWER(c.ascii_name) LIKE unaccent($1)
		ORDER BY c.population DESC, c.id
		LIMIT $2
	`
	var results []model.Suggestion
	if err := r.db.SelectContext(ctx, &results, q, prefixPattern(prefix), limit); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pgPlaceRepository) FindNearest(ctx context.Context, lat, lon float64) (*model.Suggestion, float64, error) {
	// Haversine via SQL
	q := `SELECT` + suggestionColumns + `,
			(
				6371 * acos(
					least(1.0, greatest(-1.0,
						cos(radians($1)) * cos(radians(c.lat)) * cos(radians(c.lon) - radians($2)) +
						sin(radians($1)) * sin(radians(c.lat))
					))
				)
			) AS distance` + suggestionJoins + `
		ORDER BY distance ASC
		LIMIT 1
	`
	type placeWithDist struct {
		model.Suggestion
		Distance float64 `db:"distance"`
	}

	var res placeWithDist
	if err := r.db.GetContext(ctx, &res, q, lat, lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	return &res.Suggestion, res.Distance, nil
}

func (r *pgPlaceRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	// Postgres allows 65535 parameters per statement
	return inBatches(cities, 2000, func(batch []model.City) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cities (id, name, ascii_name, country_code, admin1_code, population, lat, lon, timezone)
		VALUES (:id, :name, :ascii_name, :country_code, :admin1_code, :population, :lat, :lon, :timezone)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			ascii_name = EXCLUDED.ascii_name,
			population = EXCLUDED.population`,
			batch)
		return err
	})
}

type pgCountryRepository struct {
	db *sqlx.DB
}

func (r *pgCountryRepository) BulkInsertCountries(ctx context.Context, countries []model.Country) error {
	return inBatches(countries, 1000, func(batch []model.Country) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO countries (code, name)
		VALUES (:code, :name)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`,
			batch)
		return err
	})
}

func (r *pgCountryRepository) BulkInsertRegions(ctx context.Context, regions []model.Region) error {
	return inBatches(regions, 1000, func(batch []model.Region) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO regions (code, country_code, name)
		VALUES (:code, :country_code, :name)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`,
			batch)
		return err
	})
}
