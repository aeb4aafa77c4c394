package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqlitePlaceRepository struct {
	db *sqlx.DB
}

func (r *sqlitePlaceRepository) FindBestMatch(ctx context.Context, name string) (*model.Suggestion, error) {
	q := `SELECT` + suggestionColumns + suggestionJoins + `
		WHERE LOWER(c.name) LIKE ? ESCAPE '\' OR LOWER(c.ascii_name) LIKE ? ESCAPE '\'
		ORDER BY
			CASE WHEN LOWER(c.name) = LOWER(?) OR LOWER(c.ascii_name) = LOWER(?) THEN 0 ELSE 1 END,
			c.population DESC
		LIMIT 1
	`
	pattern := prefixPattern(name)

	var s model.Suggestion
	if err := r.db.GetContext(ctx, &s, q, pattern, pattern, name, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqlitePlaceRepository) SearchPlaces(ctx context.Context, prefix string, limit int) ([]model.Suggestion, error) {
	q := `SELECT` + suggestionColumns + suggestionJoins + `
		WHERE LOWER(c.name) LIKE ? ESCAPE '\' OR LOWER(c.ascii_name) LIKE ? ESCAPE '\'
		ORDER BY c.population DESC, c.id
		LIMIT ?
	`
	pattern := prefixPattern(prefix)

	var results []model.Suggestion
	if err := r.db.SelectContext(ctx, &results, q, pattern, pattern, limit); err != nil {
		return nil, err
	}
	return results, nil
}

// nearestSearchSteps are the half-widths, in degrees, of the boxes
// FindNearest tries in turn. The last one covers the whole globe.
var nearestSearchSteps = []float64{2, 8, 32, 180}

func (r *sqlitePlaceRepository) FindNearest(ctx context.Context, lat, lon float64) (*model.Suggestion, float64, error) {
	for _, delta := range nearestSearchSteps {
		place, dist, err := r.nearestInBox(ctx, lat, lon, delta)
		if err != nil {
			return nil, 0, err
		}
		// a closer place may lie just outside the box
		if place != nil && (delta >= 180 || dist <= boxRadius(lat, delta)) {
			return place, dist, nil
		}
	}
	return nil, 0, nil
}

func (r *sqlitePlaceRepository) nearestInBox(ctx context.Context, lat, lon, delta float64) (*model.Suggestion, float64, error) {
	ranges := lonRanges(lon, delta)
	lonClause := "c.lon BETWEEN ? AND ?"
	args := []any{lat - delta, lat + delta, ranges[0][0], ranges[0][1]}
	if len(ranges) == 2 {
		lonClause += " OR c.lon BETWEEN ? AND ?"
		args = append(args, ranges[1][0], ranges[1][1])
	}

	q := `SELECT` + suggestionColumns + suggestionJoins + `
		WHERE c.lat BETWEEN ? AND ? AND (` + lonClause + `)
	`
	var candidates []model.Suggestion
	if err := r.db.SelectContext(ctx, &candidates, q, args...); err != nil {
		return nil, 0, err
	}

	var nearest *model.Suggestion
	minDist := math.MaxFloat64

	for i := range candidates {
		place := candidates[i]
		dist := calculateDistance(lat, lon, place.Lat, place.Lon)
		if dist < minDist {
			minDist = dist
			nearest = &place
		}
	}

	if nearest == nil {
		return nil, 0, nil
	}
	return nearest, minDist, nil
}

// lonRanges returns the longitude intervals covered by lon±delta, split in
// two where the box crosses the antimeridian.
func lonRanges(lon, delta float64) [][2]float64 {
	lo, hi := lon-delta, lon+delta
	switch {
	case delta >= 180:
		return [][2]float64{{-180, 180}}
	case lo < -180:
		return [][2]float64{{-180, hi}, {lo + 360, 180}}
	case hi > 180:
		return [][2]float64{{lo, 180}, {-180, hi - 360}}
	}
	return [][2]float64{{lo, hi}}
}

// boxRadius is the distance in km from (lat, ·) to the nearest point outside
// a box of half-width delta degrees. Any place closer than this is inside.
func boxRadius(lat, delta float64) float64 {
	const R = 6371
	rad := math.Pi / 180.0
	byLat := R * delta * rad
	byLon := R * math.Asin(math.Min(1, math.Cos(lat*rad)*math.Sin(delta*rad)))
	return math.Min(byLat, byLon)
}

// calculateDistance returns the great-circle distance in km
func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)
	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

func (r *sqlitePlaceRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	// 100 rows * 9 params stays under SQLITE_MAX_VARIABLE_NUMBER
	return inBatches(cities, 100, func(batch []model.City) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO cities (id, name, ascii_name, country_code, admin1_code, population, lat, lon, timezone)
		VALUES (:id, :name, :ascii_name, :country_code, :admin1_code, :population, :lat, :lon, :timezone)`,
			batch)
		return err
	})
}

type sqliteCountryRepository struct {
	db *sqlx.DB
}

func (r *sqliteCountryRepository) BulkInsertCountries(ctx context.Context, countries []model.Country) error {
	return inBatches(countries, 400, func(batch []model.Country) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO countries (code, name)
		VALUES (:code, :name)
		ON CONFLICT (code) DO UPDATE SET name = excluded.name`,
			batch)
		return err
	})
}

func (r *sqliteCountryRepository) BulkInsertRegions(ctx context.Context, regions []model.Region) error {
	return inBatches(regions, 300, func(batch []model.Region) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO regions (code, country_code, name)
		VALUES (:code, :country_code, :name)
		ON CONFLICT (code) DO UPDATE SET name = excluded.name`,
			batch)
		return err
	})
}
