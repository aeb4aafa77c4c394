package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexivanou/geoweather/internal/model"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
	minSuggestLength    = 2
)

// ErrQueryTooShort is returned by Suggest for queries under the minimum length
var ErrQueryTooShort = errors.New("query must be at least 2 characters")

// PlaceIndex is the subset of the gazetteer repository the resolver needs
type PlaceIndex interface {
	FindBestMatch(ctx context.Context, name string) (*model.Suggestion, error)
	SearchPlaces(ctx context.Context, prefix string, limit int) ([]model.Suggestion, error)
	FindNearest(ctx context.Context, lat, lon float64) (*model.Suggestion, float64, error)
}

// Gazetteer resolves place names against the local GeoNames database
type Gazetteer struct {
	index PlaceIndex
}

// NewGazetteer creates a resolver backed by index
func NewGazetteer(index PlaceIndex) *Gazetteer {
	return &Gazetteer{index: index}
}

// Resolve returns the most populous place whose name matches query. A query
// of the form "lat, lon" resolves to the nearest known place, keeping the
// requested coordinates.
func (g *Gazetteer) Resolve(ctx context.Context, query string) (*model.Location, error) {
	query = strings.TrimSpace(query)
	if lat, lon, ok := parseCoordinates(query); ok {
		return g.resolveCoordinates(ctx, lat, lon)
	}

	match, err := g.index.FindBestMatch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("gazetteer lookup failed: %w", err)
	}
	if match == nil {
		return nil, model.ErrLocationNotFound
	}

	loc := match.Location()
	return &loc, nil
}

func (g *Gazetteer) resolveCoordinates(ctx context.Context, lat, lon float64) (*model.Location, error) {
	match, _, err := g.index.FindNearest(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("gazetteer lookup failed: %w", err)
	}
	if match == nil {
		return nil, model.ErrLocationNotFound
	}

	loc := match.Location()
	loc.Latitude, loc.Longitude = lat, lon
	return &loc, nil
}

// parseCoordinates accepts "lat,lon" with optional spaces
func parseCoordinates(s string) (float64, float64, bool) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Suggest returns places whose name starts with the query
func (g *Gazetteer) Suggest(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	query := strings.TrimSpace(req.Query)
	if len([]rune(query)) < minSuggestLength {
		return nil, ErrQueryTooShort
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}

	results, err := g.index.SearchPlaces(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	if results == nil {
		results = []model.Suggestion{}
	}

	return &model.SuggestResponse{Results: results}, nil
}
