package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/alexivanou/geoweather/internal/forecast"
	"github.com/alexivanou/geoweather/internal/metrics"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/presenter"
	"github.com/alexivanou/geoweather/internal/session"
	"go.uber.org/zap"
)

// ErrEmptyQuery is returned for blank searches; they never reach the display
var ErrEmptyQuery = errors.New("query is empty")

// ErrSuggestUnavailable is returned when no gazetteer is configured
var ErrSuggestUnavailable = errors.New("suggestions are not available")

// Resolver turns free text into a location
type Resolver interface {
	Resolve(ctx context.Context, query string) (*model.Location, error)
}

// ForecastFetcher retrieves the raw forecast for coordinates
type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*model.ForecastResponse, error)
}

// Suggester offers place names while the user types
type Suggester interface {
	Suggest(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error)
}

// Service runs weather searches
type Service struct {
	resolver  Resolver
	fetcher   ForecastFetcher
	suggester Suggester
	logger    *zap.Logger

	total      atomic.Int64
	displayed  atomic.Int64
	notFound   atomic.Int64
	failed     atomic.Int64
	superseded atomic.Int64
}

// NewService creates a new service instance. suggester may be nil.
func NewService(resolver Resolver, fetcher ForecastFetcher, suggester Suggester, logger *zap.Logger) *Service {
	return &Service{
		resolver:  resolver,
		fetcher:   fetcher,
		suggester: suggester,
		logger:    logger,
	}
}

// Lookup resolves query, fetches its forecast and renders the panels for
// locale. The forecast is only requested once the location resolved.
func (s *Service) Lookup(ctx context.Context, query, locale string) (*model.Panels, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	loc, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, &model.LookupError{Stage: model.StageGeocoding, Query: query, Err: err}
	}

	raw, err := s.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, &model.LookupError{Stage: model.StageForecast, Query: query, Err: err}
	}

	f, err := forecast.Normalize(raw)
	if err != nil {
		return nil, &model.LookupError{Stage: model.StageForecast, Query: query, Err: err}
	}

	return presenter.New(locale).Render(*loc, f), nil
}

// Search runs a lookup on behalf of display. The returned view is what the
// display shows afterwards. A lookup failure is shown as an error panel and
// also returned. ErrSuperseded means a newer search owns the display and
// the result was dropped.
func (s *Service) Search(ctx context.Context, display *session.Display, query, locale string) (session.View, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return display.View(), ErrEmptyQuery
	}

	s.total.Add(1)
	tok := display.Begin(query)
	logger := s.logger.With(zap.String("query", query), zap.Uint64("seq", uint64(tok)))

	panels, lookupErr := s.Lookup(ctx, query, locale)
	if lookupErr == nil {
		err := display.Show(tok, panels)
		if err != nil {
			return s.dropped(logger, display, err)
		}
		s.displayed.Add(1)
		metrics.LookupCounter.WithLabelValues(metrics.OutcomeDisplayed).Inc()
		logger.Info("weather displayed", zap.String("location", panels.Current.Label))
		return display.View(), nil
	}

	if err := display.Fail(tok, presenter.RenderError(lookupErr)); err != nil {
		return s.dropped(logger, display, err)
	}

	if errors.Is(lookupErr, model.ErrLocationNotFound) {
		s.notFound.Add(1)
		metrics.LookupCounter.WithLabelValues(metrics.OutcomeNotFound).Inc()
		logger.Info("location not found")
	} else {
		s.failed.Add(1)
		metrics.LookupCounter.WithLabelValues(metrics.OutcomeFailed).Inc()
		logger.Warn("weather lookup failed", zap.Error(lookupErr))
	}
	return display.View(), lookupErr
}

func (s *Service) dropped(logger *zap.Logger, display *session.Display, err error) (session.View, error) {
	s.superseded.Add(1)
	metrics.LookupCounter.WithLabelValues(metrics.OutcomeSuperseded).Inc()
	logger.Debug("discarding stale result")
	return display.View(), err
}

// Suggest returns gazetteer suggestions for a partial place name
func (s *Service) Suggest(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	if s.suggester == nil {
		return nil, ErrSuggestUnavailable
	}
	return s.suggester.Suggest(ctx, req)
}

// LookupStats returns the search counters
func (s *Service) LookupStats() model.LookupStats {
	return model.LookupStats{
		Total:      s.total.Load(),
		Displayed:  s.displayed.Load(),
		NotFound:   s.notFound.Load(),
		Failed:     s.failed.Load(),
		Superseded: s.superseded.Load(),
	}
}
