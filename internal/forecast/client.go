// Package forecast fetches and normalizes Open-Meteo forecasts.
package forecast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/geoweather/internal/metrics"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// API Docs: https://open-meteo.com/en/docs
const forecastPath = "/v1/forecast"

// Field sets requested on every call
var (
	CurrentFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "is_day",
		"precipitation", "rain", "showers", "snowfall", "weather_code", "cloud_cover",
		"pressure_msl", "surface_pressure", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m",
	}
	DailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "sunrise", "sunset",
		"precipitation_sum", "rain_sum", "showers_sum", "snowfall_sum", "precipitation_hours",
		"precipitation_probability_max", "wind_speed_10m_max", "wind_gusts_10m_max",
		"wind_direction_10m_dominant",
	}
	HourlyFields = []string{"temperature_2m", "weather_code"}
)

// Client fetches forecasts for coordinates
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a forecast client for the given base URL
func NewClient(baseURL string, timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		http:   rc,
		logger: logger.With(zap.String("component", "forecast")),
	}
}

// Fetch requests the forecast for lat/lon in the location's own timezone.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*model.ForecastResponse, error) {
	var payload model.ForecastResponse
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  formatCoord(lat),
			"longitude": formatCoord(lon),
			"current":   strings.Join(CurrentFields, ","),
			"daily":     strings.Join(DailyFields, ","),
			"hourly":    strings.Join(HourlyFields, ","),
			"timezone":  "auto",
		}).
		ForceContentType("application/json").
		SetResult(&payload).
		Get(forecastPath)
	metrics.ObserveUpstream("forecast", resp, err, started)
	if err != nil && undecodable(resp) {
		return nil, fmt.Errorf("%w: %w: forecast: %v", model.ErrNetwork, model.ErrParse, err)
	}
	if err != nil {
		c.logger.Warn("forecast request failed",
			zap.Float64("latitude", lat),
			zap.Float64("longitude", lon),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: forecast request failed: %v", model.ErrNetwork, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn("forecast returned non-success status", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: forecast returned status %d", model.ErrNetwork, resp.StatusCode())
	}

	return &payload, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// undecodable reports whether a failed request did get a successful
// response, so the failure lies in decoding its body.
func undecodable(resp *resty.Response) bool {
	return resp != nil && resp.RawResponse != nil && resp.IsSuccess()
}
