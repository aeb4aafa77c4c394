package geocoding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/geoweather/internal/metrics"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Bhopal&count=1
const searchPath = "/v1/search"

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
}

// Client resolves place names through the Open-Meteo geocoding API
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a geocoding client for the given base URL
func NewClient(baseURL string, timeout time.Duration, userAgent string, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		http:   rc,
		logger: logger.With(zap.String("component", "geocoding")),
	}
}

// Resolve returns the first match for query. Only one result is requested;
// there is no disambiguation.
func (c *Client) Resolve(ctx context.Context, query string) (*model.Location, error) {
	var payload searchResponse
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":  query,
			"count": "1",
		}).
		ForceContentType("application/json").
		SetResult(&payload).
		Get(searchPath)
	metrics.ObserveUpstream("geocoding", resp, err, started)
	if err != nil && undecodable(resp) {
		return nil, fmt.Errorf("%w: %w: geocoding: %v", model.ErrNetwork, model.ErrParse, err)
	}
	if err != nil {
		c.logger.Warn("geocoding request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: geocoding request failed: %v", model.ErrNetwork, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn("geocoding returned non-success status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: geocoding returned status %d", model.ErrNetwork, resp.StatusCode())
	}

	if len(payload.Results) == 0 {
		return nil, model.ErrLocationNotFound
	}

	r := payload.Results[0]
	c.logger.Debug("resolved location",
		zap.String("query", query),
		zap.String("name", r.Name),
		zap.Float64("latitude", r.Latitude),
		zap.Float64("longitude", r.Longitude),
	)

	return &model.Location{
		Name:      r.Name,
		Region:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// undecodable reports whether a failed request did get a successful
// response, so the failure lies in decoding its body.
func undecodable(resp *resty.Response) bool {
	return resp != nil && resp.RawResponse != nil && resp.IsSuccess()
}
