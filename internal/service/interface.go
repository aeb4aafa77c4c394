package service

import (
	"context"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/session"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	Search(ctx context.Context, display *session.Display, query, locale string) (session.View, error)
	Suggest(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error)
	LookupStats() model.LookupStats
}
