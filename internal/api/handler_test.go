package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexivanou/geoweather/internal/config"
	"github.com/alexivanou/geoweather/internal/geocoding"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"github.com/alexivanou/geoweather/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockService is a mock implementation of ServiceInterface
type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, display *session.Display, query, locale string) (session.View, error) {
	args := m.Called(ctx, display, query, locale)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockService) Suggest(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SuggestResponse), args.Error(1)
}

func (m *MockService) LookupStats() model.LookupStats {
	args := m.Called()
	return args.Get(0).(model.LookupStats)
}

func newTestHandler(svc service.ServiceInterface) *Handler {
	return NewHandler(svc, session.NewStore(time.Minute), Options{
		Logger:          zap.NewNop(),
		DefaultLocation: "Bhopal",
		DefaultLocale:   "en-US",
	})
}

var displayedView = session.View{
	State: session.Displayed,
	Token: 1,
	Query: "Bhopal",
	Panels: &model.Panels{
		Location: model.Location{Name: "Bhopal", Region: "Madhya Pradesh", Country: "India"},
		Current: model.CurrentPanel{
			Label:       "Bhopal, Madhya Pradesh",
			Date:        "Friday, June 14, 2024",
			Temperature: "22°C",
			Icon:        "fas fa-cloud",
			Description: "Partly cloudy",
		},
		Daily: []model.DailyCard{{Date: "Fri, Jun 14", Icon: "fas fa-bolt", High: "30°", Low: "21°", Description: "Thunderstorm"}},
	},
}

func failedView(msg string) session.View {
	return session.View{State: session.Failed, Token: 1, Query: "x", Error: &model.ErrorPanel{Message: msg}}
}

func TestHandler_Weather(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		lang           string
		mockSetup      func(*MockService)
		expectedStatus int
		expectedState  string
	}{
		{
			name:  "displayed",
			query: "Bhopal",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "Bhopal", "en-US").Return(displayedView, nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "displayed",
		},
		{
			name:  "locale from lang parameter",
			query: "Bhopal",
			lang:  "de",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "Bhopal", "de-DE").Return(displayedView, nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "displayed",
		},
		{
			name:  "not found",
			query: "Nowhereville",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "Nowhereville", "en-US").
					Return(failedView("Error: Location not found. Please try again."), model.ErrLocationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedState:  "error",
		},
		{
			name:  "upstream failure",
			query: "Bhopal",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "Bhopal", "en-US").
					Return(failedView("Error: Failed to fetch weather data. Please try again."), fmt.Errorf("%w: status 503", model.ErrNetwork))
			},
			expectedStatus: http.StatusBadGateway,
			expectedState:  "error",
		},
		{
			name:  "superseded",
			query: "Bhopal",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "Bhopal", "en-US").
					Return(session.View{State: session.Loading, Token: 2, Query: "Paris"}, session.ErrSuperseded)
			},
			expectedStatus: http.StatusConflict,
			expectedState:  "loading",
		},
		{
			name:  "empty query",
			query: "",
			mockSetup: func(ms *MockService) {
				ms.On("Search", mock.Anything, mock.Anything, "", "en-US").Return(session.View{}, service.ErrEmptyQuery)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.mockSetup(mockService)
			handler := newTestHandler(mockService)

			req, _ := http.NewRequest("GET", "/api/v1/weather", nil)
			q := req.URL.Query()
			q.Add("q", tt.query)
			if tt.lang != "" {
				q.Add("lang", tt.lang)
			}
			req.URL.RawQuery = q.Encode()

			rr := httptest.NewRecorder()
			handler.Weather(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
			if tt.expectedState == "" {
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body["state"])
		})
	}
}

func TestHandler_Weather_IssuesSessionCookie(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Search", mock.Anything, mock.Anything, "Bhopal", "en-US").Return(displayedView, nil)
	handler := newTestHandler(mockService)

	rr := httptest.NewRecorder()
	handler.Weather(rr, httptest.NewRequest("GET", "/api/v1/weather?q=Bhopal", nil))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// the same session is reused and no new cookie is set
	req := httptest.NewRequest("GET", "/api/v1/weather?q=Bhopal", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	handler.Weather(rr, req)
	assert.Empty(t, rr.Result().Cookies())

	first := mockService.Calls[0].Arguments.Get(1).(*session.Display)
	second := mockService.Calls[1].Arguments.Get(1).(*session.Display)
	assert.Same(t, first, second)
}

func TestHandler_Suggest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		limit          string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:  "successful request",
			query: "Bho",
			limit: "5",
			mockSetup: func(ms *MockService) {
				ms.On("Suggest", mock.Anything, model.SuggestRequest{Query: "Bho", Limit: 5}).Return(&model.SuggestResponse{
					Results: []model.Suggestion{{ID: 1275841, Name: "Bhopal", Country: "India", Population: 1599914}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing query parameter",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			query:          "Bho",
			limit:          "-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "query too short",
			query: "B",
			mockSetup: func(ms *MockService) {
				ms.On("Suggest", mock.Anything, mock.Anything).Return(nil, geocoding.ErrQueryTooShort)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "gazetteer disabled",
			query: "Bho",
			mockSetup: func(ms *MockService) {
				ms.On("Suggest", mock.Anything, mock.Anything).Return(nil, service.ErrSuggestUnavailable)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:  "repository failure",
			query: "Bho",
			mockSetup: func(ms *MockService) {
				ms.On("Suggest", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("database is locked"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}
			handler := newTestHandler(mockService)

			req, _ := http.NewRequest("GET", "/api/v1/suggest", nil)
			q := req.URL.Query()
			if tt.query != "" {
				q.Add("q", tt.query)
			}
			if tt.limit != "" {
				q.Add("limit", tt.limit)
			}
			req.URL.RawQuery = q.Encode()

			rr := httptest.NewRecorder()
			handler.Suggest(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_Index(t *testing.T) {
	t.Run("first visit shows the default location", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Search", mock.Anything, mock.Anything, "Bhopal", "en-US").Return(displayedView, nil)
		handler := newTestHandler(mockService)

		rr := httptest.NewRecorder()
		handler.Index(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		body := rr.Body.String()
		assert.Contains(t, body, "Bhopal, Madhya Pradesh")
		assert.Contains(t, body, "22°C")
		assert.Contains(t, body, "Thunderstorm")
		assert.Contains(t, body, `class="fas fa-bolt"`)
		assert.NotContains(t, body, `class="error"`)
	})

	t.Run("error banner", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Search", mock.Anything, mock.Anything, "Nowhereville", "en-GB").
			Return(failedView("Error: Location not found. Please try again."), model.ErrLocationNotFound)
		handler := newTestHandler(mockService)

		req := httptest.NewRequest("GET", "/?q=Nowhereville", nil)
		req.Header.Set("Accept-Language", "en-GB,en;q=0.8")
		rr := httptest.NewRecorder()
		handler.Index(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "Error: Location not found. Please try again.")
		assert.NotContains(t, body, "5-Day Forecast")
	})

	t.Run("escapes user input", func(t *testing.T) {
		mockService := new(MockService)
		view := failedView("Error: Location not found. Please try again.")
		view.Query = `<script>alert(1)</script>`
		mockService.On("Search", mock.Anything, mock.Anything, view.Query, "en-US").Return(view, model.ErrLocationNotFound)
		handler := newTestHandler(mockService)

		rr := httptest.NewRecorder()
		handler.Index(rr, httptest.NewRequest("GET", "/?q=%3Cscript%3Ealert(1)%3C%2Fscript%3E", nil))

		assert.NotContains(t, rr.Body.String(), "<script>alert(1)</script>")
	})
}

func TestRouter_HealthAndStats(t *testing.T) {
	mockService := new(MockService)
	mockService.On("LookupStats").Return(model.LookupStats{Total: 2, Displayed: 2})

	sessions := session.NewStore(time.Minute)
	collector := stats.NewCollector(nil, config.DBConfig{}, mockService, sessions)
	router := NewRouter(mockService, sessions, collector, Options{DefaultLocale: "en-US"})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body stats.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Lookups.Displayed)
	assert.Nil(t, body.Database)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "geoweather_http_requests_total"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_Stats_Disabled(t *testing.T) {
	handler := newTestHandler(new(MockService))

	rr := httptest.NewRecorder()
	handler.Stats(rr, httptest.NewRequest("GET", "/api/v1/stats", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Index_LanguageSelector(t *testing.T) {
	mockService := new(MockService)
	mockService.On("Search", mock.Anything, mock.Anything, "Bhopal", "de-DE").Return(displayedView, nil)
	handler := newTestHandler(mockService)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest("GET", "/?lang=de", nil))

	body := rr.Body.String()
	assert.Contains(t, body, `<html lang="de-DE">`)
	assert.Contains(t, body, `<option value="de-DE" selected>`)
	assert.Contains(t, body, `<option value="en-US">`)
}
