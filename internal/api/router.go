package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alexivanou/geoweather/internal/metrics"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"github.com/alexivanou/geoweather/internal/stats"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the handlers. Stats may be nil.
type Options struct {
	Logger          *zap.Logger
	DefaultLocation string
	DefaultLocale   string
	Stats           *stats.Collector
}

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, sessions *session.Store, statsCollector *stats.Collector, opts Options) *mux.Router {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	opts.Stats = statsCollector
	handler := NewHandler(svc, sessions, opts)

	router := mux.NewRouter()
	router.Use(instrument(opts.Logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Page
	router.HandleFunc("/", handler.Index).Methods("GET")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(staticFS()))).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/weather", handler.Weather).Methods("GET")
	v1.HandleFunc("/session", handler.Session).Methods("GET")
	v1.HandleFunc("/suggest", handler.Suggest).Methods("GET")
	v1.HandleFunc("/stats", handler.Stats).Methods("GET")

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests per route template and logs them
func instrument(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RequestCounter.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()

			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(started)),
			)
		})
	}
}
