package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/geoweather/internal/geocoding"
	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/presenter"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"github.com/alexivanou/geoweather/internal/stats"
	"go.uber.org/zap"
)

const sessionCookie = "geoweather_session"

// Handler handles HTTP requests
type Handler struct {
	service         service.ServiceInterface
	sessions        *session.Store
	stats           *stats.Collector
	logger          *zap.Logger
	defaultLocation string
	defaultLocale   string
}

// NewHandler creates a new handler instance
func NewHandler(svc service.ServiceInterface, sessions *session.Store, opts Options) *Handler {
	return &Handler{
		service:         svc,
		sessions:        sessions,
		stats:           opts.Stats,
		logger:          opts.Logger,
		defaultLocation: opts.DefaultLocation,
		defaultLocale:   opts.DefaultLocale,
	}
}

// Weather handles GET /api/v1/weather
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	display := h.display(w, r)

	view, err := h.service.Search(r.Context(), display, query, h.locale(r))
	if errors.Is(err, service.ErrEmptyQuery) {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	status := searchStatus(err)
	if view.State == session.Failed {
		display.Dismiss()
	}
	h.writeJSON(w, status, view)
}

// Session handles GET /api/v1/session and reports what the caller's
// display currently shows.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	display := h.display(w, r)
	h.writeJSON(w, http.StatusOK, display.View())
}

// Suggest handles GET /api/v1/suggest
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	response, err := h.service.Suggest(r.Context(), model.SuggestRequest{Query: query, Limit: limit})
	switch {
	case errors.Is(err, geocoding.ErrQueryTooShort):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrSuggestUnavailable):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("Error suggesting places", zap.String("query", query), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// Stats handles GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		http.Error(w, "statistics are not available", http.StatusNotFound)
		return
	}

	s, err := h.stats.Collect(r.Context())
	if err != nil {
		h.logger.Error("Error collecting statistics", zap.Error(err))
		http.Error(w, "failed to collect statistics", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// display returns the caller's display, issuing a session cookie when the
// request carried none or an expired one.
func (h *Handler) display(w http.ResponseWriter, r *http.Request) *session.Display {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	newID, display := h.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return display
}

// locale picks the display locale from ?lang=, then Accept-Language, then
// the configured default.
func (h *Handler) locale(r *http.Request) string {
	prefs := make([]string, 0, 3)
	if lang := r.URL.Query().Get("lang"); lang != "" {
		prefs = append(prefs, lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		prefs = append(prefs, accept)
	}
	prefs = append(prefs, h.defaultLocale)
	return presenter.New(prefs...).Locale()
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

// searchStatus maps a search outcome to an HTTP status
func searchStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, session.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, model.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
