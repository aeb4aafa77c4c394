package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/alexivanou/geoweather/internal/presenter"
	"github.com/alexivanou/geoweather/internal/service"
	"github.com/alexivanou/geoweather/internal/session"
	"go.uber.org/zap"
)

//go:embed web/templates/*.html web/static/*
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/templates/index.html"))

// staticFS serves web/static under /static/
func staticFS() http.FileSystem {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

type pageData struct {
	Query   string
	Locale  string
	Locales []string
	View    session.View
}

// Index handles GET /. A "q" parameter runs a search; the first visit of a
// session shows the default location.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	display := h.display(w, r)
	locale := h.locale(r)

	query, explicit := r.URL.Query()["q"]
	q := ""
	if explicit {
		q = query[0]
	} else if display.View().Token == 0 {
		q = h.defaultLocation
	}

	var view session.View
	if q != "" {
		var err error
		view, err = h.service.Search(r.Context(), display, q, locale)
		if err != nil && !errors.Is(err, service.ErrEmptyQuery) {
			h.logger.Debug("search did not display", zap.String("query", q), zap.Error(err))
		}
	} else {
		view = display.View()
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{
		Query:   view.Query,
		Locale:  locale,
		Locales: presenter.SupportedLocales(),
		View:    view,
	}); err != nil {
		h.logger.Error("Error rendering page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if view.State == session.Failed {
		display.Dismiss()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
