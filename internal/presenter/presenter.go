// Package presenter turns a normalized forecast into display panels.
package presenter

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/wmo"
	"github.com/goodsign/monday"
)

// Error descriptions shown in the error panel
const (
	msgNotFound         = "Location not found"
	msgParse            = "Unexpected response from the weather service"
	msgNetwork          = "Failed to fetch weather data"
	msgGeocodingParse   = "Unexpected response from the location service"
	msgGeocodingNetwork = "Failed to reach the location service"
	msgUnknown          = "Something went wrong"
)

// Presenter formats panels for one display locale. It holds no mutable
// state and is safe for concurrent use.
type Presenter struct {
	spec localeSpec
}

// New returns a presenter for the best match of the given language
// preferences, falling back to en-US.
func New(prefs ...string) *Presenter {
	return &Presenter{spec: match(prefs...)}
}

// Locale returns the BCP 47 tag the presenter formats for
func (p *Presenter) Locale() string {
	return p.spec.tag.String()
}

// Render maps a location and its forecast to panels. Rendering the same
// input twice yields equal output.
func (p *Presenter) Render(loc model.Location, f *model.Forecast) *model.Panels {
	c := f.Current
	panels := &model.Panels{
		Location: loc,
		Current: model.CurrentPanel{
			Label:       loc.Label(),
			Date:        p.format(c.Time, p.spec.layouts.long),
			Temperature: Degrees(c.Temperature) + "C",
			Icon:        string(wmo.IconFor(c.WeatherCode, c.IsDay)),
			Description: wmo.Describe(c.WeatherCode),
			WindSpeed:   number(c.WindSpeed) + " km/h",
			Humidity:    number(c.Humidity) + "%",
			FeelsLike:   Degrees(c.ApparentTemperature) + "C",
			Pressure:    number(c.Pressure) + " hPa",
		},
		Daily:  make([]model.DailyCard, 0, len(f.Daily)),
		Hourly: make([]model.HourlyCard, 0, len(f.Hourly)),
	}

	for _, d := range f.Daily {
		panels.Daily = append(panels.Daily, model.DailyCard{
			Date:        p.format(d.Date, p.spec.layouts.short),
			Icon:        string(wmo.IconFor(d.WeatherCode, true)),
			High:        Degrees(d.TempMax),
			Low:         Degrees(d.TempMin),
			Description: wmo.Describe(d.WeatherCode),
		})
	}

	for _, h := range f.Hourly {
		panels.Hourly = append(panels.Hourly, model.HourlyCard{
			Time:        p.format(h.Time, p.spec.layouts.hour),
			Icon:        string(wmo.IconFor(h.WeatherCode, IsDaytime(h.Time))),
			Temperature: Degrees(h.Temperature),
		})
	}

	return panels
}

// RenderError builds the single message that replaces all content after a
// failed search.
func RenderError(err error) model.ErrorPanel {
	return model.ErrorPanel{Message: "Error: " + Describe(err) + ". Please try again."}
}

// Describe returns the user-facing description of a lookup failure. Upstream
// failures name the service that failed; the underlying error text is never
// shown.
func Describe(err error) string {
	geocoding := false
	var le *model.LookupError
	if errors.As(err, &le) {
		geocoding = le.Stage == model.StageGeocoding
	}

	switch {
	case errors.Is(err, model.ErrLocationNotFound):
		return msgNotFound
	case errors.Is(err, model.ErrParse) && geocoding:
		return msgGeocodingParse
	case errors.Is(err, model.ErrParse):
		return msgParse
	case errors.Is(err, model.ErrNetwork) && geocoding:
		return msgGeocodingNetwork
	case errors.Is(err, model.ErrNetwork):
		return msgNetwork
	default:
		return msgUnknown
	}
}

// IsDaytime is the hourly day/night heuristic: local hours 7 through 19.
func IsDaytime(t time.Time) bool {
	h := t.Hour()
	return h > 6 && h < 20
}

// Round rounds half up, so -0.5 becomes 0 and 21.5 becomes 22.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Degrees formats a rounded temperature with the degree sign
func Degrees(v float64) string {
	return strconv.Itoa(Round(v)) + "°"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (p *Presenter) format(t time.Time, layout string) string {
	return monday.Format(t, layout, p.spec.locale)
}
