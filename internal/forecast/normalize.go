package forecast

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host

	"github.com/alexivanou/geoweather/internal/model"
)

const (
	// DailyDays is the number of days shown in the multi-day forecast
	DailyDays = 5
	// HourlyWindow is the number of hourly slots considered
	HourlyWindow = 24
	// HourlyStep samples every second slot of the window
	HourlyStep = 2
)

var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

const dateLayout = "2006-01-02"

// Normalize converts the raw payload into the display-independent model.
// Timestamps are interpreted in the location's timezone. Ragged arrays are
// truncated to the shortest one.
func Normalize(resp *model.ForecastResponse) (*model.Forecast, error) {
	loc := location(resp)

	currentTime, err := parseTime(resp.Current.Time, loc)
	if err != nil {
		return nil, err
	}

	f := &model.Forecast{
		Timezone: loc.String(),
		Current: model.CurrentConditions{
			Time:                currentTime,
			Temperature:         resp.Current.Temperature2m,
			ApparentTemperature: resp.Current.ApparentTemperature,
			Humidity:            resp.Current.RelativeHumidity2m,
			WindSpeed:           resp.Current.WindSpeed10m,
			Pressure:            resp.Current.PressureMSL,
			WeatherCode:         resp.Current.WeatherCode,
			IsDay:               resp.Current.IsDay == 1,
		},
	}

	d := resp.Daily
	days := min(len(d.Time), len(d.WeatherCode), len(d.Temperature2mMax), len(d.Temperature2mMin), DailyDays)
	f.Daily = make([]model.DailyForecastEntry, 0, days)
	for i := 0; i < days; i++ {
		date, err := time.ParseInLocation(dateLayout, d.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: daily time %q", model.ErrNetwork, model.ErrParse, d.Time[i])
		}
		f.Daily = append(f.Daily, model.DailyForecastEntry{
			Date:        date,
			WeatherCode: d.WeatherCode[i],
			TempMax:     d.Temperature2mMax[i],
			TempMin:     d.Temperature2mMin[i],
		})
	}

	h := resp.Hourly
	slots := min(len(h.Time), len(h.WeatherCode), len(h.Temperature2m), HourlyWindow)
	f.Hourly = make([]model.HourlyForecastEntry, 0, (slots+HourlyStep-1)/HourlyStep)
	for i := 0; i < slots; i += HourlyStep {
		t, err := parseTime(h.Time[i], loc)
		if err != nil {
			return nil, err
		}
		f.Hourly = append(f.Hourly, model.HourlyForecastEntry{
			Time:        t,
			WeatherCode: h.WeatherCode[i],
			Temperature: h.Temperature2m[i],
		})
	}

	return f, nil
}

// location prefers the IANA zone and falls back to the fixed offset when
// the zone database does not know it.
func location(resp *model.ForecastResponse) *time.Location {
	if resp.Timezone != "" {
		if loc, err := time.LoadLocation(resp.Timezone); err == nil {
			return loc
		}
	}
	name := resp.TimezoneAbbreviation
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, resp.UTCOffsetSeconds)
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %w: time %q", model.ErrNetwork, model.ErrParse, value)
}

