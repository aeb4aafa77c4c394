package main

import (
	"bytes"
	"testing"

	"github.com/alexivanou/geoweather/internal/model"
	"github.com/alexivanou/geoweather/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteView_Panels(t *testing.T) {
	view := session.View{
		State: session.Displayed,
		Panels: &model.Panels{
			Current: model.CurrentPanel{
				Label:       "Bhopal, Madhya Pradesh",
				Date:        "Friday, June 14, 2024",
				Temperature: "22°C",
				Description: "Partly cloudy",
				WindSpeed:   "12.6 km/h",
				Humidity:    "64%",
				FeelsLike:   "23°C",
				Pressure:    "1003.2 hPa",
			},
			Daily: []model.DailyCard{
				{Date: "Fri, Jun 14", High: "30°", Low: "21°", Description: "Thunderstorm"},
			},
			Hourly: []model.HourlyCard{
				{Time: "12 AM", Temperature: "30°"},
				{Time: "2 AM", Temperature: "30°"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeView(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "Bhopal, Madhya Pradesh\nFriday, June 14, 2024")
	assert.Contains(t, out, "1003.2 hPa")
	assert.Contains(t, out, "5-Day Forecast")
	assert.Contains(t, out, "Thunderstorm")
	assert.Contains(t, out, "2 AM")
}

func TestWriteView_Error(t *testing.T) {
	view := session.View{
		State: session.Failed,
		Error: &model.ErrorPanel{Message: "Error: Location not found. Please try again."},
	}

	var buf bytes.Buffer
	require.NoError(t, writeView(&buf, view))
	assert.Equal(t, "Error: Location not found. Please try again.\n", buf.String())
}

func TestWriteView_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeView(&buf, session.View{}))
	assert.Empty(t, buf.String())
}
