package model

import "time"

// ForecastResponse is the raw forecast payload as returned by the provider
type ForecastResponse struct {
	Latitude             float64      `json:"latitude"`
	Longitude            float64      `json:"longitude"`
	Elevation            float64      `json:"elevation"`
	GenerationTimeMs     float64      `json:"generationtime_ms"`
	UTCOffsetSeconds     int          `json:"utc_offset_seconds"`
	Timezone             string       `json:"timezone"`
	TimezoneAbbreviation string       `json:"timezone_abbreviation"`
	Current              CurrentBlock `json:"current"`
	Daily                DailyBlock   `json:"daily"`
	Hourly               HourlyBlock  `json:"hourly"`
}

// CurrentBlock holds the "current" section of the forecast payload
type CurrentBlock struct {
	Time                string  `json:"time"`
	Interval            int     `json:"interval"`
	Temperature2m       float64 `json:"temperature_2m"`
	RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weather_code"`
	CloudCover          float64 `json:"cloud_cover"`
	PressureMSL         float64 `json:"pressure_msl"`
	SurfacePressure     float64 `json:"surface_pressure"`
	WindSpeed10m        float64 `json:"wind_speed_10m"`
	WindDirection10m    float64 `json:"wind_direction_10m"`
	WindGusts10m        float64 `json:"wind_gusts_10m"`
}

// DailyBlock holds the "daily" section; every slice is indexed like Time
type DailyBlock struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weather_code"`
	Temperature2mMax            []float64 `json:"temperature_2m_max"`
	Temperature2mMin            []float64 `json:"temperature_2m_min"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
	PrecipitationSum            []float64 `json:"precipitation_sum"`
	RainSum                     []float64 `json:"rain_sum"`
	ShowersSum                  []float64 `json:"showers_sum"`
	SnowfallSum                 []float64 `json:"snowfall_sum"`
	PrecipitationHours          []float64 `json:"precipitation_hours"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []float64 `json:"wind_speed_10m_max"`
	WindGusts10mMax             []float64 `json:"wind_gusts_10m_max"`
	WindDirection10mDominant    []float64 `json:"wind_direction_10m_dominant"`
}

// HourlyBlock holds the "hourly" section; every slice is indexed like Time
type HourlyBlock struct {
	Time          []string  `json:"time"`
	Temperature2m []float64 `json:"temperature_2m"`
	WeatherCode   []int     `json:"weather_code"`
}

// Forecast is the normalized, display-independent view of a forecast
type Forecast struct {
	Timezone string
	Current  CurrentConditions
	Daily    []DailyForecastEntry
	Hourly   []HourlyForecastEntry
}

// CurrentConditions are the conditions at the location right now
type CurrentConditions struct {
	Time                time.Time
	Temperature         float64
	ApparentTemperature float64
	Humidity            float64
	WindSpeed           float64
	Pressure            float64
	WeatherCode         int
	IsDay               bool
}

// DailyForecastEntry is one day of the multi-day forecast
type DailyForecastEntry struct {
	Date        time.Time
	WeatherCode int
	TempMax     float64
	TempMin     float64
}

// HourlyForecastEntry is one sampled hour of the 24-hour forecast
type HourlyForecastEntry struct {
	Time        time.Time
	WeatherCode int
	Temperature float64
}
