// Package wmo maps WMO weather interpretation codes to icons and
// human-readable descriptions.
package wmo

// Icon is a Font Awesome class list identifying a weather glyph
type Icon string

const (
	IconSun          Icon = "fas fa-sun"
	IconMoon         Icon = "fas fa-moon"
	IconCloudSun     Icon = "fas fa-cloud-sun"
	IconCloudMoon    Icon = "fas fa-cloud-moon"
	IconCloud        Icon = "fas fa-cloud"
	IconSmog         Icon = "fas fa-smog"
	IconCloudRain    Icon = "fas fa-cloud-rain"
	IconShowersHeavy Icon = "fas fa-cloud-showers-heavy"
	IconSnowflake    Icon = "fas fa-snowflake"
	IconBolt         Icon = "fas fa-bolt"
)

// FallbackIcon is used for codes outside the table
const FallbackIcon = IconCloud

// UnknownDescription is used for codes outside the table
const UnknownDescription = "Unknown"

// Code represents a WMO weather code
type Code int

// Weather code constants
const (
	ClearSky                     Code = 0
	MainlyClear                  Code = 1
	PartlyCloudy                 Code = 2
	Overcast                     Code = 3
	Fog                          Code = 45
	DepositingRimeFog            Code = 48
	DrizzleLight                 Code = 51
	DrizzleModerate              Code = 53
	DrizzleDense                 Code = 55
	FreezingDrizzleLight         Code = 56
	FreezingDrizzleDense         Code = 57
	RainSlight                   Code = 61
	RainModerate                 Code = 63
	RainHeavy                    Code = 65
	FreezingRainLight            Code = 66
	FreezingRainHeavy            Code = 67
	SnowFallSlight               Code = 71
	SnowFallModerate             Code = 73
	SnowFallHeavy                Code = 75
	SnowGrains                   Code = 77
	RainShowersSlight            Code = 80
	RainShowersModerate          Code = 81
	RainShowersViolent           Code = 82
	SnowShowersSlight            Code = 85
	SnowShowersHeavy             Code = 86
	ThunderstormSlightOrModerate Code = 95
	ThunderstormWithSlightHail   Code = 96
	ThunderstormWithHeavyHail    Code = 99
)

// descriptions maps weather codes to their display text
var descriptions = map[Code]string{
	ClearSky:                     "Clear sky",
	MainlyClear:                  "Mainly clear",
	PartlyCloudy:                 "Partly cloudy",
	Overcast:                     "Overcast",
	Fog:                          "Fog",
	DepositingRimeFog:            "Fog",
	DrizzleLight:                 "Light drizzle",
	DrizzleModerate:              "Moderate drizzle",
	DrizzleDense:                 "Dense drizzle",
	FreezingDrizzleLight:         "Light freezing drizzle",
	FreezingDrizzleDense:         "Dense freezing drizzle",
	RainSlight:                   "Slight rain",
	RainModerate:                 "Moderate rain",
	RainHeavy:                    "Heavy rain",
	FreezingRainLight:            "Light freezing rain",
	FreezingRainHeavy:            "Heavy freezing rain",
	SnowFallSlight:               "Slight snow fall",
	SnowFallModerate:             "Moderate snow fall",
	SnowFallHeavy:                "Heavy snow fall",
	SnowGrains:                   "Snow grains",
	RainShowersSlight:            "Slight rain showers",
	RainShowersModerate:          "Moderate rain showers",
	RainShowersViolent:           "Violent rain showers",
	SnowShowersSlight:            "Slight snow showers",
	SnowShowersHeavy:             "Heavy snow showers",
	ThunderstormSlightOrModerate: "Thunderstorm",
	ThunderstormWithSlightHail:   "Thunderstorm with hail",
	ThunderstormWithHeavyHail:    "Thunderstorm with heavy hail",
}

// icons holds the day/night invariant glyphs. Codes 0 and 1 are handled in IconFor.
var icons = map[Code]Icon{
	PartlyCloudy:                 IconCloud,
	Overcast:                     IconCloud,
	Fog:                          IconSmog,
	DepositingRimeFog:            IconSmog,
	DrizzleLight:                 IconCloudRain,
	DrizzleModerate:              IconCloudRain,
	DrizzleDense:                 IconCloudRain,
	FreezingDrizzleLight:         IconCloudRain,
	FreezingDrizzleDense:         IconCloudRain,
	RainSlight:                   IconCloudRain,
	RainModerate:                 IconCloudRain,
	RainHeavy:                    IconShowersHeavy,
	FreezingRainLight:            IconCloudRain,
	FreezingRainHeavy:            IconShowersHeavy,
	SnowFallSlight:               IconSnowflake,
	SnowFallModerate:             IconSnowflake,
	SnowFallHeavy:                IconSnowflake,
	SnowGrains:                   IconSnowflake,
	RainShowersSlight:            IconShowersHeavy,
	RainShowersModerate:          IconShowersHeavy,
	RainShowersViolent:           IconShowersHeavy,
	SnowShowersSlight:            IconSnowflake,
	SnowShowersHeavy:             IconSnowflake,
	ThunderstormSlightOrModerate: IconBolt,
	ThunderstormWithSlightHail:   IconBolt,
	ThunderstormWithHeavyHail:    IconBolt,
}

// Describe returns the description for a weather code, or "Unknown"
func Describe(code int) string {
	if desc, ok := descriptions[Code(code)]; ok {
		return desc
	}
	return UnknownDescription
}

// IconFor returns the glyph for a weather code. Only clear sky and mainly
// clear differ between day and night.
func IconFor(code int, isDay bool) Icon {
	switch Code(code) {
	case ClearSky:
		if isDay {
			return IconSun
		}
		return IconMoon
	case MainlyClear:
		if isDay {
			return IconCloudSun
		}
		return IconCloudMoon
	}
	if icon, ok := icons[Code(code)]; ok {
		return icon
	}
	return FallbackIcon
}
