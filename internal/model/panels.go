package model

// Panels is the renderable result of one successful search
type Panels struct {
	Location Location     `json:"location"`
	Current  CurrentPanel `json:"current"`
	Daily    []DailyCard  `json:"daily"`
	Hourly   []HourlyCard `json:"hourly"`
}

// CurrentPanel is the current-conditions block
type CurrentPanel struct {
	Label       string `json:"label"`
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	WindSpeed   string `json:"wind_speed"`
	Humidity    string `json:"humidity"`
	FeelsLike   string `json:"feels_like"`
	Pressure    string `json:"pressure"`
}

// DailyCard is one card of the 5-day forecast
type DailyCard struct {
	Date        string `json:"date"`
	Icon        string `json:"icon"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Description string `json:"description"`
}

// HourlyCard is one card of the 24-hour forecast
type HourlyCard struct {
	Time        string `json:"time"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
}

// ErrorPanel replaces all content when a search fails
type ErrorPanel struct {
	Message string `json:"message"`
}
