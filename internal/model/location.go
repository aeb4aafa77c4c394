package model

// Location is a resolved place. It is built once per search and never mutated.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label returns the header text shown above current conditions: the place
// name followed by its region, or its country when the region is unknown.
func (l Location) Label() string {
	suffix := l.Region
	if suffix == "" {
		suffix = l.Country
	}
	if suffix == "" {
		return l.Name
	}
	return l.Name + ", " + suffix
}

// SuggestRequest represents the request parameters for place suggestions
type SuggestRequest struct {
	Query string
	Limit int
}

// SuggestResponse represents the response for place suggestions
type SuggestResponse struct {
	Results []Suggestion `json:"results"`
}

// Suggestion is a gazetteer entry offered while the user types
type Suggestion struct {
	ID         int     `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Region     string  `json:"region,omitempty" db:"region"`
	Country    string  `json:"country" db:"country"`
	Population int     `json:"population" db:"population"`
	Lat        float64 `json:"latitude" db:"lat"`
	Lon        float64 `json:"longitude" db:"lon"`
}

// Location converts a suggestion into a resolved location
func (s Suggestion) Location() Location {
	return Location{
		Name:      s.Name,
		Region:    s.Region,
		Country:   s.Country,
		Latitude:  s.Lat,
		Longitude: s.Lon,
	}
}
