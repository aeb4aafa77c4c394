package model

// LookupStats counts weather searches by outcome since process start
type LookupStats struct {
	Total      int64 `json:"total"`
	Displayed  int64 `json:"displayed"`
	NotFound   int64 `json:"not_found"`
	Failed     int64 `json:"failed"`
	Superseded int64 `json:"superseded"`
}
