package model

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when the geocoder has no match for a query
	ErrLocationNotFound = errors.New("location not found")

	// ErrNetwork covers transport failures and non-success upstream responses
	ErrNetwork = errors.New("network error")

	// ErrParse marks a malformed upstream payload. Errors carrying it also
	// match ErrNetwork.
	ErrParse = errors.New("malformed response")
)

// Stage names the step of a lookup that failed
type Stage string

const (
	StageGeocoding Stage = "geocoding"
	StageForecast  Stage = "forecast"
)

// LookupError attributes a lookup failure to its stage
type LookupError struct {
	Stage Stage
	Query string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Stage, e.Query, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
