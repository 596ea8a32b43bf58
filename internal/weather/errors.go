package weather

import (
	"errors"
	"fmt"
)

var (
	ErrMissingHourlyData  = errors.New("provider returned no hourly forecast data")
	ErrMissingCoordinates = errors.New("location has no coordinates")
	ErrInvalidDays        = errors.New("days out of range")
	ErrUnknownProvider    = errors.New("unknown provider")
)

// FetchError tags an upstream failure with the logical request that failed.
type FetchError struct {
	Request RequestKind
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Request, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func fetchErr(kind RequestKind, err error) error {
	return &FetchError{Request: kind, Err: err}
}
