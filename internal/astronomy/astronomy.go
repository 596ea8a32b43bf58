// Package astronomy computes sunrise and sunset clock times for a venue.
package astronomy

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ClockFormat matches the astro strings WeatherAPI returns, e.g. "06:58 AM".
const ClockFormat = "03:04 PM"

// ErrNoSunEvent is returned when the sun does not rise or set on the date (polar day or night).
var ErrNoSunEvent = errors.New("no sunrise or sunset on date")

// SunTimes holds venue-local clock times.
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// Func resolves sunrise/sunset for a calendar date at a coordinate.
type Func func(date time.Time, latitude, longitude float64) (SunTimes, error)

// ZoneResolver maps coordinates to the venue's time zone.
type ZoneResolver interface {
	Location(latitude, longitude float64) (*time.Location, error)
}

// NewCalculator returns a Func that formats times in the zone of the
// coordinates, not the zone of date or of the running process.
func NewCalculator(zones ZoneResolver) Func {
	return func(date time.Time, latitude, longitude float64) (SunTimes, error) {
		loc, err := zones.Location(latitude, longitude)
		if err != nil {
			return SunTimes{}, fmt.Errorf("failed to resolve venue timezone: %w", err)
		}
		return Compute(date, latitude, longitude, loc)
	}
}

// Compute returns sunrise and sunset for date's calendar day, formatted in loc.
func Compute(date time.Time, latitude, longitude float64, loc *time.Location) (SunTimes, error) {
	rise, set := sunrise.SunriseSunset(latitude, longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return SunTimes{}, ErrNoSunEvent
	}

	return SunTimes{
		Sunrise: rise.In(loc).Format(ClockFormat),
		Sunset:  set.In(loc).Format(ClockFormat),
	}, nil
}
