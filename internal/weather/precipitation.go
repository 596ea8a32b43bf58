package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"

	"medi-forecast/internal/providers/nws"
	"medi-forecast/internal/types"
)

var errInvalidInterval = errors.New("invalid ISO-8601 interval")

// millimetreUnit is the only quantitativePrecipitation unit the series accepts.
const millimetreUnit = "wmoUnit:mm"

// PrecipitationPeriod spreads a multi-hour precipitation total evenly over
// [Start, End).
type PrecipitationPeriod struct {
	Start        time.Time
	End          time.Time
	HourlyRateIn float64
}

// Contains uses half-open semantics: Start matches, End belongs to the next period.
func (p PrecipitationPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// ParsePrecipitationPeriod parses an interval such as "2024-03-01T12:00:00+00:00/PT6H"
// carrying totalMm of precipitation.
func ParsePrecipitationPeriod(validTime string, totalMm float64) (PrecipitationPeriod, error) {
	startText, durationText, ok := strings.Cut(validTime, "/")
	if !ok {
		return PrecipitationPeriod{}, fmt.Errorf("%w: %q", errInvalidInterval, validTime)
	}

	start, err := time.Parse(time.RFC3339, startText)
	if err != nil {
		return PrecipitationPeriod{}, fmt.Errorf("%w: start %q: %v", errInvalidInterval, startText, err)
	}

	d, err := duration.Parse(durationText)
	if err != nil {
		return PrecipitationPeriod{}, fmt.Errorf("%w: duration %q: %v", errInvalidInterval, durationText, err)
	}
	span := d.ToTimeDuration()
	if span <= 0 {
		return PrecipitationPeriod{}, fmt.Errorf("%w: non-positive duration %q", errInvalidInterval, durationText)
	}

	if totalMm < 0 {
		return PrecipitationPeriod{}, fmt.Errorf("negative precipitation total %v", totalMm)
	}

	return PrecipitationPeriod{
		Start:        start,
		End:          start.Add(span),
		HourlyRateIn: types.NewPrecipitationFromMm(totalMm).Inches / span.Hours(),
	}, nil
}

// PrecipitationSeries is a set of periods in provider order.
type PrecipitationSeries []PrecipitationPeriod

// ParsePrecipitationSeries keeps every parseable entry of a gridpoint layer.
// Entries with a malformed interval or a null value are skipped, as is every
// entry of a layer not reported in millimetres; the count of skipped entries
// is returned for diagnostics.
func ParsePrecipitationSeries(layer nws.GridLayer) (PrecipitationSeries, int) {
	if layer.Uom != millimetreUnit {
		return nil, len(layer.Values)
	}

	series := make(PrecipitationSeries, 0, len(layer.Values))
	skipped := 0
	for _, v := range layer.Values {
		if v.Value == nil {
			skipped++
			continue
		}
		period, err := ParsePrecipitationPeriod(v.ValidTime, *v.Value)
		if err != nil {
			skipped++
			continue
		}
		series = append(series, period)
	}
	return series, skipped
}

// RateAt returns the hourly rate of the period containing t. ok is false
// when no period covers t.
func (s PrecipitationSeries) RateAt(t time.Time) (rate float64, ok bool) {
	for _, p := range s {
		if p.Contains(t) {
			return p.HourlyRateIn, true
		}
	}
	return 0, false
}
