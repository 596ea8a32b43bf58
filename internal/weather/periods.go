package weather

import (
	"fmt"
	"time"

	"medi-forecast/internal/types"
)

// Period is a named span of local hours within a day.
type Period struct {
	Name      string
	StartHour int // inclusive
	EndHour   int // inclusive
	// Preferred local hours for the representative sample, in priority order.
	Preferred []int
}

var (
	Morning   = Period{Name: "morning", StartHour: 6, EndHour: 11, Preferred: []int{10}}
	Afternoon = Period{Name: "afternoon", StartHour: 12, EndHour: 17, Preferred: []int{15, 13}}
	Evening   = Period{Name: "evening", StartHour: 18, EndHour: 23, Preferred: []int{20, 18}}
)

// Periods lists the day periods in display order.
var Periods = []Period{Morning, Afternoon, Evening}

func (p Period) Includes(localHour int) bool {
	return localHour >= p.StartHour && localHour <= p.EndHour
}

// LocalHour extracts the hour from an RFC 3339 timestamp using its own
// offset, independent of the process time zone.
func LocalHour(timestamp string) (int, error) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to parse timestamp %q: %w", timestamp, err)
	}
	return t.Hour(), nil
}

// PeriodPrecipitation sums precipitation over hours whose local hour is in p.
func PeriodPrecipitation(hours []HourlyRecord, p Period) float64 {
	total := 0.0
	for _, h := range hours {
		if p.Includes(h.LocalHour()) {
			total += h.PrecipitationIn
		}
	}
	return total
}

// PeriodPeakChance is the highest chance of rain over hours in p, 0 when none.
func PeriodPeakChance(hours []HourlyRecord, p Period) int {
	peak := 0
	for _, h := range hours {
		if p.Includes(h.LocalHour()) && h.ChanceOfRain > peak {
			peak = h.ChanceOfRain
		}
	}
	return peak
}

// hourSelector picks a candidate hour for a period. Selectors marked
// upcomingOnly only see hours that have not yet ended.
type hourSelector struct {
	pick         func(hours []HourlyRecord, p Period) (HourlyRecord, bool)
	upcomingOnly bool
}

func exactHour(hour int) hourSelector {
	return hourSelector{
		pick: func(hours []HourlyRecord, _ Period) (HourlyRecord, bool) {
			for _, h := range hours {
				if h.LocalHour() == hour {
					return h, true
				}
			}
			return HourlyRecord{}, false
		},
		upcomingOnly: true,
	}
}

var firstFromPeriodStart = hourSelector{
	pick: func(hours []HourlyRecord, p Period) (HourlyRecord, bool) {
		for _, h := range hours {
			if h.LocalHour() >= p.StartHour {
				return h, true
			}
		}
		return HourlyRecord{}, false
	},
}

func selectorsFor(p Period) []hourSelector {
	selectors := make([]hourSelector, 0, len(p.Preferred)+1)
	for _, hour := range p.Preferred {
		selectors = append(selectors, exactHour(hour))
	}
	return append(selectors, firstFromPeriodStart)
}

// upcoming drops hours that ended at or before now. A zero now keeps every hour.
func upcoming(hours []HourlyRecord, now time.Time) []HourlyRecord {
	if now.IsZero() {
		return hours
	}
	out := make([]HourlyRecord, 0, len(hours))
	for _, h := range hours {
		if h.Time.Add(time.Hour).After(now) {
			out = append(out, h)
		}
	}
	return out
}

// RepresentativeHour returns the first hour any selector accepts: a preferred
// exact hour among those not yet over at now, then the first hour of the day
// at or after the period start.
func RepresentativeHour(hours []HourlyRecord, p Period, now time.Time) (HourlyRecord, bool) {
	remaining := upcoming(hours, now)
	for _, sel := range selectorsFor(p) {
		candidates := hours
		if sel.upcomingOnly {
			candidates = remaining
		}
		if h, ok := sel.pick(candidates, p); ok {
			return h, true
		}
	}
	return HourlyRecord{}, false
}

// RepresentativeCondition is the representative hour's condition, or the
// "No data" placeholder.
func RepresentativeCondition(hours []HourlyRecord, p Period, now time.Time) types.Condition {
	if h, ok := RepresentativeHour(hours, p, now); ok {
		return h.Condition
	}
	return types.NoDataCondition()
}

// PeriodSummary is what a day card shows for one period.
type PeriodSummary struct {
	Name             string          `json:"name"`
	Condition        types.Condition `json:"condition"`
	TemperatureF     *float64        `json:"temperatureF"`
	PrecipitationIn  *float64        `json:"precipitationIn"`
	PeakChanceOfRain int             `json:"peakChanceOfRain"`
}

// SummarizePeriods builds the morning, afternoon and evening summaries for a
// day as seen at now. Precipitation is nil when the day has no precipitation data.
func SummarizePeriods(day DailyForecast, now time.Time) []PeriodSummary {
	summaries := make([]PeriodSummary, 0, len(Periods))
	for _, p := range Periods {
		s := PeriodSummary{
			Name:             p.Name,
			Condition:        types.NoDataCondition(),
			PeakChanceOfRain: PeriodPeakChance(day.Hours, p),
		}
		if h, ok := RepresentativeHour(day.Hours, p, now); ok {
			s.Condition = h.Condition
			if h.TemperatureF != nil {
				temp := *h.TemperatureF
				s.TemperatureF = &temp
			}
		}
		if day.HasPrecipitationData {
			total := PeriodPrecipitation(day.Hours, p)
			s.PrecipitationIn = &total
		}
		summaries = append(summaries, s)
	}
	return summaries
}
