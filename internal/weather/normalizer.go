package weather

import (
	"math"
	"sort"
	"time"

	"medi-forecast/internal/astronomy"
	"medi-forecast/internal/types"
)

const dateLayout = "2006-01-02"

// Summarize computes min/max temperature and max chance of rain over hours.
// Hours without a temperature only contribute their chance of rain.
func Summarize(hours []HourlyRecord) DaySummary {
	s := emptySummary()
	for _, h := range hours {
		if h.ChanceOfRain > s.MaxChanceOfRain {
			s.MaxChanceOfRain = h.ChanceOfRain
		}
		if h.TemperatureF == nil {
			continue
		}
		s.MinTempF = math.Min(s.MinTempF, *h.TemperatureF)
		s.MaxTempF = math.Max(s.MaxTempF, *h.TemperatureF)
	}
	return s
}

// normalize turns date-keyed groups into the canonical forecast: aggregates,
// sunrise/sunset, ascending order and at most requestedDays entries. Days are
// only ever dropped, never synthesized.
func normalize(groups []dayGroup, loc types.Location, requestedDays int, astro astronomy.Func) []DailyForecast {
	sorted := make([]dayGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	if len(sorted) > requestedDays {
		sorted = sorted[:requestedDays]
	}

	days := make([]DailyForecast, 0, len(sorted))
	for _, g := range sorted {
		sunrise, sunset := resolveSunTimes(g, loc, astro)
		condition := g.Condition
		if condition.Text == "" {
			condition = RepresentativeCondition(g.Hours, Afternoon, time.Time{})
		}

		days = append(days, DailyForecast{
			Date:                 g.Date,
			Hours:                g.Hours,
			Summary:              Summarize(g.Hours),
			Condition:            condition,
			Narrative:            g.Narrative,
			Sunrise:              sunrise,
			Sunset:               sunset,
			HasPrecipitationData: g.HasPrecipitationData,
		})
	}
	return days
}

// resolveSunTimes computes sunrise/sunset when the location has coordinates
// and passes provider strings through otherwise or on failure.
func resolveSunTimes(g dayGroup, loc types.Location, astro astronomy.Func) (string, string) {
	if astro == nil || !loc.HasCoordinates() {
		return g.Sunrise, g.Sunset
	}

	date, err := time.Parse(dateLayout, g.Date)
	if err != nil {
		return g.Sunrise, g.Sunset
	}

	times, err := astro(date, loc.Coordinates.Latitude, loc.Coordinates.Longitude)
	if err != nil {
		return g.Sunrise, g.Sunset
	}
	return times.Sunrise, times.Sunset
}
