package weather

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"medi-forecast/internal/providers/nws"
	"medi-forecast/internal/types"
)

// gridPayload collects the NWS responses of one fetch cycle. Forecast,
// Gridpoint, Alerts and Observation may be nil.
type gridPayload struct {
	Hourly      *nws.ForecastAPIResponse
	Forecast    *nws.ForecastAPIResponse
	Gridpoint   *nws.GridpointAPIResponse
	Alerts      *nws.AlertsAPIResponse
	Observation *nws.ObservationAPIResponse
}

// extractGrid joins the hourly scaffold with the gridpoint precipitation
// series and groups hours by UTC date. The precipitation intervals are UTC
// anchored, so grouping by local date would misalign the join.
func extractGrid(p gridPayload, requestedDays int) (*extracted, int, error) {
	if p.Hourly == nil || len(p.Hourly.Properties.Periods) == 0 {
		return nil, 0, ErrMissingHourlyData
	}

	var series PrecipitationSeries
	skipped := 0
	if p.Gridpoint != nil {
		series, skipped = ParsePrecipitationSeries(p.Gridpoint.Properties.QuantitativePrecipitation)
	}

	maxKeys := requestedDays + 1
	byDate := make(map[string]*dayGroup, maxKeys)
	keys := make([]string, 0, maxKeys)

	for _, period := range p.Hourly.Properties.Periods {
		start, err := time.Parse(time.RFC3339, period.StartTime)
		if err != nil {
			continue
		}

		key := start.UTC().Format(dateLayout)
		g, ok := byDate[key]
		if !ok {
			if len(keys) >= maxKeys {
				continue
			}
			g = &dayGroup{Date: key}
			byDate[key] = g
			keys = append(keys, key)
		}

		rec := HourlyRecord{
			Time:         start,
			Condition:    types.NewCondition(period.ShortForecast, period.Icon),
			ChanceOfRain: percent(period.ProbabilityOfPrecipitation.Value),
		}
		if temp, ok := periodFahrenheit(period); ok {
			rec.TemperatureF = &temp
		}
		if rate, covered := series.RateAt(start); covered {
			rec.PrecipitationIn = rate
			g.HasPrecipitationData = true
		}
		g.Hours = append(g.Hours, rec)
	}

	sort.Strings(keys)
	if len(keys) > requestedDays {
		keys = keys[:requestedDays]
	}

	groups := make([]dayGroup, 0, len(keys))
	for _, key := range keys {
		g := byDate[key]
		attachNarrative(g, p.Forecast)
		groups = append(groups, *g)
	}

	return &extracted{
		Current: gridCurrent(p),
		Days:    groups,
		Alerts:  mapGridAlerts(p.Alerts),
	}, skipped, nil
}

// attachNarrative copies the first daytime 12-hour period that starts on the
// group's date.
func attachNarrative(g *dayGroup, forecast *nws.ForecastAPIResponse) {
	if forecast == nil {
		return
	}
	for _, period := range forecast.Properties.Periods {
		if !period.IsDaytime {
			continue
		}
		start, err := time.Parse(time.RFC3339, period.StartTime)
		if err != nil || start.UTC().Format(dateLayout) != g.Date {
			continue
		}
		g.Condition = types.NewCondition(period.ShortForecast, period.Icon)
		g.Narrative = period.DetailedForecast
		return
	}
}

// gridCurrent prefers the latest station observation and falls back to the
// first hourly period for any reading the station did not report.
func gridCurrent(p gridPayload) CurrentConditions {
	first := p.Hourly.Properties.Periods[0]
	firstStart, _ := time.Parse(time.RFC3339, first.StartTime)

	speed, _ := parseWindSpeedMph(first.WindSpeed)
	temp, _ := periodFahrenheit(first)
	current := CurrentConditions{
		TemperatureF: temp,
		Condition:    types.NewCondition(first.ShortForecast, first.Icon),
		Wind:         types.NewWindFromCardinal(speed, first.WindDirection),
		ChanceOfRain: percent(first.ProbabilityOfPrecipitation.Value),
		LastUpdated:  firstStart,
	}
	if first.RelativeHumidity.Value != nil {
		humidity := *first.RelativeHumidity.Value
		current.HumidityPct = &humidity
	}
	current.FeelsLikeF = current.TemperatureF

	if p.Observation == nil {
		return current
	}
	obs := p.Observation.Properties

	if t, ok := fahrenheit(obs.Temperature); ok {
		current.TemperatureF = t
		current.FeelsLikeF = t
	}
	if obs.TextDescription != "" {
		current.Condition = types.NewCondition(obs.TextDescription, obs.Icon)
	}
	if speed, ok := mph(obs.WindSpeed); ok {
		if obs.WindDirection.Value != nil {
			current.Wind = types.NewWindFromMph(speed, *obs.WindDirection.Value)
		} else {
			current.Wind.SpeedMph = speed
		}
	}
	if gust, ok := mph(obs.WindGust); ok {
		current.GustMph = &gust
	}
	if obs.RelativeHumidity.Value != nil {
		humidity := *obs.RelativeHumidity.Value
		current.HumidityPct = &humidity
	}
	if heat, ok := fahrenheit(obs.HeatIndex); ok {
		current.FeelsLikeF = heat
	} else if chill, ok := fahrenheit(obs.WindChill); ok {
		current.FeelsLikeF = chill
	}
	if t, err := time.Parse(time.RFC3339, obs.Timestamp); err == nil {
		current.LastUpdated = t
	}

	return current
}

func percent(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v + 0.5)
}

// periodFahrenheit converts a forecast period temperature, ok=false when absent.
func periodFahrenheit(p nws.ForecastPeriod) (float64, bool) {
	if p.Temperature == nil {
		return 0, false
	}
	if strings.EqualFold(p.TemperatureUnit, "C") {
		return types.NewTemperatureFromCelsius(*p.Temperature).Fahrenheit, true
	}
	return *p.Temperature, true
}

// fahrenheit converts an observation temperature, ok=false when absent.
func fahrenheit(q nws.QuantitativeValue) (float64, bool) {
	if q.Value == nil {
		return 0, false
	}
	if strings.HasSuffix(q.UnitCode, "degF") {
		return *q.Value, true
	}
	return types.NewTemperatureFromCelsius(*q.Value).Fahrenheit, true
}

// mph converts an observation speed, ok=false when absent.
func mph(q nws.QuantitativeValue) (float64, bool) {
	if q.Value == nil {
		return 0, false
	}
	switch {
	case strings.HasSuffix(q.UnitCode, "m_s-1"):
		return *q.Value * 3.6 * types.KphToMph, true
	case strings.HasSuffix(q.UnitCode, "mi_h-1"):
		return *q.Value, true
	default:
		return *q.Value * types.KphToMph, true
	}
}

// parseWindSpeedMph reads forecast wind strings such as "10 mph" or
// "5 to 10 mph", taking the upper bound.
func parseWindSpeedMph(s string) (float64, bool) {
	fields := strings.Fields(s)
	best, found := 0.0, false
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			best, found = v, true
		}
	}
	return best, found
}
