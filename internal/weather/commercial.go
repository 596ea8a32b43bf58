package weather

import (
	"time"

	"medi-forecast/internal/providers/weatherapi"
	"medi-forecast/internal/types"
)

// WeatherAPI reports wall-clock times in the venue's zone without an offset.
const commercialTimeLayout = "2006-01-02 15:04"

// extractCommercial maps a WeatherAPI forecast. The payload is already
// grouped by local date and imperial, so this slices to requestedDays and
// attaches the venue offset to every hour.
func extractCommercial(resp *weatherapi.ForecastAPIResponse, requestedDays int) (*extracted, error) {
	if resp == nil || len(resp.Forecast.ForecastDay) == 0 {
		return nil, ErrMissingHourlyData
	}

	loc := venueLocation(resp.Location.TzID)

	forecastDays := resp.Forecast.ForecastDay
	if len(forecastDays) > requestedDays {
		forecastDays = forecastDays[:requestedDays]
	}

	groups := make([]dayGroup, 0, len(forecastDays))
	for _, fd := range forecastDays {
		if _, err := time.Parse(dateLayout, fd.Date); err != nil {
			continue
		}

		g := dayGroup{
			Date:      fd.Date,
			Hours:     make([]HourlyRecord, 0, len(fd.Hour)),
			Condition: types.NewCondition(fd.Day.Condition.Text, fd.Day.Condition.Icon),
			Sunrise:   fd.Astro.Sunrise,
			Sunset:    fd.Astro.Sunset,
		}

		for _, h := range fd.Hour {
			t, ok := commercialTime(h.Time, h.TimeEpoch, loc)
			if !ok {
				continue
			}
			rec := HourlyRecord{
				Time:         t,
				Condition:    types.NewCondition(h.Condition.Text, h.Condition.Icon),
				ChanceOfRain: h.ChanceOfRain,
				TemperatureF: h.TempF,
			}
			if h.PrecipIn != nil {
				rec.PrecipitationIn = *h.PrecipIn
				g.HasPrecipitationData = true
			}
			g.Hours = append(g.Hours, rec)
		}

		if !g.HasPrecipitationData && fd.Day.TotalPrecipIn != nil {
			g.HasPrecipitationData = true
		}

		groups = append(groups, g)
	}

	return &extracted{
		Current: commercialCurrent(resp, loc),
		Days:    groups,
		Alerts:  mapCommercialAlerts(resp.Alerts.Alert),
	}, nil
}

func commercialCurrent(resp *weatherapi.ForecastAPIResponse, loc *time.Location) CurrentConditions {
	c := resp.Current

	wind := types.NewWindFromMph(c.WindMph, c.WindDegree)
	if c.WindDir != "" {
		wind.DirectionCardinal = c.WindDir
	}

	current := CurrentConditions{
		TemperatureF: c.TempF,
		Condition:    types.NewCondition(c.Condition.Text, c.Condition.Icon),
		FeelsLikeF:   c.FeelsLikeF,
		Wind:         wind,
		GustMph:      c.GustMph,
		HumidityPct:  c.Humidity,
	}

	updated, ok := commercialTime(c.LastUpdated, c.LastUpdatedEpoch, loc)
	if ok {
		current.LastUpdated = updated
	}

	today := resp.Forecast.ForecastDay[0]
	current.ChanceOfRain = today.Day.DailyChanceOfRain
	if ok {
		for _, h := range today.Hour {
			t, hourOK := commercialTime(h.Time, h.TimeEpoch, loc)
			if hourOK && t.Hour() == updated.Hour() && t.YearDay() == updated.YearDay() {
				current.ChanceOfRain = h.ChanceOfRain
				break
			}
		}
	}

	return current
}

// commercialTime parses a venue wall-clock time, falling back to the epoch.
func commercialTime(text string, epoch int64, loc *time.Location) (time.Time, bool) {
	if text != "" {
		if t, err := time.ParseInLocation(commercialTimeLayout, text, loc); err == nil {
			return t, true
		}
	}
	if epoch > 0 {
		return time.Unix(epoch, 0).In(loc), true
	}
	return time.Time{}, false
}

// venueLocation loads the provider's zone, keeping wall-clock hours in UTC
// when the zone is unknown.
func venueLocation(tzID string) *time.Location {
	if tzID == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.UTC
	}
	return loc
}
