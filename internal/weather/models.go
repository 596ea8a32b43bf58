package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"medi-forecast/internal/types"
)

// ProviderKind selects which upstream produced a forecast. It is chosen by
// the caller, never inferred from the payload.
type ProviderKind string

const (
	ProviderCommercial ProviderKind = "commercial"
	ProviderGrid       ProviderKind = "grid"
)

func ParseProvider(s string) (ProviderKind, error) {
	switch ProviderKind(s) {
	case ProviderCommercial, ProviderGrid:
		return ProviderKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// RequestKind names one logical upstream request of a fetch cycle.
type RequestKind string

const (
	RequestPoints             RequestKind = "points"
	RequestGridForecast       RequestKind = "grid-forecast"
	RequestHourlyForecast     RequestKind = "hourly-forecast"
	RequestGridpointData      RequestKind = "gridpoint-data"
	RequestAlerts             RequestKind = "alerts"
	RequestStationObservation RequestKind = "station-observation"
	RequestForecast           RequestKind = "forecast"
)

// HourlyRecord is one hour of forecast. Time keeps the offset the provider
// expressed it in; its Hour() is the venue-local hour. TemperatureF is nil
// when the provider left the reading out.
type HourlyRecord struct {
	Time            time.Time       `json:"time"`
	Condition       types.Condition `json:"condition"`
	ChanceOfRain    int             `json:"chanceOfRain"`
	PrecipitationIn float64         `json:"precipitationIn"`
	TemperatureF    *float64        `json:"temperatureF"`
}

// LocalHour returns the hour of day in the record's own offset.
func (h HourlyRecord) LocalHour() int {
	return h.Time.Hour()
}

// DaySummary aggregates a day's hours. A day without any temperature reading
// has MinTempF=+Inf and MaxTempF=-Inf, which encode as null.
type DaySummary struct {
	MinTempF        float64
	MaxTempF        float64
	MaxChanceOfRain int
}

func emptySummary() DaySummary {
	return DaySummary{
		MinTempF:        math.Inf(1),
		MaxTempF:        math.Inf(-1),
		MaxChanceOfRain: 0,
	}
}

// HasData reports whether at least one hour carried a temperature.
func (s DaySummary) HasData() bool {
	return !math.IsInf(s.MinTempF, 1) && !math.IsInf(s.MaxTempF, -1)
}

func (s DaySummary) MarshalJSON() ([]byte, error) {
	type wire struct {
		MinTempF        *float64 `json:"minTempF"`
		MaxTempF        *float64 `json:"maxTempF"`
		MaxChanceOfRain *int     `json:"maxChanceOfRain"`
	}
	if !s.HasData() {
		return json.Marshal(wire{})
	}
	return json.Marshal(wire{
		MinTempF:        &s.MinTempF,
		MaxTempF:        &s.MaxTempF,
		MaxChanceOfRain: &s.MaxChanceOfRain,
	})
}

// DailyForecast is one calendar day of the canonical forecast.
//
// HasPrecipitationData is false when the provider supplied no precipitation
// signal for the day; every hour then reads 0 but that is not a forecast of
// no rain.
type DailyForecast struct {
	Date                 string          `json:"date"`
	Hours                []HourlyRecord  `json:"hours"`
	Summary              DaySummary      `json:"summary"`
	Condition            types.Condition `json:"condition"`
	Narrative            string          `json:"narrative,omitempty"`
	Sunrise              string          `json:"sunrise"`
	Sunset               string          `json:"sunset"`
	HasPrecipitationData bool            `json:"hasPrecipitationData"`
}

// TotalPrecipitationIn sums the day's hours, or returns nil without data.
func (d DailyForecast) TotalPrecipitationIn() *float64 {
	if !d.HasPrecipitationData {
		return nil
	}
	total := 0.0
	for _, h := range d.Hours {
		total += h.PrecipitationIn
	}
	return &total
}

// CurrentConditions is the unit-normalized snapshot of conditions now.
type CurrentConditions struct {
	TemperatureF float64         `json:"temperatureF"`
	Condition    types.Condition `json:"condition"`
	FeelsLikeF   float64         `json:"feelsLikeF"`
	Wind         types.Wind      `json:"wind"`
	GustMph      *float64        `json:"gustMph"`
	HumidityPct  *float64        `json:"humidityPct"`
	ChanceOfRain int             `json:"chanceOfRain"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// GustText formats the gust for display, "unavailable" when absent.
func (c CurrentConditions) GustText() string {
	if c.GustMph == nil {
		return "unavailable"
	}
	return fmt.Sprintf("%.0f mph", *c.GustMph)
}

type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityDefault Severity = "default"
)

type Alert struct {
	Headline    string   `json:"headline"`
	Event       string   `json:"event"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Partial signals that fewer days were available than requested. It is not an error.
type Partial struct {
	RequestedDays int `json:"requestedDays"`
	AvailableDays int `json:"availableDays"`
}

func (p Partial) IsPartial() bool {
	return p.AvailableDays < p.RequestedDays
}

// Message is the user-facing notice for a partial result, empty otherwise.
func (p Partial) Message() string {
	if !p.IsPartial() {
		return ""
	}
	return fmt.Sprintf("Could not retrieve a full %d-day forecast. Displaying available data.", p.RequestedDays)
}

type Request struct {
	Provider ProviderKind
	Location types.Location
	Days     int
}

// Result is the outcome of one fetch cycle. It is built once and never
// mutated after Fetch returns.
type Result struct {
	ID        string                          `json:"id"`
	Provider  ProviderKind                    `json:"provider"`
	Location  types.Location                  `json:"location"`
	FetchedAt time.Time                       `json:"fetchedAt"`
	Current   CurrentConditions               `json:"current"`
	Days      []DailyForecast                 `json:"days"`
	Alerts    []Alert                         `json:"alerts"`
	Partial   Partial                         `json:"partial"`
	Raw       map[RequestKind]json.RawMessage `json:"raw,omitempty"`
}

// extracted is the provider-neutral record set handed from an adapter to the normalizer.
type extracted struct {
	Current CurrentConditions
	Days    []dayGroup
	Alerts  []Alert
}

// dayGroup is one date key with its hours, before aggregation.
type dayGroup struct {
	Date                 string
	Hours                []HourlyRecord
	HasPrecipitationData bool
	Condition            types.Condition
	Narrative            string
	// Sunrise and Sunset as supplied by the provider, if any.
	Sunrise string
	Sunset  string
}
