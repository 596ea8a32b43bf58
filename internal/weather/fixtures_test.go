package weather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"
	_ "time/tzdata"

	"medi-forecast/internal/astronomy"
	"medi-forecast/internal/providers/nws"
	"medi-forecast/internal/providers/weatherapi"
	"medi-forecast/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// hour builds an hourly record at an RFC 3339 timestamp.
func hour(ts string, tempF float64, chance int, precipIn float64) HourlyRecord {
	return HourlyRecord{
		Time:            mustTime(ts),
		Condition:       types.NewCondition("Sunny", ""),
		ChanceOfRain:    chance,
		PrecipitationIn: precipIn,
		TemperatureF:    ptr(tempF),
	}
}

func withoutTemperature(h HourlyRecord) HourlyRecord {
	h.TemperatureF = nil
	return h
}

func labelled(ts, text string) HourlyRecord {
	h := hour(ts, 60, 0, 0)
	h.Condition = types.NewCondition(text, "")
	return h
}

func nwsPeriod(start string, tempF float64, pop float64, short string) nws.ForecastPeriod {
	return nws.ForecastPeriod{
		StartTime:                  start,
		Temperature:                ptr(tempF),
		TemperatureUnit:            "F",
		ProbabilityOfPrecipitation: nws.QuantitativeValue{UnitCode: "wmoUnit:percent", Value: ptr(pop)},
		WindSpeed:                  "5 to 10 mph",
		WindDirection:              "SW",
		ShortForecast:              short,
	}
}

func hourlyResponse(periods ...nws.ForecastPeriod) *nws.ForecastAPIResponse {
	resp := &nws.ForecastAPIResponse{}
	resp.Properties.Periods = periods
	return resp
}

func gridpointResponse(values ...nws.GridValue) *nws.GridpointAPIResponse {
	resp := &nws.GridpointAPIResponse{}
	resp.Properties.QuantitativePrecipitation = nws.GridLayer{Uom: "wmoUnit:mm", Values: values}
	return resp
}

// commercialDay builds a WeatherAPI forecast day with one hour per entry of temps.
func commercialDay(date string, temps ...float64) weatherapi.ForecastDay {
	fd := weatherapi.ForecastDay{
		Date:  date,
		Day:   weatherapi.Day{DailyChanceOfRain: 40, Condition: weatherapi.Condition{Text: "Patchy rain possible"}},
		Astro: weatherapi.Astro{Sunrise: "06:56 AM", Sunset: "06:36 PM"},
	}
	for i, temp := range temps {
		fd.Hour = append(fd.Hour, weatherapi.Hour{
			Time:         date + " " + time.Date(0, 1, 1, i, 0, 0, 0, time.UTC).Format("15:04"),
			TempF:        ptr(temp),
			ChanceOfRain: i * 10,
			PrecipIn:     ptr(0.01 * float64(i)),
			Condition:    weatherapi.Condition{Text: "Light rain"},
		})
	}
	return fd
}

func commercialResponse(days ...weatherapi.ForecastDay) *weatherapi.ForecastAPIResponse {
	resp := &weatherapi.ForecastAPIResponse{
		Location: weatherapi.Location{Name: "Wimauma", TzID: "America/New_York", Lat: 27.71, Lon: -82.3},
		Current: weatherapi.Current{
			LastUpdated: "2024-03-01 02:45",
			TempF:       64,
			FeelsLikeF:  63,
			Condition:   weatherapi.Condition{Text: "Clear"},
			WindMph:     5.6,
			WindDegree:  45,
			WindDir:     "NE",
			Humidity:    ptr(81.0),
		},
	}
	resp.Forecast.ForecastDay = days
	return resp
}

func staticAstro(sunrise, sunset string, err error) astronomy.Func {
	return func(date time.Time, latitude, longitude float64) (astronomy.SunTimes, error) {
		return astronomy.SunTimes{Sunrise: sunrise, Sunset: sunset}, err
	}
}

// Mock providers for testing

type mockCommercialProvider struct {
	response *weatherapi.ForecastAPIResponse
	err      error
	gotQuery string
	gotDays  int
}

func (m *mockCommercialProvider) GetForecast(ctx context.Context, query string, days int, alerts bool) (*weatherapi.ForecastAPIResponse, json.RawMessage, error) {
	m.gotQuery, m.gotDays = query, days
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.response, json.RawMessage(`{"source":"weatherapi"}`), nil
}

type mockGridProvider struct {
	point       *nws.PointAPIResponse
	forecast    *nws.ForecastAPIResponse
	hourly      *nws.ForecastAPIResponse
	gridpoint   *nws.GridpointAPIResponse
	alerts      *nws.AlertsAPIResponse
	stations    *nws.StationsAPIResponse
	observation *nws.ObservationAPIResponse

	errs           map[RequestKind]error
	observationErr error
}

func (m *mockGridProvider) fail(kind RequestKind) error {
	return m.errs[kind]
}

func raw(kind RequestKind) json.RawMessage {
	return json.RawMessage(`{"request":"` + string(kind) + `"}`)
}

func (m *mockGridProvider) GetPoint(ctx context.Context, latitude, longitude float64) (*nws.PointAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestPoints); err != nil {
		return nil, nil, err
	}
	return m.point, raw(RequestPoints), nil
}

func (m *mockGridProvider) GetForecast(ctx context.Context, forecastURL string) (*nws.ForecastAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestGridForecast); err != nil {
		return nil, nil, err
	}
	return m.forecast, raw(RequestGridForecast), nil
}

func (m *mockGridProvider) GetHourlyForecast(ctx context.Context, hourlyURL string) (*nws.ForecastAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestHourlyForecast); err != nil {
		return nil, nil, err
	}
	return m.hourly, raw(RequestHourlyForecast), nil
}

func (m *mockGridProvider) GetGridpoint(ctx context.Context, gridURL string) (*nws.GridpointAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestGridpointData); err != nil {
		return nil, nil, err
	}
	return m.gridpoint, raw(RequestGridpointData), nil
}

func (m *mockGridProvider) GetActiveAlerts(ctx context.Context, latitude, longitude float64) (*nws.AlertsAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestAlerts); err != nil {
		return nil, nil, err
	}
	return m.alerts, raw(RequestAlerts), nil
}

func (m *mockGridProvider) GetStations(ctx context.Context, stationsURL string) (*nws.StationsAPIResponse, json.RawMessage, error) {
	if err := m.fail(RequestStationObservation); err != nil {
		return nil, nil, err
	}
	return m.stations, nil, nil
}

func (m *mockGridProvider) GetLatestObservation(ctx context.Context, stationID string) (*nws.ObservationAPIResponse, json.RawMessage, error) {
	if m.observationErr != nil {
		return nil, nil, m.observationErr
	}
	return m.observation, raw(RequestStationObservation), nil
}

type resolverFunc func(ctx context.Context, loc types.Location) (types.Location, error)

func (f resolverFunc) Resolve(ctx context.Context, loc types.Location) (types.Location, error) {
	return f(ctx, loc)
}

// wimaumaResolver fills in coordinates the way the configured city list does.
var wimaumaResolver = resolverFunc(func(ctx context.Context, loc types.Location) (types.Location, error) {
	if !loc.HasCoordinates() {
		coords := types.NewCoords(27.7125, -82.2990)
		loc.Coordinates = &coords
		if loc.Name == "" {
			loc.Name = "Wimauma"
		}
	}
	return loc, nil
})
