package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medi-forecast/internal/config"
	"medi-forecast/internal/location"
	"medi-forecast/internal/providers/httpx"
	"medi-forecast/internal/providers/weatherapi"
	"medi-forecast/internal/store"
	"medi-forecast/internal/types"
	"medi-forecast/internal/weather"
)

// Mock services for testing

type mockWeatherService struct {
	result *weather.Result
	err    error
	got    weather.Request
}

func (m *mockWeatherService) Fetch(ctx context.Context, req weather.Request) (*weather.Result, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockLocationService struct {
	configured []types.Location
}

func (m *mockLocationService) Resolve(ctx context.Context, loc types.Location) (types.Location, error) {
	return loc, nil
}

func (m *mockLocationService) Configured() []types.Location {
	return m.configured
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, GinMode: "test"},
		App: config.AppConfig{
			DefaultDays:     3,
			MaxDays:         14,
			DefaultLocation: "33598",
			RefreshProvider: "grid",
		},
	}
}

func testResult(provider weather.ProviderKind, days int) *weather.Result {
	morning, afternoon := 61.0, 70.0
	hours := []weather.HourlyRecord{
		{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*60*60)), TemperatureF: &morning, ChanceOfRain: 30, PrecipitationIn: 0.05},
		{Time: time.Date(2024, 3, 1, 15, 0, 0, 0, time.FixedZone("EST", -5*60*60)), TemperatureF: &afternoon, ChanceOfRain: 10, PrecipitationIn: 0.01},
	}
	return &weather.Result{
		ID:        "abc",
		Provider:  provider,
		Location:  types.Location{Name: "Wimauma", PostalCode: "33598"},
		FetchedAt: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
		Current:   weather.CurrentConditions{TemperatureF: 68},
		Days: []weather.DailyForecast{
			{
				Date:                 "2024-03-01",
				Hours:                hours,
				Summary:              weather.Summarize(hours),
				HasPrecipitationData: true,
			},
		},
		Alerts:  []weather.Alert{},
		Partial: weather.Partial{RequestedDays: days, AvailableDays: 1},
		Raw: map[weather.RequestKind]json.RawMessage{
			weather.RequestForecast: json.RawMessage(`{"ok":true}`),
		},
	}
}

func newTestApp(weatherSvc weather.Service, results *store.Memory) *App {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locations := &mockLocationService{configured: []types.Location{{Name: "Wimauma", PostalCode: "33598"}}}
	if results == nil {
		results = store.NewMemory(1)
	}
	return newApp(testConfig(), logger, locations, weatherSvc, results)
}

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func TestHandlePing(t *testing.T) {
	app := newTestApp(&mockWeatherService{}, nil)

	rec := get(t, app, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestHandleGetLocations(t *testing.T) {
	app := newTestApp(&mockWeatherService{}, nil)

	rec := get(t, app, "/locations")
	require.Equal(t, http.StatusOK, rec.Code)

	var body LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "33598", body.Default)
	require.Len(t, body.Locations, 1)
	assert.Equal(t, "Wimauma", body.Locations[0].Name)
}

func TestHandleForecast_Request(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantProvider weather.ProviderKind
		wantQuery    string
		wantDays     int
	}{
		{
			name:         "grid with postal code",
			target:       "/forecast/grid?location=04930&days=5",
			wantProvider: weather.ProviderGrid,
			wantQuery:    "04930",
			wantDays:     5,
		},
		{
			name:         "commercial defaults",
			target:       "/forecast/commercial",
			wantProvider: weather.ProviderCommercial,
			wantQuery:    "33598",
			wantDays:     3,
		},
		{
			name:         "coordinates as lat and lon",
			target:       "/forecast/grid?lat=27.7125&lon=-82.299",
			wantProvider: weather.ProviderGrid,
			wantQuery:    "27.7125,-82.2990",
			wantDays:     3,
		},
		{
			name:         "coordinates as location",
			target:       "/forecast/commercial?location=45.0239,-69.2898",
			wantProvider: weather.ProviderCommercial,
			wantQuery:    "45.0239,-69.2898",
			wantDays:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockWeatherService{result: testResult(tt.wantProvider, tt.wantDays)}
			app := newTestApp(svc, nil)

			rec := get(t, app, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			assert.Equal(t, tt.wantProvider, svc.got.Provider)
			assert.Equal(t, tt.wantQuery, svc.got.Location.Query())
			assert.Equal(t, tt.wantDays, svc.got.Days)
		})
	}
}

func TestHandleForecast_Response(t *testing.T) {
	svc := &mockWeatherService{result: testResult(weather.ProviderGrid, 3)}
	app := newTestApp(svc, nil)

	rec := get(t, app, "/forecast/grid?location=33598&days=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, true, body["partial"])
	assert.Equal(t, "Could not retrieve a full 3-day forecast. Displaying available data.", body["message"])
	assert.NotContains(t, body, "raw")

	current := body["current"].(map[string]any)
	assert.Equal(t, "unavailable", current["gust"])

	days := body["days"].([]any)
	require.Len(t, days, 1)
	day := days[0].(map[string]any)
	assert.Equal(t, "2024-03-01", day["date"])
	assert.InDelta(t, 0.06, day["totalPrecipitationIn"], 1e-9)

	summary := day["summary"].(map[string]any)
	assert.Equal(t, 61.0, summary["minTempF"])
	assert.Equal(t, 70.0, summary["maxTempF"])

	periods := day["periods"].([]any)
	require.Len(t, periods, 3)
	morning := periods[0].(map[string]any)
	assert.Equal(t, "morning", morning["name"])
	assert.Equal(t, 61.0, morning["temperatureF"])
	evening := periods[2].(map[string]any)
	assert.Nil(t, evening["temperatureF"])
}

func TestHandleForecast_Raw(t *testing.T) {
	svc := &mockWeatherService{result: testResult(weather.ProviderCommercial, 1)}
	app := newTestApp(svc, nil)

	rec := get(t, app, "/forecast/commercial?location=33598&days=1&raw=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Partial)
	assert.Empty(t, body.Message)
	assert.JSONEq(t, `{"ok":true}`, string(body.Raw[weather.RequestForecast]))
}

func TestHandleForecast_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{name: "bad postal code", target: "/forecast/grid?location=abc", wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", target: "/forecast/grid?lat=91&lon=0", wantStatus: http.StatusBadRequest},
		{name: "missing longitude", target: "/forecast/grid?lat=45", wantStatus: http.StatusBadRequest},
		{name: "negative days", target: "/forecast/grid?days=-1", wantStatus: http.StatusBadRequest},
		{
			name:       "days beyond maximum",
			target:     "/forecast/grid?days=30",
			serviceErr: fmt.Errorf("%w: 30 not in 1..14", weather.ErrInvalidDays),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown postal code",
			target:     "/forecast/grid?location=00000",
			serviceErr: fmt.Errorf("failed to resolve location: %w", location.ErrLocationNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "outside grid coverage",
			target:     "/forecast/grid?lat=51.5&lon=-0.12",
			serviceErr: &weather.FetchError{Request: weather.RequestPoints, Err: &httpx.StatusError{StatusCode: http.StatusNotFound}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream failure",
			target:     "/forecast/grid",
			serviceErr: &weather.FetchError{Request: weather.RequestGridpointData, Err: &httpx.StatusError{StatusCode: http.StatusInternalServerError}},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "circuit open",
			target:     "/forecast/commercial",
			serviceErr: &weather.FetchError{Request: weather.RequestForecast, Err: httpx.ErrCircuitOpen},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "missing api key",
			target:     "/forecast/commercial",
			serviceErr: &weather.FetchError{Request: weather.RequestForecast, Err: weatherapi.ErrMissingAPIKey},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "timeout",
			target:     "/forecast/grid",
			serviceErr: &weather.FetchError{Request: weather.RequestHourlyForecast, Err: context.DeadlineExceeded},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "no hourly data",
			target:     "/forecast/grid",
			serviceErr: fmt.Errorf("failed to extract forecast: %w", weather.ErrMissingHourlyData),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "geocoder unavailable",
			target:     "/forecast/grid?location=08057",
			serviceErr: fmt.Errorf("failed to resolve location: %w", httpx.ErrCircuitOpen),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected",
			target:     "/forecast/grid",
			serviceErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockWeatherService{err: tt.serviceErr, result: testResult(weather.ProviderGrid, 3)}
			app := newTestApp(svc, nil)

			rec := get(t, app, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleGetLatestForecast(t *testing.T) {
	results := store.NewMemory(1)
	wimauma := types.Location{Name: "Wimauma", PostalCode: "33598"}
	results.Save(wimauma, testResult(weather.ProviderGrid, 3))

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "default location and provider", target: "/forecast/latest", wantStatus: http.StatusOK},
		{name: "explicit provider", target: "/forecast/latest?location=33598&provider=grid", wantStatus: http.StatusOK},
		{name: "provider not refreshed", target: "/forecast/latest?provider=commercial", wantStatus: http.StatusNotFound},
		{name: "location not refreshed", target: "/forecast/latest?location=04930", wantStatus: http.StatusNotFound},
		{name: "unknown provider", target: "/forecast/latest?provider=radar", wantStatus: http.StatusBadRequest},
		{name: "invalid location", target: "/forecast/latest?location=x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&mockWeatherService{}, results)

			rec := get(t, app, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleGetForecastHistory(t *testing.T) {
	results := store.NewMemory(3)
	wimauma := types.Location{Name: "Wimauma", PostalCode: "33598"}
	older := testResult(weather.ProviderGrid, 3)
	older.ID = "older"
	newer := testResult(weather.ProviderGrid, 3)
	newer.ID = "newer"
	results.Save(wimauma, older)
	results.Save(wimauma, newer)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []string
	}{
		{name: "default location and provider", target: "/forecast/history", wantStatus: http.StatusOK, wantIDs: []string{"newer", "older"}},
		{name: "explicit provider", target: "/forecast/history?location=33598&provider=grid", wantStatus: http.StatusOK, wantIDs: []string{"newer", "older"}},
		{name: "provider not refreshed", target: "/forecast/history?provider=commercial", wantStatus: http.StatusNotFound},
		{name: "unknown provider", target: "/forecast/history?provider=radar", wantStatus: http.StatusBadRequest},
		{name: "invalid location", target: "/forecast/history?location=x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&mockWeatherService{}, results)

			rec := get(t, app, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body HistoryResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, weather.ProviderGrid, body.Provider)
			assert.Equal(t, "33598", body.Location)
			ids := make([]string, 0, len(body.Forecasts))
			for _, f := range body.Forecasts {
				ids = append(ids, f.ID)
				assert.Nil(t, f.Raw)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestVenueZonesLoad(t *testing.T) {
	zones := []string{
		"America/New_York",
		"America/Chicago",
		"America/Denver",
		"America/Phoenix",
		"America/Los_Angeles",
		"America/Anchorage",
		"Pacific/Honolulu",
	}

	for _, name := range zones {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)
			assert.Equal(t, name, loc.String())
		})
	}
}
