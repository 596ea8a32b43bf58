package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"medi-forecast/internal/astronomy"
	"medi-forecast/internal/config"
	"medi-forecast/internal/providers/httpx"
	"medi-forecast/internal/providers/nws"
	"medi-forecast/internal/providers/weatherapi"
	"medi-forecast/internal/timezone"
	"medi-forecast/internal/types"
)

// CommercialProvider fetches a pre-grouped imperial forecast by location query
type CommercialProvider interface {
	GetForecast(ctx context.Context, query string, days int, alerts bool) (*weatherapi.ForecastAPIResponse, json.RawMessage, error)
}

// GridProvider fetches the National Weather Service resources of one grid point
type GridProvider interface {
	GetPoint(ctx context.Context, latitude, longitude float64) (*nws.PointAPIResponse, json.RawMessage, error)
	GetForecast(ctx context.Context, forecastURL string) (*nws.ForecastAPIResponse, json.RawMessage, error)
	GetHourlyForecast(ctx context.Context, hourlyURL string) (*nws.ForecastAPIResponse, json.RawMessage, error)
	GetGridpoint(ctx context.Context, gridURL string) (*nws.GridpointAPIResponse, json.RawMessage, error)
	GetActiveAlerts(ctx context.Context, latitude, longitude float64) (*nws.AlertsAPIResponse, json.RawMessage, error)
	GetStations(ctx context.Context, stationsURL string) (*nws.StationsAPIResponse, json.RawMessage, error)
	GetLatestObservation(ctx context.Context, stationID string) (*nws.ObservationAPIResponse, json.RawMessage, error)
}

// LocationResolver fills in coordinates for a location
type LocationResolver interface {
	Resolve(ctx context.Context, loc types.Location) (types.Location, error)
}

type Service interface {
	// Fetch runs one fetch cycle. Any upstream failure aborts the whole cycle.
	Fetch(ctx context.Context, req Request) (*Result, error)
}

type weatherService struct {
	commercial CommercialProvider
	grid       GridProvider
	locations  LocationResolver
	astronomy  astronomy.Func
	cfg        *config.Config
	logger     *slog.Logger
	now        func() time.Time
}

// NewWeatherService wires the WeatherAPI and NWS clients behind their own
// rate limiters and circuit breakers
func NewWeatherService(cfg *config.Config, locations LocationResolver, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}

	weatherAPITransport := httpx.NewClient(httpx.Config{
		Name:              "weatherapi",
		Timeout:           cfg.App.FetchTimeout,
		RequestsPerSecond: cfg.Providers.WeatherAPI.RequestsPerSecond,
		Burst:             cfg.Providers.WeatherAPI.Burst,
		Breaker:           cfg.Breaker,
	}, logger)
	nwsTransport := httpx.NewClient(httpx.Config{
		Name:              "nws",
		Timeout:           cfg.App.FetchTimeout,
		RequestsPerSecond: cfg.Providers.NWS.RequestsPerSecond,
		Burst:             cfg.Providers.NWS.Burst,
		UserAgent:         cfg.Providers.NWS.UserAgent,
		Accept:            nws.Accept,
		Breaker:           cfg.Breaker,
	}, logger)

	return NewWeatherServiceWithProviders(
		weatherapi.NewClient(weatherAPITransport, cfg.Providers.WeatherAPI.BaseURL, cfg.Providers.WeatherAPI.APIKey, logger),
		nws.NewClient(nwsTransport, cfg.Providers.NWS.BaseURL, logger),
		locations,
		astronomy.NewCalculator(tzSvc),
		cfg,
		logger,
	), nil
}

// NewWeatherServiceWithProviders creates a weather service with custom providers
// This is useful for testing with mock providers
func NewWeatherServiceWithProviders(
	commercial CommercialProvider,
	grid GridProvider,
	locations LocationResolver,
	astro astronomy.Func,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &weatherService{
		commercial: commercial,
		grid:       grid,
		locations:  locations,
		astronomy:  astro,
		cfg:        cfg,
		logger:     logger.With("component", "weather-service"),
		now:        time.Now,
	}
}

func (s *weatherService) Fetch(ctx context.Context, req Request) (*Result, error) {
	if req.Days < 1 || req.Days > s.cfg.App.MaxDays {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidDays, req.Days, s.cfg.App.MaxDays)
	}

	if s.cfg.App.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.App.FetchTimeout)
		defer cancel()
	}

	id := uuid.NewString()
	logger := s.logger.With("fetch_id", id, "provider", string(req.Provider), "location", req.Location.Key())

	var (
		result *Result
		err    error
	)
	switch req.Provider {
	case ProviderCommercial:
		result, err = s.fetchCommercial(ctx, req)
	case ProviderGrid:
		result, err = s.fetchGrid(ctx, req, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, req.Provider)
	}
	if err != nil {
		logger.Error("fetch cycle failed", "error", err)
		return nil, err
	}

	result.ID = id
	result.Provider = req.Provider
	result.FetchedAt = s.now().UTC()
	result.Partial = Partial{RequestedDays: req.Days, AvailableDays: len(result.Days)}

	if result.Partial.IsPartial() {
		logger.Warn("provider returned fewer days than requested",
			"requested_days", req.Days,
			"available_days", len(result.Days),
		)
	}
	logger.Debug("fetch cycle complete", "days", len(result.Days), "alerts", len(result.Alerts))

	return result, nil
}

func (s *weatherService) fetchCommercial(ctx context.Context, req Request) (*Result, error) {
	resp, raw, err := s.commercial.GetForecast(ctx, req.Location.Query(), req.Days, true)
	if err != nil {
		return nil, fetchErr(RequestForecast, err)
	}

	ex, err := extractCommercial(resp, req.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to extract forecast: %w", err)
	}

	loc := req.Location
	if loc.Name == "" {
		loc.Name = resp.Location.Name
	}

	return &Result{
		Location: loc,
		Current:  ex.Current,
		Days:     normalize(ex.Days, req.Location, req.Days, s.astronomy),
		Alerts:   ex.Alerts,
		Raw:      map[RequestKind]json.RawMessage{RequestForecast: raw},
	}, nil
}

func (s *weatherService) fetchGrid(ctx context.Context, req Request, logger *slog.Logger) (*Result, error) {
	loc, err := s.locations.Resolve(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}
	if !loc.HasCoordinates() {
		return nil, ErrMissingCoordinates
	}
	lat, lon := loc.Coordinates.Latitude, loc.Coordinates.Longitude

	point, pointRaw, err := s.grid.GetPoint(ctx, lat, lon)
	if err != nil {
		return nil, fetchErr(RequestPoints, err)
	}
	props := point.Properties
	if loc.Name == "" && props.RelativeLocation.Properties.City != "" {
		loc.Name = props.RelativeLocation.Properties.City + ", " + props.RelativeLocation.Properties.State
	}

	var payload gridPayload
	var forecastRaw, hourlyRaw, gridRaw, alertsRaw, observationRaw json.RawMessage

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		resp, raw, err := s.grid.GetForecast(ctx, props.Forecast)
		if err != nil {
			return fetchErr(RequestGridForecast, err)
		}
		payload.Forecast, forecastRaw = resp, raw
		return nil
	})
	p.Go(func(ctx context.Context) error {
		resp, raw, err := s.grid.GetHourlyForecast(ctx, props.ForecastHourly)
		if err != nil {
			return fetchErr(RequestHourlyForecast, err)
		}
		payload.Hourly, hourlyRaw = resp, raw
		return nil
	})
	p.Go(func(ctx context.Context) error {
		resp, raw, err := s.grid.GetGridpoint(ctx, props.ForecastGridData)
		if err != nil {
			return fetchErr(RequestGridpointData, err)
		}
		payload.Gridpoint, gridRaw = resp, raw
		return nil
	})
	p.Go(func(ctx context.Context) error {
		resp, raw, err := s.grid.GetActiveAlerts(ctx, lat, lon)
		if err != nil {
			return fetchErr(RequestAlerts, err)
		}
		payload.Alerts, alertsRaw = resp, raw
		return nil
	})
	p.Go(func(ctx context.Context) error {
		obs, raw, err := s.latestObservation(ctx, props.ObservationStations)
		if err != nil {
			return fetchErr(RequestStationObservation, err)
		}
		payload.Observation, observationRaw = obs, raw
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	ex, skipped, err := extractGrid(payload, req.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to extract forecast: %w", err)
	}
	if skipped > 0 {
		logger.Warn("skipped unusable precipitation entries", "count", skipped)
	}

	raw := map[RequestKind]json.RawMessage{
		RequestPoints:         pointRaw,
		RequestGridForecast:   forecastRaw,
		RequestHourlyForecast: hourlyRaw,
		RequestGridpointData:  gridRaw,
		RequestAlerts:         alertsRaw,
	}
	if observationRaw != nil {
		raw[RequestStationObservation] = observationRaw
	}

	return &Result{
		Location: loc,
		Current:  ex.Current,
		Days:     normalize(ex.Days, loc, req.Days, s.astronomy),
		Alerts:   ex.Alerts,
		Raw:      raw,
	}, nil
}

// latestObservation reads the nearest station. A grid point without stations
// yields a nil observation rather than an error.
func (s *weatherService) latestObservation(ctx context.Context, stationsURL string) (*nws.ObservationAPIResponse, json.RawMessage, error) {
	if stationsURL == "" {
		return nil, nil, nil
	}
	stations, _, err := s.grid.GetStations(ctx, stationsURL)
	if err != nil {
		return nil, nil, err
	}
	if len(stations.Features) == 0 {
		return nil, nil, nil
	}

	obs, raw, err := s.grid.GetLatestObservation(ctx, stations.Features[0].Properties.StationIdentifier)
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			// Stations without a recent report answer 404.
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return obs, raw, nil
}
