package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"medi-forecast/internal/providers/httpx"
)

// API Docs: https://www.weather.gov/documentation/services-web-api
// Sample requests:
// - https://api.weather.gov/points/27.7125,-82.2990
// - https://api.weather.gov/gridpoints/TBW/80,91/forecast/hourly
// - https://api.weather.gov/alerts/active?point=27.7125,-82.2990
const (
	baseURL = "https://api.weather.gov"

	// Accept is the media type api.weather.gov serves by default.
	Accept = "application/geo+json"
)

type Client struct {
	transport *httpx.Client
	baseURL   string
	logger    *slog.Logger
}

func NewClient(transport *httpx.Client, base string, logger *slog.Logger) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		transport: transport,
		baseURL:   base,
		logger:    logger.With("component", "nws-client"),
	}
}

// GetPoint resolves coordinates to the forecast office grid and the URLs of
// the forecast, hourly forecast, gridpoint and station resources.
func (c *Client) GetPoint(ctx context.Context, latitude, longitude float64) (*PointAPIResponse, json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/points/%.4f,%.4f", latitude, longitude)

	var apiResp PointAPIResponse
	raw, err := c.transport.GetJSON(ctx, u.String(), &apiResp)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("resolved point",
		"latitude", latitude,
		"longitude", longitude,
		"grid_id", apiResp.Properties.GridId,
		"grid_x", apiResp.Properties.GridX,
		"grid_y", apiResp.Properties.GridY,
	)

	return &apiResp, raw, nil
}

// GetForecast fetches the 12-hour period forecast at the URL given by the point.
func (c *Client) GetForecast(ctx context.Context, forecastURL string) (*ForecastAPIResponse, json.RawMessage, error) {
	return getLinked[ForecastAPIResponse](ctx, c, forecastURL)
}

// GetHourlyForecast fetches the hourly forecast at the URL given by the point.
func (c *Client) GetHourlyForecast(ctx context.Context, hourlyURL string) (*ForecastAPIResponse, json.RawMessage, error) {
	return getLinked[ForecastAPIResponse](ctx, c, hourlyURL)
}

// GetGridpoint fetches raw gridpoint layers, including quantitativePrecipitation.
func (c *Client) GetGridpoint(ctx context.Context, gridURL string) (*GridpointAPIResponse, json.RawMessage, error) {
	return getLinked[GridpointAPIResponse](ctx, c, gridURL)
}

// GetStations lists observation stations nearest the point, closest first.
func (c *Client) GetStations(ctx context.Context, stationsURL string) (*StationsAPIResponse, json.RawMessage, error) {
	return getLinked[StationsAPIResponse](ctx, c, stationsURL)
}

func (c *Client) GetActiveAlerts(ctx context.Context, latitude, longitude float64) (*AlertsAPIResponse, json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = "/alerts/active"
	q := u.Query()
	q.Set("point", fmt.Sprintf("%.4f,%.4f", latitude, longitude))
	u.RawQuery = q.Encode()

	var apiResp AlertsAPIResponse
	raw, err := c.transport.GetJSON(ctx, u.String(), &apiResp)
	if err != nil {
		return nil, nil, err
	}
	return &apiResp, raw, nil
}

func (c *Client) GetLatestObservation(ctx context.Context, stationID string) (*ObservationAPIResponse, json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = fmt.Sprintf("/stations/%s/observations/latest", url.PathEscape(stationID))

	var apiResp ObservationAPIResponse
	raw, err := c.transport.GetJSON(ctx, u.String(), &apiResp)
	if err != nil {
		return nil, nil, err
	}
	return &apiResp, raw, nil
}

// getLinked fetches one of the absolute URLs advertised by the points response.
func getLinked[T any](ctx context.Context, c *Client, link string) (*T, json.RawMessage, error) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, nil, fmt.Errorf("invalid resource URL %q", link)
	}

	var apiResp T
	raw, err := c.transport.GetJSON(ctx, u.String(), &apiResp)
	if err != nil {
		return nil, nil, err
	}
	return &apiResp, raw, nil
}
