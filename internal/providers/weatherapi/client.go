package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"medi-forecast/internal/providers/httpx"
)

// API Docs: https://www.weatherapi.com/docs/
// Sample request: https://api.weatherapi.com/v1/forecast.json?key=KEY&q=33598&days=4&aqi=no&alerts=yes
const (
	baseURL = "https://api.weatherapi.com/v1"
)

// ErrMissingAPIKey is returned when no key is configured.
var ErrMissingAPIKey = errors.New("weatherapi: api key not configured")

type Client struct {
	transport *httpx.Client
	baseURL   string
	apiKey    string
	logger    *slog.Logger
}

func NewClient(transport *httpx.Client, base, apiKey string, logger *slog.Logger) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		transport: transport,
		baseURL:   base,
		apiKey:    apiKey,
		logger:    logger.With("component", "weatherapi-client"),
	}
}

// GetForecast requests one more day than asked for so the caller can slice to
// a full `days` window even when the first returned day is already partly over.
func (c *Client) GetForecast(ctx context.Context, query string, days int, alerts bool) (*ForecastAPIResponse, json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("forecast.json")

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("q", query)
	q.Set("days", strconv.Itoa(days+1))
	q.Set("aqi", "no")
	if alerts {
		q.Set("alerts", "yes")
	} else {
		q.Set("alerts", "no")
	}
	u.RawQuery = q.Encode()

	var apiResp ForecastAPIResponse
	raw, err := c.transport.GetJSON(ctx, u.String(), &apiResp)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("fetched forecast",
		"query", query,
		"requested_days", days,
		"returned_days", len(apiResp.Forecast.ForecastDay),
		"alerts", len(apiResp.Alerts.Alert),
	)

	return &apiResp, raw, nil
}
