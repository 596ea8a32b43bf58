package openstreetmap

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"medi-forecast/internal/providers/httpx"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?postalcode=33598&countrycodes=us&format=json&limit=1
const (
	baseURL = "https://nominatim.openstreetmap.org"
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
		logger:    logger.With("component", "nominatim-client"),
	}
}

// SearchPostalCode returns places matching a US postal code, best match first.
// An unknown code yields an empty slice, not an error.
func (c *Client) SearchPostalCode(ctx context.Context, postalCode string) ([]SearchResult, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("search")

	q := u.Query()
	q.Set("postalcode", postalCode)
	q.Set("countrycodes", "us")
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	var results []SearchResult
	if _, err := c.transport.GetJSON(ctx, u.String(), &results); err != nil {
		return nil, err
	}

	c.logger.Debug("searched postal code", "postal_code", postalCode, "results", len(results))

	return results, nil
}
