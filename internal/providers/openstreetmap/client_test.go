package openstreetmap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medi-forecast/internal/config"
	"medi-forecast/internal/providers/httpx"
)

func TestClient_SearchPostalCode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantName  string
	}{
		{
			name: "known postal code",
			body: `[{
				"place_id": 123,
				"lat": "27.7125",
				"lon": "-82.2990",
				"display_name": "Wimauma, Hillsborough County, Florida, 33598, United States",
				"address": {"village": "Wimauma", "county": "Hillsborough County", "state": "Florida", "postcode": "33598"}
			}]`,
			wantCount: 1,
			wantName:  "Wimauma",
		},
		{
			name:      "unknown postal code",
			body:      `[]`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotPostal, gotCountry string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotPostal = r.URL.Query().Get("postalcode")
				gotCountry = r.URL.Query().Get("countrycodes")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			transport := httpx.NewClient(httpx.Config{
				Name:      "nominatim",
				Timeout:   2 * time.Second,
				UserAgent: "medi-forecast-test",
				Breaker:   config.BreakerConfig{MaxRequests: 1, Timeout: time.Minute, MinRequests: 10, FailureRatio: 1},
			}, logger)
			client := NewClient(transport, srv.URL, logger)

			results, err := client.SearchPostalCode(context.Background(), "33598")
			require.NoError(t, err)

			assert.Equal(t, "/search", gotPath)
			assert.Equal(t, "33598", gotPostal)
			assert.Equal(t, "us", gotCountry)
			require.Len(t, results, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantName, results[0].Address.Locality())
				assert.Equal(t, "27.7125", results[0].Lat)
			}
		})
	}
}
