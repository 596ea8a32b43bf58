package location

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kelvins/geocoder"

	"medi-forecast/internal/types"
)

// nominatimGeocoder adapts the OpenStreetMap search client
type nominatimGeocoder struct {
	provider PostalSearchProvider
}

func NewNominatimGeocoder(provider PostalSearchProvider) Geocoder {
	return &nominatimGeocoder{provider: provider}
}

func (g *nominatimGeocoder) GeocodePostalCode(ctx context.Context, postalCode string) (types.Coords, string, error) {
	results, err := g.provider.SearchPostalCode(ctx, postalCode)
	if err != nil {
		return types.Coords{}, "", fmt.Errorf("failed to search postal code: %w", err)
	}
	if len(results) == 0 {
		return types.Coords{}, "", ErrLocationNotFound
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return types.Coords{}, "", fmt.Errorf("failed to parse latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return types.Coords{}, "", fmt.Errorf("failed to parse longitude %q: %w", first.Lon, err)
	}

	name := first.Address.Locality()
	if name == "" {
		name = first.DisplayName
	}

	return types.NewCoords(lat, lon), name, nil
}

// googleGeocoder uses the Google Geocoding API through kelvins/geocoder.
// The library keeps its key in a package variable.
type googleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) Geocoder {
	geocoder.ApiKey = apiKey
	return &googleGeocoder{}
}

func (g *googleGeocoder) GeocodePostalCode(ctx context.Context, postalCode string) (types.Coords, string, error) {
	if err := ctx.Err(); err != nil {
		return types.Coords{}, "", err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{
		PostalCode: postalCode,
		Country:    "United States",
	})
	if err != nil {
		return types.Coords{}, "", fmt.Errorf("%w: %v", ErrLocationNotFound, err)
	}

	return types.NewCoords(loc.Latitude, loc.Longitude), postalCode, nil
}
