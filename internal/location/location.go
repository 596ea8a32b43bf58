package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"medi-forecast/internal/config"
	"medi-forecast/internal/providers/openstreetmap"
	"medi-forecast/internal/types"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidLocation  = errors.New("location must be a 5-digit postal code or \"lat,lon\"")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Service resolves user-supplied locations to forecastable venues
type Service interface {
	// Resolve returns loc with coordinates filled in
	Resolve(ctx context.Context, loc types.Location) (types.Location, error)
	// Configured returns the city picker entries
	Configured() []types.Location
}

// Geocoder turns a postal code into coordinates and a display name
type Geocoder interface {
	GeocodePostalCode(ctx context.Context, postalCode string) (types.Coords, string, error)
}

// PostalSearchProvider defines the interface for forward postal code search
type PostalSearchProvider interface {
	SearchPostalCode(ctx context.Context, postalCode string) ([]openstreetmap.SearchResult, error)
}

// locationService implements the Service interface
type locationService struct {
	geocoder   Geocoder
	configured []types.Location
	logger     *slog.Logger
}

// NewLocationService creates a location service that geocodes with Google when
// an API key is configured and with Nominatim otherwise
func NewLocationService(cfg *config.Config, nominatim PostalSearchProvider, logger *slog.Logger) Service {
	var geocoder Geocoder = NewNominatimGeocoder(nominatim)
	if cfg.Providers.Google.APIKey != "" {
		geocoder = NewGoogleGeocoder(cfg.Providers.Google.APIKey)
	}
	return NewLocationServiceWithProviders(geocoder, FromConfig(cfg.App.Locations), logger)
}

// NewLocationServiceWithProviders creates a new location service with a custom geocoder
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(geocoder Geocoder, configured []types.Location, logger *slog.Logger) Service {
	return &locationService{
		geocoder:   geocoder,
		configured: configured,
		logger:     logger.With("component", "location-service"),
	}
}

// FromConfig converts configured cities to locations
func FromConfig(entries []config.LocationConfig) []types.Location {
	locations := make([]types.Location, 0, len(entries))
	for _, e := range entries {
		loc := types.Location{Name: e.Name, PostalCode: e.PostalCode}
		if e.Latitude != 0 || e.Longitude != 0 {
			coords := types.NewCoords(e.Latitude, e.Longitude)
			loc.Coordinates = &coords
		}
		locations = append(locations, loc)
	}
	return locations
}

func (s *locationService) Configured() []types.Location {
	out := make([]types.Location, len(s.configured))
	copy(out, s.configured)
	return out
}

func (s *locationService) Resolve(ctx context.Context, loc types.Location) (types.Location, error) {
	if loc.HasCoordinates() {
		if err := ValidateCoordinates(loc.Coordinates.Latitude, loc.Coordinates.Longitude); err != nil {
			return types.Location{}, err
		}
		if loc.Name == "" {
			loc.Name = loc.Query()
		}
		return loc, nil
	}

	if loc.PostalCode == "" {
		return types.Location{}, ErrInvalidLocation
	}

	for _, known := range s.configured {
		if known.PostalCode == loc.PostalCode && known.HasCoordinates() {
			return known, nil
		}
	}

	coords, name, err := s.geocoder.GeocodePostalCode(ctx, loc.PostalCode)
	if err != nil {
		s.logger.Error("failed to geocode postal code", "postal_code", loc.PostalCode, "error", err)
		return types.Location{}, fmt.Errorf("failed to geocode postal code %s: %w", loc.PostalCode, err)
	}
	if err := ValidateCoordinates(coords.Latitude, coords.Longitude); err != nil {
		return types.Location{}, fmt.Errorf("geocoder returned invalid coordinates: %w", err)
	}

	if loc.Name == "" {
		loc.Name = name
	}
	loc.Coordinates = &coords

	s.logger.Debug("resolved postal code",
		"postal_code", loc.PostalCode,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	return loc, nil
}

var validate = validator.New()

// Parse interprets a location query: a 5-digit postal code or "lat,lon".
func Parse(query string) (types.Location, error) {
	query = strings.TrimSpace(query)

	if lat, lon, ok := strings.Cut(query, ","); ok {
		return FromCoordinates(lat, lon)
	}

	if err := validate.Var(query, "required,numeric,len=5"); err != nil {
		return types.Location{}, ErrInvalidLocation
	}
	return types.Location{PostalCode: query}, nil
}

// FromCoordinates parses and validates a latitude/longitude pair.
func FromCoordinates(latitude, longitude string) (types.Location, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	if err != nil {
		return types.Location{}, ErrInvalidLatitude
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if err != nil {
		return types.Location{}, ErrInvalidLongitude
	}
	if err := ValidateCoordinates(lat, lon); err != nil {
		return types.Location{}, err
	}

	coords := types.NewCoords(lat, lon)
	return types.Location{Coordinates: &coords}, nil
}

func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return ErrInvalidLatitude
	}
	if longitude < -180 || longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
