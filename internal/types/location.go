package types

import "fmt"

// Location identifies a forecast venue. Depending on how it was chosen it
// carries a postal code, coordinates, or both.
type Location struct {
	Name        string  `json:"name"`
	PostalCode  string  `json:"postalCode,omitempty"`
	Coordinates *Coords `json:"coordinates,omitempty"`
}

func (l Location) HasCoordinates() bool {
	return l.Coordinates != nil
}

// Query returns the form accepted by provider search parameters: the
// postal code when known, otherwise "lat,lon".
func (l Location) Query() string {
	if l.PostalCode != "" {
		return l.PostalCode
	}
	if l.Coordinates != nil {
		return fmt.Sprintf("%.4f,%.4f", l.Coordinates.Latitude, l.Coordinates.Longitude)
	}
	return l.Name
}

// Key is the canonical identifier used to index stored results.
func (l Location) Key() string {
	return l.Query()
}
