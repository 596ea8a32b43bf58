package types

import "math"

const (
	MphToKph = 1.60934
	KphToMph = 1 / MphToKph
)

var cardinalDirections = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

type Wind struct {
	SpeedMph          float64 `json:"speedMph"`
	DirectionDegrees  float64 `json:"directionDegrees"`
	DirectionCardinal string  `json:"directionCardinal"`
}

// CardinalDirection maps a bearing in degrees to one of the 16 compass points.
// Negative or non-finite bearings return "Unknown".
func CardinalDirection(degrees float64) string {
	if degrees < 0 || math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return "Unknown"
	}
	direction := (degrees / 22.5) + .5 // .5 for rounding
	index := int(direction) % 16
	return cardinalDirections[index]
}

func NewWindFromMph(speedInMph, directionDegrees float64) Wind {
	return Wind{
		SpeedMph:          speedInMph,
		DirectionDegrees:  directionDegrees,
		DirectionCardinal: CardinalDirection(directionDegrees),
	}
}

// CardinalToDegrees returns the bearing of a 16-point compass abbreviation such as "SW".
func CardinalToDegrees(cardinal string) (float64, bool) {
	for i, c := range cardinalDirections {
		if c == cardinal {
			return float64(i) * 22.5, true
		}
	}
	return 0, false
}

// NewWindFromCardinal keeps a provider-supplied compass point as is.
func NewWindFromCardinal(speedInMph float64, cardinal string) Wind {
	degrees, ok := CardinalToDegrees(cardinal)
	if !ok {
		degrees = -1
	}
	return Wind{
		SpeedMph:          speedInMph,
		DirectionDegrees:  degrees,
		DirectionCardinal: cardinal,
	}
}
