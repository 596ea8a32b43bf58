package types

import "strings"

// ConditionClass is a provider-neutral grouping of free-text conditions,
// suitable for choosing an icon.
type ConditionClass string

const (
	ConditionUnknown      ConditionClass = "unknown"
	ConditionClear        ConditionClass = "clear"
	ConditionPartlyCloudy ConditionClass = "partly-cloudy"
	ConditionCloudy       ConditionClass = "cloudy"
	ConditionFog          ConditionClass = "fog"
	ConditionRain         ConditionClass = "rain"
	ConditionSnow         ConditionClass = "snow"
	ConditionSleet        ConditionClass = "sleet"
	ConditionThunderstorm ConditionClass = "thunderstorm"
	ConditionWind         ConditionClass = "wind"
)

// NoDataText is shown in place of a condition when no hour could be selected.
const NoDataText = "No data"

// Condition is a free-text description with an optional icon reference.
type Condition struct {
	Text  string         `json:"text"`
	Icon  string         `json:"icon"`
	Class ConditionClass `json:"class"`
}

func NewCondition(text, icon string) Condition {
	return Condition{
		Text:  text,
		Icon:  icon,
		Class: ClassifyCondition(text),
	}
}

// NoDataCondition is the placeholder used when a period has no usable hour.
func NoDataCondition() Condition {
	return Condition{
		Text:  NoDataText,
		Class: ConditionUnknown,
	}
}

// ClassifyCondition maps a condition description to a ConditionClass.
// Order matters: "Chance Rain And Snow" is sleet, "Thunderstorms And Rain" is
// a thunderstorm, "Partly Sunny" is partly cloudy.
func ClassifyCondition(text string) ConditionClass {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "":
		return ConditionUnknown
	case hasAny(s, "thunder", "t-storm", "tstorm"):
		return ConditionThunderstorm
	case hasAny(s, "sleet", "freezing", "ice pellets", "wintry mix") || (strings.Contains(s, "rain") && strings.Contains(s, "snow")):
		return ConditionSleet
	case hasAny(s, "snow", "blizzard", "flurries"):
		return ConditionSnow
	case hasAny(s, "rain", "shower", "drizzle"):
		return ConditionRain
	case hasAny(s, "fog", "mist", "haze", "smoke"):
		return ConditionFog
	case hasAny(s, "partly", "mostly sunny", "mostly clear"):
		return ConditionPartlyCloudy
	case hasAny(s, "cloud", "overcast"):
		return ConditionCloudy
	case hasAny(s, "sunny", "clear", "fair"):
		return ConditionClear
	case hasAny(s, "wind", "breezy", "blustery"):
		return ConditionWind
	default:
		return ConditionUnknown
	}
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
