package weather

import (
	"strings"

	"medi-forecast/internal/providers/nws"
	"medi-forecast/internal/providers/weatherapi"
)

// ClassifySeverity derives a severity from the alert's event name.
func ClassifySeverity(event string) Severity {
	e := strings.ToLower(event)
	switch {
	case strings.Contains(e, "warning"):
		return SeverityHigh
	case strings.Contains(e, "watch"):
		return SeverityMedium
	case strings.Contains(e, "advisory"):
		return SeverityLow
	default:
		return SeverityDefault
	}
}

func newAlert(headline, event, description string) Alert {
	name := event
	if name == "" {
		name = headline
	}
	return Alert{
		Headline:    headline,
		Event:       event,
		Description: description,
		Severity:    ClassifySeverity(name),
	}
}

func mapCommercialAlerts(alerts []weatherapi.Alert) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, newAlert(a.Headline, a.Event, a.Desc))
	}
	return out
}

func mapGridAlerts(resp *nws.AlertsAPIResponse) []Alert {
	if resp == nil {
		return []Alert{}
	}
	out := make([]Alert, 0, len(resp.Features))
	for _, f := range resp.Features {
		p := f.Properties
		out = append(out, newAlert(p.Headline, p.Event, p.Description))
	}
	return out
}
