package nws

// QuantitativeValue is the NWS {unitCode, value} pair. Value is nil when the
// station or grid has no reading.
type QuantitativeValue struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

type PointAPIResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Properties struct {
		Cwa                 string `json:"cwa"`
		ForecastOffice      string `json:"forecastOffice"`
		GridId              string `json:"gridId"`
		GridX               int    `json:"gridX"`
		GridY               int    `json:"gridY"`
		Forecast            string `json:"forecast"`
		ForecastHourly      string `json:"forecastHourly"`
		ForecastGridData    string `json:"forecastGridData"`
		ObservationStations string `json:"observationStations"`
		TimeZone            string `json:"timeZone"`
		RelativeLocation    struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

// ForecastPeriod is one entry of either the 12-hour or the hourly forecast.
type ForecastPeriod struct {
	Number                     int               `json:"number"`
	Name                       string            `json:"name"`
	StartTime                  string            `json:"startTime"`
	EndTime                    string            `json:"endTime"`
	IsDaytime                  bool              `json:"isDaytime"`
	Temperature                *float64          `json:"temperature"`
	TemperatureUnit            string            `json:"temperatureUnit"`
	ProbabilityOfPrecipitation QuantitativeValue `json:"probabilityOfPrecipitation"`
	RelativeHumidity           QuantitativeValue `json:"relativeHumidity"`
	WindSpeed                  string            `json:"windSpeed"`
	WindDirection              string            `json:"windDirection"`
	Icon                       string            `json:"icon"`
	ShortForecast              string            `json:"shortForecast"`
	DetailedForecast           string            `json:"detailedForecast"`
}

type ForecastAPIResponse struct {
	Properties struct {
		Updated           string           `json:"updated"`
		GeneratedAt       string           `json:"generatedAt"`
		Units             string           `json:"units"`
		ForecastGenerator string           `json:"forecastGenerator"`
		Periods           []ForecastPeriod `json:"periods"`
	} `json:"properties"`
}

// GridValue is one entry of a gridpoint layer. ValidTime is an ISO-8601
// interval such as "2024-03-01T12:00:00+00:00/PT6H".
type GridValue struct {
	ValidTime string   `json:"validTime"`
	Value     *float64 `json:"value"`
}

type GridLayer struct {
	Uom    string      `json:"uom"`
	Values []GridValue `json:"values"`
}

type GridpointAPIResponse struct {
	Properties struct {
		UpdateTime                 string    `json:"updateTime"`
		ValidTimes                 string    `json:"validTimes"`
		QuantitativePrecipitation  GridLayer `json:"quantitativePrecipitation"`
		ProbabilityOfPrecipitation GridLayer `json:"probabilityOfPrecipitation"`
	} `json:"properties"`
}

type AlertProperties struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Severity    string `json:"severity"`
	Effective   string `json:"effective"`
	Expires     string `json:"expires"`
}

type AlertsAPIResponse struct {
	Features []struct {
		Properties AlertProperties `json:"properties"`
	} `json:"features"`
}

type StationsAPIResponse struct {
	Features []struct {
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
			Name              string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

type ObservationAPIResponse struct {
	Properties struct {
		Timestamp        string            `json:"timestamp"`
		TextDescription  string            `json:"textDescription"`
		Icon             string            `json:"icon"`
		Temperature      QuantitativeValue `json:"temperature"`
		WindDirection    QuantitativeValue `json:"windDirection"`
		WindSpeed        QuantitativeValue `json:"windSpeed"`
		WindGust         QuantitativeValue `json:"windGust"`
		RelativeHumidity QuantitativeValue `json:"relativeHumidity"`
		WindChill        QuantitativeValue `json:"windChill"`
		HeatIndex        QuantitativeValue `json:"heatIndex"`
	} `json:"properties"`
}
