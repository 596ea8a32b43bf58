package weatherapi

type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TzID      string  `json:"tz_id"`
	Localtime string  `json:"localtime"`
}

// Current is the "current" block. Optional readings are pointers so a
// missing field stays distinguishable from a zero reading.
type Current struct {
	LastUpdatedEpoch int64     `json:"last_updated_epoch"`
	LastUpdated      string    `json:"last_updated"`
	TempF            float64   `json:"temp_f"`
	FeelsLikeF       float64   `json:"feelslike_f"`
	Condition        Condition `json:"condition"`
	WindMph          float64   `json:"wind_mph"`
	WindDegree       float64   `json:"wind_degree"`
	WindDir          string    `json:"wind_dir"`
	GustMph          *float64  `json:"gust_mph"`
	Humidity         *float64  `json:"humidity"`
	PrecipIn         *float64  `json:"precip_in"`
}

type Day struct {
	MaxTempF          float64   `json:"maxtemp_f"`
	MinTempF          float64   `json:"mintemp_f"`
	TotalPrecipIn     *float64  `json:"totalprecip_in"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
	Condition         Condition `json:"condition"`
}

type Astro struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// Hour times are venue-local wall clock without an offset, e.g. "2024-03-01 15:00".
type Hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time"`
	TempF        *float64  `json:"temp_f"`
	FeelsLikeF   float64   `json:"feelslike_f"`
	Condition    Condition `json:"condition"`
	WindMph      float64   `json:"wind_mph"`
	WindDir      string    `json:"wind_dir"`
	GustMph      *float64  `json:"gust_mph"`
	Humidity     *float64  `json:"humidity"`
	PrecipIn     *float64  `json:"precip_in"`
	ChanceOfRain int       `json:"chance_of_rain"`
}

type ForecastDay struct {
	Date  string `json:"date"`
	Day   Day    `json:"day"`
	Astro Astro  `json:"astro"`
	Hour  []Hour `json:"hour"`
}

type Alert struct {
	Headline    string `json:"headline"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Areas       string `json:"areas"`
	Category    string `json:"category"`
	Event       string `json:"event"`
	Note        string `json:"note"`
	Effective   string `json:"effective"`
	Expires     string `json:"expires"`
	Desc        string `json:"desc"`
	Instruction string `json:"instruction"`
}

type ForecastAPIResponse struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast struct {
		ForecastDay []ForecastDay `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []Alert `json:"alert"`
	} `json:"alerts"`
}
