package types

type Temperature struct {
	Celsius    float64
	Fahrenheit float64
}

func NewTemperatureFromCelsius(celsius float64) Temperature {
	return Temperature{
		Celsius:    celsius,
		Fahrenheit: CelsiusToFahrenheit(celsius),
	}
}

// CelsiusToFahrenheit converts a reading in °C to °F.
func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}
