package types

const InchesToMm = 25.4

type Precipitation struct {
	Inches float64
	Mm     float64
}

func NewPrecipitationFromMm(amountInMm float64) Precipitation {
	return Precipitation{
		Inches: amountInMm / InchesToMm,
		Mm:     amountInMm,
	}
}
