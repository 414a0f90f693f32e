package model

// CarType categorizes a vehicle for emissions purposes
type CarType string

const (
	CarTypeGas      CarType = "gas"
	CarTypeHybrid   CarType = "hybrid"
	CarTypeElectric CarType = "electric"
	CarTypeNone     CarType = "none"
)

// CalculatorInput is the normalized input to the footprint calculation
type CalculatorInput struct {
	Transport TransportInput `json:"transport"`
	Home      HomeInput      `json:"home"`
	Diet      DietInput      `json:"diet"`
}

// TransportInput covers driving plus the weekly-equivalent share of flights
type TransportInput struct {
	KmDrivenPerWeek float64 `json:"kmDrivenPerWeek"`
	CarType         CarType `json:"carType"`
}

// HomeInput covers household electricity
type HomeInput struct {
	ElectricityKwhPerMonth float64 `json:"electricityKwhPerMonth"`
}

// DietInput covers meat consumption in weekly serving equivalents
type DietInput struct {
	MeatServingsPerWeek float64 `json:"meatServingsPerWeek"`
}

// FootprintBreakdown itemizes yearly emissions in kg CO2e
type FootprintBreakdown struct {
	TransportKg float64 `json:"transportKg"`
	HomeKg      float64 `json:"homeKg"`
	DietKg      float64 `json:"dietKg"`
}

// FootprintResult is the full estimate. TotalKgPerYear is always exactly the
// sum of the breakdown components.
type FootprintResult struct {
	TotalKgPerYear float64            `json:"totalKgPerYear"`
	Breakdown      FootprintBreakdown `json:"breakdown"`
}

// FootprintMapping pairs a calculator input with the assumptions made while
// deriving it from questionnaire answers.
type FootprintMapping struct {
	CalculatorInput CalculatorInput `json:"calculatorInput"`
	Assumptions     []string        `json:"assumptions"`
}
