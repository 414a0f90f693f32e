package service

import (
	"fmt"
	"math"

	"github.com/fernhq/fern/api/internal/model"
)

// Footprint engine: a two-stage pure computation. Stage A maps validated
// answers onto a normalized calculator input, substituting documented
// fallbacks and logging each substitution as an assumption. Stage B
// annualizes and applies fixed emissions factors.
//
// Every constant here is frozen. Changing one silently changes every stored
// footprint, so they only move together with a questionnaire version bump.

// Transport emissions factors in kg CO2e per km
var transportFactors = map[model.CarType]float64{
	model.CarTypeGas:      0.192,
	model.CarTypeHybrid:   0.12,
	model.CarTypeElectric: 0.05,
	model.CarTypeNone:     0,
}

const (
	electricityFactorKgPerKwh = 0.4
	meatFactorKgPerServing    = 5
	kmPerFlightHour           = 800

	weeksPerYear  = 52
	monthsPerYear = 12
)

// Flight class multipliers applied to flight distance
var flightClassFactors = map[string]float64{
	"Economy":         1,
	"Premium Economy": 1.2,
	"Business":        1.8,
	"First Class":     2.4,
}

// Monthly kWh by electricity-usage bucket label
var electricityKwhByBucket = map[string]float64{
	"Very low (minimal appliances, LED lights, unplug when not in use)": 120,
	"Low (energy-efficient appliances, mindful usage)":                  220,
	"Average (typical household usage)":                                 350,
	"High (many devices, always on, older appliances)":                  550,
}

// Weekly meat servings by frequency label
var meatServingsByFrequency = map[string]float64{
	"Multiple times per day":          14,
	"Once per day":                    7,
	"A few times per week":            3,
	"Rarely (once per month or less)": 0.25,
	"Never (vegetarian/vegan)":        0,
}

// Emissions multiplier by primary meat type label
var meatTypeMultiplier = map[string]float64{
	"Beef (highest emissions)":         1.4,
	"Pork":                             1.0,
	"Lamb":                             1.3,
	"Chicken/Turkey (lower emissions)": 0.7,
	"Mix of different meats":           1.0,
}

const (
	defaultElectricityBucket = "Average (typical household usage)"
	defaultMeatServings      = 3
	defaultMeatMultiplier    = 1.0
)

func answerNumber(answers map[string]interface{}, id string, fallback float64, assumptions *[]string) float64 {
	if value, ok := answers[id].(float64); ok {
		return value
	}
	*assumptions = append(*assumptions, fmt.Sprintf("%s missing; defaulted to %v.", id, fallback))
	return fallback
}

func answerString(answers map[string]interface{}, id string, fallback string, assumptions *[]string) string {
	if value, ok := answers[id].(string); ok {
		return value
	}
	*assumptions = append(*assumptions, fmt.Sprintf("%s missing; defaulted to '%s'.", id, fallback))
	return fallback
}

// MapAnswersToFootprintInput derives the calculator input from validated
// answers. It never fails; approximations are reported via the assumptions
// list, which must be surfaced to the caller even on success.
func MapAnswersToFootprintInput(answers map[string]interface{}) model.FootprintMapping {
	assumptions := []string{}

	weeklyDrivenKm := answerNumber(answers, "q_transport_km_per_week", 0, &assumptions)
	fuelTypeRaw := answerString(answers, "q_transport_fuel_type", "Gasoline/Petrol", &assumptions)
	electricityBucket := answerString(answers, "q_home_electricity_usage", defaultElectricityBucket, &assumptions)
	meatFrequency := answerString(answers, "q_diet_meat_frequency", "A few times per week", &assumptions)
	primaryMeatType := answerString(answers, "q_diet_primary_meat_type", "Mix of different meats", &assumptions)

	flightsPerYear := answerNumber(answers, "q_transport_flights_per_year", 0, &assumptions)
	avgFlightHours := answerNumber(answers, "q_transport_flight_duration_hours", 0, &assumptions)
	flightClass := answerString(answers, "q_transport_flight_class", "Economy", &assumptions)

	classFactor, ok := flightClassFactors[flightClass]
	if !ok {
		classFactor = 1
		assumptions = append(assumptions, fmt.Sprintf("q_transport_flight_class '%s' unsupported; defaulted to 'Economy' multiplier.", flightClass))
	}

	flightKmPerYear := flightsPerYear * 2 * avgFlightHours * kmPerFlightHour * classFactor
	flightKmPerWeek := flightKmPerYear / weeksPerYear
	totalTransportKmPerWeek := weeklyDrivenKm + flightKmPerWeek

	var carType model.CarType
	switch fuelTypeRaw {
	case "Gasoline/Petrol":
		carType = model.CarTypeGas
	case "Diesel":
		carType = model.CarTypeGas
		assumptions = append(assumptions, "q_transport_fuel_type 'Diesel' mapped to gas factor.")
	case "Hybrid (gasoline)", "Plug-in Hybrid":
		carType = model.CarTypeHybrid
	case "Electric":
		carType = model.CarTypeElectric
	default:
		carType = model.CarTypeNone
		assumptions = append(assumptions, fmt.Sprintf("q_transport_fuel_type '%s' unsupported; defaulted to 'none'.", fuelTypeRaw))
	}

	electricityKwhPerMonth, ok := electricityKwhByBucket[electricityBucket]
	if !ok {
		electricityKwhPerMonth = electricityKwhByBucket[defaultElectricityBucket]
		assumptions = append(assumptions, fmt.Sprintf("q_home_electricity_usage '%s' unsupported; defaulted to average usage.", electricityBucket))
	}

	servingsBase, ok := meatServingsByFrequency[meatFrequency]
	if !ok {
		servingsBase = defaultMeatServings
		assumptions = append(assumptions, fmt.Sprintf("q_diet_meat_frequency '%s' unsupported; defaulted to 3 servings/week.", meatFrequency))
	}

	typeMultiplier, ok := meatTypeMultiplier[primaryMeatType]
	if !ok {
		typeMultiplier = defaultMeatMultiplier
		assumptions = append(assumptions, fmt.Sprintf("q_diet_primary_meat_type '%s' unsupported; defaulted to mixed-meat factor.", primaryMeatType))
	}

	return model.FootprintMapping{
		CalculatorInput: model.CalculatorInput{
			Transport: model.TransportInput{
				KmDrivenPerWeek: totalTransportKmPerWeek,
				CarType:         carType,
			},
			Home: model.HomeInput{
				ElectricityKwhPerMonth: electricityKwhPerMonth,
			},
			Diet: model.DietInput{
				MeatServingsPerWeek: servingsBase * typeMultiplier,
			},
		},
		Assumptions: assumptions,
	}
}

// CalculateFootprint annualizes the input and applies the fixed emissions
// factors. TotalKgPerYear is exactly the sum of the breakdown components.
func CalculateFootprint(input model.CalculatorInput) model.FootprintResult {
	yearlyKmDriven := input.Transport.KmDrivenPerWeek * weeksPerYear
	yearlyKwh := input.Home.ElectricityKwhPerMonth * monthsPerYear
	yearlyMeatServings := input.Diet.MeatServingsPerWeek * weeksPerYear

	transportKg := yearlyKmDriven * transportFactors[input.Transport.CarType]
	homeKg := yearlyKwh * electricityFactorKgPerKwh
	dietKg := yearlyMeatServings * meatFactorKgPerServing

	return model.FootprintResult{
		TotalKgPerYear: transportKg + homeKg + dietKg,
		Breakdown: model.FootprintBreakdown{
			TransportKg: transportKg,
			HomeKg:      homeKg,
			DietKg:      dietKg,
		},
	}
}

// Round1 rounds to one decimal place. Completion accounting rounds an offset
// exactly once and reuses the rounded value everywhere to avoid drift between
// stored and displayed totals.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}
