package service

import (
	"testing"

	"github.com/fernhq/fern/api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CalculateFootprint Tests
// ============================================================================

func TestCalculateFootprint_KnownVector(t *testing.T) {
	t.Parallel()

	// 100 km/week gas + 300 kWh/month + 5 meat servings/week
	result := CalculateFootprint(model.CalculatorInput{
		Transport: model.TransportInput{KmDrivenPerWeek: 100, CarType: model.CarTypeGas},
		Home:      model.HomeInput{ElectricityKwhPerMonth: 300},
		Diet:      model.DietInput{MeatServingsPerWeek: 5},
	})

	assert.InDelta(t, 998.4, result.Breakdown.TransportKg, 0.001)
	assert.InDelta(t, 1440, result.Breakdown.HomeKg, 0.001)
	assert.InDelta(t, 1300, result.Breakdown.DietKg, 0.001)
	assert.InDelta(t, 3738.4, result.TotalKgPerYear, 0.001)
}

func TestCalculateFootprint_TotalEqualsBreakdownSum(t *testing.T) {
	t.Parallel()

	result := CalculateFootprint(model.CalculatorInput{
		Transport: model.TransportInput{KmDrivenPerWeek: 37.5, CarType: model.CarTypeHybrid},
		Home:      model.HomeInput{ElectricityKwhPerMonth: 220},
		Diet:      model.DietInput{MeatServingsPerWeek: 3.5},
	})

	sum := result.Breakdown.TransportKg + result.Breakdown.HomeKg + result.Breakdown.DietKg
	assert.Equal(t, sum, result.TotalKgPerYear)
}

func TestCalculateFootprint_ByCarType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		carType     model.CarType
		wantPerYear float64
	}{
		{"gas", model.CarTypeGas, 100 * 52 * 0.192},
		{"hybrid", model.CarTypeHybrid, 100 * 52 * 0.12},
		{"electric", model.CarTypeElectric, 100 * 52 * 0.05},
		{"none", model.CarTypeNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := CalculateFootprint(model.CalculatorInput{
				Transport: model.TransportInput{KmDrivenPerWeek: 100, CarType: tt.carType},
			})
			assert.InDelta(t, tt.wantPerYear, result.Breakdown.TransportKg, 0.001)
		})
	}
}

func TestCalculateFootprint_ZeroInput(t *testing.T) {
	t.Parallel()

	result := CalculateFootprint(model.CalculatorInput{})

	assert.Zero(t, result.TotalKgPerYear)
	assert.Zero(t, result.Breakdown.TransportKg)
	assert.Zero(t, result.Breakdown.HomeKg)
	assert.Zero(t, result.Breakdown.DietKg)
}

// ============================================================================
// MapAnswersToFootprintInput Tests
// ============================================================================

func TestMapAnswersToFootprintInput_FullAnswers(t *testing.T) {
	t.Parallel()

	mapping := MapAnswersToFootprintInput(map[string]interface{}{
		"q_transport_km_per_week":           float64(100),
		"q_transport_fuel_type":             "Electric",
		"q_home_electricity_usage":          "Low (energy-efficient appliances, mindful usage)",
		"q_diet_meat_frequency":             "Once per day",
		"q_diet_primary_meat_type":          "Beef (highest emissions)",
		"q_transport_flights_per_year":      float64(0),
		"q_transport_flight_duration_hours": float64(0),
		"q_transport_flight_class":          "Economy",
	})

	assert.Equal(t, model.CarTypeElectric, mapping.CalculatorInput.Transport.CarType)
	assert.InDelta(t, 100, mapping.CalculatorInput.Transport.KmDrivenPerWeek, 0.001)
	assert.InDelta(t, 220, mapping.CalculatorInput.Home.ElectricityKwhPerMonth, 0.001)
	// 7 servings/week at the beef multiplier
	assert.InDelta(t, 7*1.4, mapping.CalculatorInput.Diet.MeatServingsPerWeek, 0.001)
	assert.Empty(t, mapping.Assumptions)
}

func TestMapAnswersToFootprintInput_FlightsAddWeeklyKm(t *testing.T) {
	t.Parallel()

	mapping := MapAnswersToFootprintInput(map[string]interface{}{
		"q_transport_km_per_week":           float64(0),
		"q_transport_fuel_type":             "Gasoline/Petrol",
		"q_home_electricity_usage":          "Average (typical household usage)",
		"q_diet_meat_frequency":             "Never (vegetarian/vegan)",
		"q_diet_primary_meat_type":          "Mix of different meats",
		"q_transport_flights_per_year":      float64(2),
		"q_transport_flight_duration_hours": float64(3),
		"q_transport_flight_class":          "Business",
	})

	// 2 round trips * 2 legs * 3h * 800 km/h * 1.8 = 17280 km/year
	wantWeekly := 17280.0 / 52
	assert.InDelta(t, wantWeekly, mapping.CalculatorInput.Transport.KmDrivenPerWeek, 0.001)
}

func TestMapAnswersToFootprintInput_FuelTypeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fuel string
		want model.CarType
	}{
		{"Gasoline/Petrol", model.CarTypeGas},
		{"Diesel", model.CarTypeGas},
		{"Hybrid (gasoline)", model.CarTypeHybrid},
		{"Plug-in Hybrid", model.CarTypeHybrid},
		{"Electric", model.CarTypeElectric},
		{"Horse-drawn", model.CarTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.fuel, func(t *testing.T) {
			t.Parallel()

			mapping := MapAnswersToFootprintInput(map[string]interface{}{
				"q_transport_fuel_type": tt.fuel,
			})
			assert.Equal(t, tt.want, mapping.CalculatorInput.Transport.CarType)
		})
	}
}

func TestMapAnswersToFootprintInput_MissingAnswersRecordAssumptions(t *testing.T) {
	t.Parallel()

	mapping := MapAnswersToFootprintInput(map[string]interface{}{})

	// Every consulted answer is missing, so every one shows up as an assumption
	require.NotEmpty(t, mapping.Assumptions)
	assert.Equal(t, model.CarTypeGas, mapping.CalculatorInput.Transport.CarType)
	assert.Zero(t, mapping.CalculatorInput.Transport.KmDrivenPerWeek)
	assert.InDelta(t, 350, mapping.CalculatorInput.Home.ElectricityKwhPerMonth, 0.001)
	assert.InDelta(t, 3, mapping.CalculatorInput.Diet.MeatServingsPerWeek, 0.001)
}

func TestMapAnswersToFootprintInput_UnsupportedLabelsFallBack(t *testing.T) {
	t.Parallel()

	mapping := MapAnswersToFootprintInput(map[string]interface{}{
		"q_home_electricity_usage": "Ludicrous",
		"q_diet_meat_frequency":    "Sometimes-ish",
		"q_diet_primary_meat_type": "Kangaroo",
		"q_transport_flight_class": "Cargo hold",
	})

	assert.InDelta(t, 350, mapping.CalculatorInput.Home.ElectricityKwhPerMonth, 0.001)
	assert.InDelta(t, 3, mapping.CalculatorInput.Diet.MeatServingsPerWeek, 0.001)

	var unsupported int
	for _, a := range mapping.Assumptions {
		if a != "" {
			unsupported++
		}
	}
	assert.GreaterOrEqual(t, unsupported, 4)
}

func TestMapAnswersToFootprintInput_DieselNotedAsAssumption(t *testing.T) {
	t.Parallel()

	mapping := MapAnswersToFootprintInput(map[string]interface{}{
		"q_transport_fuel_type": "Diesel",
	})

	found := false
	for _, a := range mapping.Assumptions {
		if a == "q_transport_fuel_type 'Diesel' mapped to gas factor." {
			found = true
		}
	}
	assert.True(t, found, "diesel mapping should be surfaced as an assumption")
}

// ============================================================================
// Round1 Tests
// ============================================================================

func TestRound1(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{3738.44, 3738.4},
		{3738.46, 3738.5},
		{0, 0},
		{-1.26, -1.3},
		{2.04, 2},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round1(tt.in), 1e-9)
	}
}
