package greenops

import (
	"fmt"
	"math"
)

// Calculate returns the miles-driven and smartphones-charged equivalencies
// of a carbon total in kg CO2.
//
// Totals below MinEquivalencyThresholdKg give an empty output and no error.
// Negative totals return ErrNegativeValue. NaN and infinite totals return
// ErrCalculationOverflow.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if err := checkFinite(kg); err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	if math.IsInf(miles, 0) || math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	return EquivalencyOutput{
		InputKg: kg,
		Results: []EquivalencyResult{
			{
				Type:           EquivalencyMilesDriven,
				Value:          miles,
				FormattedValue: milesFormatted,
				Label:          "miles driven",
			},
			{
				Type:           EquivalencySmartphonesCharged,
				Value:          phones,
				FormattedValue: phonesFormatted,
				Label:          "smartphones charged",
			},
		},
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesFormatted, phonesFormatted),
	}, nil
}

// HomeDays expresses a usage total in kWh as days of average home
// electricity use.
//
// The result is empty below MinHomeDaysThreshold. Negative totals return
// ErrNegativeValue.
func HomeDays(kwh float64) (EquivalencyResult, bool, error) {
	if err := checkFinite(kwh); err != nil {
		return EquivalencyResult{}, false, err
	}
	days := kwh / AvgHomeDailyKWh
	if days < MinHomeDaysThreshold {
		return EquivalencyResult{}, false, nil
	}
	return EquivalencyResult{
		Type:           EquivalencyHomeDays,
		Value:          days,
		FormattedValue: FormatFloat(days, 1),
		Label:          "days of average home electricity",
	}, true, nil
}

func checkFinite(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ErrCalculationOverflow
	}
	if v < 0 {
		return ErrNegativeValue
	}
	return nil
}

// formatEquivalencyValue rounds to an integer with separators, or uses
// million/billion notation for large values.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
