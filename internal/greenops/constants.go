package greenops

// EPA GHG Equivalencies Calculator factors (2024 edition), in kg CO2 per unit.
//
//	equivalency = kg_CO2 / factor
const (
	// EPAMilesDrivenFactor is kg CO2 per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2 per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822
)

// AvgHomeDailyKWh is the average US household electricity use per day
// (EIA residential average, ~10,800 kWh per year).
const AvgHomeDailyKWh = 29.6

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest carbon total that gets
	// equivalencies. Below it the numbers round to nothing useful.
	MinEquivalencyThresholdKg = 1.0

	// MinHomeDaysThreshold is the smallest home-days value worth printing.
	MinHomeDaysThreshold = 0.1

	// LargeNumberThreshold switches to "~X.X million" notation.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" notation.
	BillionThreshold = 1_000_000_000
)
