// Package greenops turns forecast totals into relatable equivalencies.
//
// A weekly emissions total in kg CO2 is hard to picture, so the dashboard
// shows it as miles driven and smartphones charged using EPA factors, and a
// usage total in kWh as days of average home electricity.
package greenops

import "fmt"

// EquivalencyType represents a category of equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2 to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2 to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyHomeDays converts kWh to days of average home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds the equivalencies for one carbon total.
type EquivalencyOutput struct {
	// InputKg is the carbon total the results were computed from.
	InputKg float64 `json:"input_kg"`

	// Results are in display priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~29 miles or charging ~681 smartphones".
	DisplayText string `json:"display_text"`

	// IsEmpty is true when the total was too small to be worth showing.
	IsEmpty bool `json:"is_empty"`
}
