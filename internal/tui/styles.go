package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette.
var (
	ColorHeader   = lipgloss.Color("39")  //nolint:gochecknoglobals // shared palette
	ColorLabel    = lipgloss.Color("245") //nolint:gochecknoglobals // shared palette
	ColorValue    = lipgloss.Color("255") //nolint:gochecknoglobals // shared palette
	ColorEmission = lipgloss.Color("208") //nolint:gochecknoglobals // shared palette
	ColorUsage    = lipgloss.Color("42")  //nolint:gochecknoglobals // shared palette
	ColorMuted    = lipgloss.Color("241") //nolint:gochecknoglobals // shared palette
	ColorCritical = lipgloss.Color("196") //nolint:gochecknoglobals // shared palette
	ColorSpinner  = lipgloss.Color("205") //nolint:gochecknoglobals // shared palette
)

//nolint:gochecknoglobals // lipgloss styles are immutable values shared by every view
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(ColorHeader)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	EmissionStyle = lipgloss.NewStyle().Foreground(ColorEmission).Bold(true)

	UsageStyle = lipgloss.NewStyle().Foreground(ColorUsage).Bold(true)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorSpinner)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// DisableColor strips color from every style rendered after the call.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
