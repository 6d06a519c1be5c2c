package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/homeenergy/internal/energy"
	"github.com/rshade/homeenergy/internal/greenops"
)

// Fixed dashboard text.
const (
	Title           = "Home Energy Management"
	ForecastHeading = "Forecasted Carbon Emissions"
	UsageHeading    = "Optimal Energy Usage Schedule"
	LoadingText     = "Loading..."

	unitEmissions = "kg CO2"
	unitUsage     = "kWh"

	// minBoxWidth is the narrowest terminal that still gets a border.
	minBoxWidth = 40
)

// ErrNotSettled is returned by RenderJSON for a dashboard still loading.
const ErrNotSettled = constError("dashboard has not finished loading")

type constError string

func (e constError) Error() string { return string(e) }

// RenderOptions tunes the loaded view.
type RenderOptions struct {
	// ShowSummary appends a total line, and an equivalency when one
	// applies, to each section.
	ShowSummary bool
}

type lineKind int

const (
	lineTitle lineKind = iota
	lineHeading
	lineEmission
	lineUsage
	lineTotal
	lineNote
	lineBlank
	lineError
	lineLoading
)

type line struct {
	kind lineKind
	text string
}

// Render returns the plain text form of state, one line per row.
func Render(state ViewState, opts RenderOptions) string {
	ls := buildLines(state, opts)
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.text)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStyled returns the same rows as Render with lipgloss styling. The
// loaded view is boxed when width allows.
func RenderStyled(state ViewState, opts RenderOptions, width int) string {
	ls := buildLines(state, opts)
	rows := make([]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, styleLine(l))
	}
	content := strings.Join(rows, "\n")

	if _, ok := state.(LoadedState); ok && width >= minBoxWidth {
		return BoxStyle.Width(width-BoxStyle.GetHorizontalFrameSize()).Render(content) + "\n"
	}
	return content + "\n"
}

func styleLine(l line) string {
	switch l.kind {
	case lineTitle:
		return TitleStyle.Render(l.text)
	case lineHeading:
		return HeaderStyle.Render(l.text)
	case lineEmission:
		return styleDay(l.text, EmissionStyle)
	case lineUsage:
		return styleDay(l.text, UsageStyle)
	case lineTotal:
		return ValueStyle.Render(l.text)
	case lineNote:
		return SubtleStyle.Render(l.text)
	case lineError:
		return CriticalStyle.Render(l.text)
	case lineLoading:
		return SpinnerStyle.Render(l.text)
	case lineBlank:
		return ""
	default:
		return l.text
	}
}

// styleDay renders "Day N:" as a label and the value with its unit.
func styleDay(text string, valueStyle lipgloss.Style) string {
	label, value, ok := strings.Cut(text, ": ")
	if !ok {
		return text
	}
	return LabelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func buildLines(state ViewState, opts RenderOptions) []line {
	switch s := state.(type) {
	case ErrorState:
		return []line{{kind: lineError, text: "Error: " + s.Message}}
	case LoadedState:
		return loadedLines(s, opts)
	default:
		return []line{{kind: lineLoading, text: LoadingText}}
	}
}

func loadedLines(s LoadedState, opts RenderOptions) []line {
	ls := make([]line, 0, len(s.Forecast)+len(s.Usage)+10)
	ls = append(ls,
		line{kind: lineTitle, text: Title},
		line{kind: lineBlank},
		line{kind: lineHeading, text: ForecastHeading},
	)
	for i, v := range s.Forecast {
		ls = append(ls, line{kind: lineEmission, text: dayLine(i, v, unitEmissions)})
	}
	if opts.ShowSummary {
		ls = append(ls, forecastSummary(s.Forecast)...)
	}

	ls = append(ls,
		line{kind: lineBlank},
		line{kind: lineHeading, text: UsageHeading},
	)
	for i, v := range s.Usage {
		ls = append(ls, line{kind: lineUsage, text: dayLine(i, v, unitUsage)})
	}
	if opts.ShowSummary {
		ls = append(ls, usageSummary(s.Usage)...)
	}
	return ls
}

func dayLine(i int, v float64, unit string) string {
	return fmt.Sprintf("Day %d: %s %s", i+1, FormatValue(v), unit)
}

func forecastSummary(f energy.EmissionForecast) []line {
	if len(f) == 0 {
		return nil
	}
	total := f.Total()
	ls := []line{{kind: lineTotal, text: fmt.Sprintf("Total: %s %s", formatTotal(total), unitEmissions)}}
	if eq, err := greenops.Calculate(total); err == nil && !eq.IsEmpty {
		ls = append(ls, line{kind: lineNote, text: eq.DisplayText})
	}
	return ls
}

func usageSummary(u energy.UsageSchedule) []line {
	if len(u) == 0 {
		return nil
	}
	total := u.Total()
	text := fmt.Sprintf("Total: %s %s", formatTotal(total), unitUsage)
	if days, ok, err := greenops.HomeDays(total); err == nil && ok {
		text += fmt.Sprintf(" (~%s %s)", days.FormattedValue, days.Label)
	}
	return []line{{kind: lineTotal, text: text}}
}

// formatTotal rounds away the float noise that summing introduces.
func formatTotal(v float64) string {
	const hundredths = 100
	return FormatValue(math.Round(v*hundredths) / hundredths)
}

// FormatValue prints v in shortest round-trip form: 2.5, 10,
// 0.30000000000000004. Very large and very small magnitudes use exponent
// notation without zero padding (1e+21, 1.5e-7).
func FormatValue(v float64) string {
	const (
		expUpper = 1e21
		expLower = 1e-6
	)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs < expUpper && abs >= expLower {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// jsonDashboard keeps empty series as [] rather than null.
type jsonDashboard struct {
	Forecast energy.EmissionForecast `json:"forecast"`
	Usage    energy.UsageSchedule    `json:"optimal_usage"`
}

type jsonError struct {
	Error string `json:"error"`
}

// RenderJSON writes the settled state as one JSON document.
func RenderJSON(w io.Writer, state ViewState) error {
	var doc any
	switch s := state.(type) {
	case LoadedState:
		d := jsonDashboard{Forecast: s.Forecast, Usage: s.Usage}
		if d.Forecast == nil {
			d.Forecast = energy.EmissionForecast{}
		}
		if d.Usage == nil {
			d.Usage = energy.UsageSchedule{}
		}
		doc = d
	case ErrorState:
		doc = jsonError{Error: s.Message}
	default:
		return ErrNotSettled
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}
	return nil
}
