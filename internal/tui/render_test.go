package tui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/homeenergy/internal/energy"
)

func countPrefix(out, prefix, suffix string) int {
	n := 0
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) && strings.HasSuffix(l, suffix) {
			n++
		}
	}
	return n
}

func TestRender_Loading(t *testing.T) {
	assert.Equal(t, "Loading...\n", Render(LoadingState{}, RenderOptions{}))
}

func TestRender_Error(t *testing.T) {
	out := Render(ErrorState{Message: FetchFailedMessage}, RenderOptions{ShowSummary: true})
	assert.Equal(t, "Error: Failed to fetch data\n", out)
}

func TestRender_Loaded(t *testing.T) {
	state := LoadedState{
		Forecast: energy.EmissionForecast{2.5, 3.1},
		Usage:    energy.UsageSchedule{10, 12},
	}

	out := Render(state, RenderOptions{})

	want := strings.Join([]string{
		"Home Energy Management",
		"",
		"Forecasted Carbon Emissions",
		"Day 1: 2.5 kg CO2",
		"Day 2: 3.1 kg CO2",
		"",
		"Optimal Energy Usage Schedule",
		"Day 1: 10 kWh",
		"Day 2: 12 kWh",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRender_LineCountsMatchSeries(t *testing.T) {
	state := LoadedState{
		Forecast: energy.EmissionForecast{1, 2, 3, 4, 5},
		Usage:    energy.UsageSchedule{7},
	}

	for _, summary := range []bool{false, true} {
		out := Render(state, RenderOptions{ShowSummary: summary})
		assert.Equal(t, 5, countPrefix(out, "Day ", " kg CO2"))
		assert.Equal(t, 1, countPrefix(out, "Day ", " kWh"))
		assert.Contains(t, out, "Day 5: 5 kg CO2")
		assert.NotContains(t, out, "Day 0")
	}
}

func TestRender_EmptySeries(t *testing.T) {
	out := Render(LoadedState{Forecast: energy.EmissionForecast{}, Usage: energy.UsageSchedule{}}, RenderOptions{ShowSummary: true})

	assert.Contains(t, out, ForecastHeading)
	assert.Contains(t, out, UsageHeading)
	assert.NotContains(t, out, "Day ")
	assert.NotContains(t, out, "Total")
	assert.NotContains(t, out, "Error")
}

func TestRender_Summary(t *testing.T) {
	state := LoadedState{
		Forecast: energy.EmissionForecast{2.5, 3.1},
		Usage:    energy.UsageSchedule{10, 12},
	}

	out := Render(state, RenderOptions{ShowSummary: true})

	assert.Contains(t, out, "Total: 5.6 kg CO2")
	assert.Contains(t, out, "Equivalent to driving ~")
	assert.Contains(t, out, "Total: 22 kWh (~0.7 days of average home electricity)")
}

func TestRender_SummaryBelowThreshold(t *testing.T) {
	state := LoadedState{
		Forecast: energy.EmissionForecast{0.2, 0.3},
		Usage:    energy.UsageSchedule{1},
	}

	out := Render(state, RenderOptions{ShowSummary: true})

	assert.Contains(t, out, "Total: 0.5 kg CO2")
	assert.NotContains(t, out, "Equivalent to")
	assert.Contains(t, out, "Total: 1 kWh\n")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 2.5, want: "2.5"},
		{in: 10, want: "10"},
		{in: 0, want: "0"},
		{in: -1.25, want: "-1.25"},
		{in: 0.1 + 0.2, want: "0.30000000000000004"},
		{in: 123456789, want: "123456789"},
		{in: 1e21, want: "1e+21"},
		{in: 1.5e-7, want: "1.5e-7"},
		{in: 0.000001, want: "0.000001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestRenderStyled_KeepsText(t *testing.T) {
	DisableColor()
	state := LoadedState{
		Forecast: energy.EmissionForecast{2.5},
		Usage:    energy.UsageSchedule{10},
	}

	out := RenderStyled(state, RenderOptions{}, 80)

	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Day 1:")
	assert.Contains(t, out, "2.5 kg CO2")
	assert.Contains(t, out, "10 kWh")

	errOut := RenderStyled(ErrorState{Message: FetchFailedMessage}, RenderOptions{}, 80)
	assert.Contains(t, errOut, "Error: Failed to fetch data")
}

func TestRenderJSON(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderJSON(&buf, LoadedState{
			Forecast: energy.EmissionForecast{2.5, 3.1},
			Usage:    energy.UsageSchedule{10, 12},
		})
		require.NoError(t, err)

		var got map[string][]float64
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []float64{2.5, 3.1}, got["forecast"])
		assert.Equal(t, []float64{10, 12}, got["optimal_usage"])
	})

	t.Run("nil series encode as empty arrays", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderJSON(&buf, LoadedState{}))
		assert.JSONEq(t, `{"forecast":[],"optimal_usage":[]}`, buf.String())
	})

	t.Run("error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderJSON(&buf, ErrorState{Message: FetchFailedMessage}))
		assert.JSONEq(t, `{"error":"Failed to fetch data"}`, buf.String())
	})

	t.Run("loading", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, RenderJSON(&buf, LoadingState{}), ErrNotSettled)
		assert.Zero(t, buf.Len())
	})
}
