// Package tui renders the home energy dashboard: a loading indicator while
// the forecast and usage series are fetched, then either the error view or
// the two day-by-day lists.
package tui

import "github.com/rshade/homeenergy/internal/energy"

// FetchFailedMessage is the only error text the dashboard ever shows. The
// underlying cause goes to the log.
const FetchFailedMessage = "Failed to fetch data"

// ViewState is one of LoadingState, ErrorState or LoadedState.
type ViewState interface {
	viewState()
}

// LoadingState is the initial state, held while a fetch is outstanding.
type LoadingState struct{}

// ErrorState is terminal for a fetch cycle.
type ErrorState struct {
	Message string
}

// LoadedState holds both series. Each may be empty, never partial.
type LoadedState struct {
	Forecast energy.EmissionForecast
	Usage    energy.UsageSchedule
}

func (LoadingState) viewState() {}
func (ErrorState) viewState()   {}
func (LoadedState) viewState()  {}

// StateFromResult maps the outcome of one fetch cycle onto a ViewState.
// Any error collapses into the fixed failure message.
func StateFromResult(d energy.Dashboard, err error) ViewState {
	if err != nil {
		return ErrorState{Message: FetchFailedMessage}
	}
	return LoadedState{Forecast: d.Forecast, Usage: d.Usage}
}

// StateName is used in logs.
func StateName(s ViewState) string {
	switch s.(type) {
	case LoadingState:
		return "loading"
	case ErrorState:
		return "error"
	case LoadedState:
		return "loaded"
	default:
		return "unknown"
	}
}
