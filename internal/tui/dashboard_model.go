package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/homeenergy/internal/energy"
	"github.com/rshade/homeenergy/internal/logging"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// DashboardFetcher runs one fetch cycle. It must honor ctx cancellation.
type DashboardFetcher func(ctx context.Context) (energy.Dashboard, error)

// Messages for DashboardModel.
type (
	dashboardLoadedMsg struct {
		dashboard energy.Dashboard
	}
	dashboardFailedMsg struct {
		err error
	}
)

// DashboardModel is the Bubble Tea model for the interactive dashboard. It
// starts in LoadingState and settles exactly once.
type DashboardModel struct {
	state   ViewState
	loading *LoadingIndicator
	opts    RenderOptions

	ctx      context.Context
	cancel   context.CancelFunc
	fetchCmd tea.Cmd
	err      error

	width    int
	height   int
	quitting bool

	logger zerolog.Logger
}

// NewDashboardModel creates a model that fetches with fetcher once started.
// Quitting cancels the context handed to fetcher.
func NewDashboardModel(ctx context.Context, fetcher DashboardFetcher, opts RenderOptions) *DashboardModel {
	ctx, cancel := context.WithCancel(ctx)
	m := &DashboardModel{
		state:   LoadingState{},
		loading: NewLoadingIndicator(),
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		width:   defaultWidth,
		height:  defaultHeight,
		logger:  logging.ComponentLogger(*logging.FromContext(ctx), "dashboard"),
	}
	m.fetchCmd = func() tea.Msg {
		d, err := fetcher(ctx)
		if err != nil {
			return dashboardFailedMsg{err: err}
		}
		return dashboardLoadedMsg{dashboard: d}
	}
	return m
}

// Init starts the spinner and the fetch.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd)
}

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case dashboardLoadedMsg:
		if _, ok := m.state.(LoadingState); !ok {
			return m, nil
		}
		m.settle(StateFromResult(msg.dashboard, nil))
		return m, nil

	case dashboardFailedMsg:
		if _, ok := m.state.(LoadingState); !ok {
			return m, nil
		}
		m.err = msg.err
		m.settle(StateFromResult(energy.Dashboard{}, msg.err))
		return m, nil
	}

	if _, ok := m.state.(LoadingState); ok {
		return m, m.loading.Update(msg)
	}
	return m, nil
}

func (m *DashboardModel) settle(next ViewState) {
	m.logger.Debug().
		Str("from", StateName(m.state)).
		Str("to", StateName(next)).
		Msg("dashboard state changed")
	m.state = next
}

// View renders the current state.
func (m *DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if _, ok := m.state.(LoadingState); ok {
		return RenderLoading(m.loading)
	}
	view := RenderStyled(m.state, m.opts, m.width)
	if _, ok := m.state.(ErrorState); ok {
		// The error view is the single error line.
		return view
	}
	return view + SubtleStyle.Render("q: quit") + "\n"
}

// State returns the current view state.
func (m *DashboardModel) State() ViewState {
	return m.state
}

// Err returns the fetch error behind an ErrorState, if any.
func (m *DashboardModel) Err() error {
	return m.err
}
