package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingIndicator is the animated spinner shown beside LoadingText.
type LoadingIndicator struct {
	spinner spinner.Model
	message string
}

// NewLoadingIndicator returns a dot spinner with the standard loading text.
func NewLoadingIndicator() *LoadingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingIndicator{spinner: s, message: LoadingText}
}

// Init starts the spinner animation.
func (l *LoadingIndicator) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingIndicator) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line, or the bare text without one.
func RenderLoading(loading *LoadingIndicator) string {
	if loading == nil {
		return LoadingText
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
