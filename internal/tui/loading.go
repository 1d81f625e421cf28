package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingState is the spinner shown while a page request is outstanding.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a LoadingState with message as its label.
func NewLoadingState(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return &LoadingState{spinner: s, message: message}
}

// Tick starts the spinner animation.
func (l *LoadingState) Tick() tea.Msg {
	return l.spinner.Tick()
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner followed by its label.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return ""
	}
	return loading.spinner.View() + " " + InfoStyle.Render(loading.message)
}
