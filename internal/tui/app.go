package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prpkit/prpflow/internal/scaffold"
	"github.com/prpkit/prpflow/internal/state"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)
)

// Screen represents different screens in the TUI
type Screen int

const (
	ScreenReview Screen = iota
	ScreenScaffolding
	ScreenComplete
	ScreenError
)

// Outcome reports what the user decided and what happened
type Outcome struct {
	Confirmed bool
	Result    *scaffold.Result
	Err       error
}

// scaffoldDoneMsg carries the scaffolding result back into the model
type scaffoldDoneMsg struct {
	result *scaffold.Result
	err    error
}

// Run shows the plan review screen and, on confirmation, scaffolds
// the run's artifacts. The returned outcome says whether the user
// confirmed and whether scaffolding succeeded.
func Run(run *state.Run, scaffolder *scaffold.Scaffolder, archPack string) (Outcome, error) {
	m := NewReviewModel(run, scaffolder, archPack)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}

	fm, ok := final.(ReviewModel)
	if !ok {
		return Outcome{}, nil
	}
	return fm.outcome, nil
}

// TruncateString truncates a string to maxLen
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
