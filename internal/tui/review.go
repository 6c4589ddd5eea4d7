package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prpkit/prpflow/internal/scaffold"
	"github.com/prpkit/prpflow/internal/state"
)

// ReviewModel shows the assembled plan and asks for confirmation
// before scaffolding the artifact layout.
type ReviewModel struct {
	run        *state.Run
	scaffolder *scaffold.Scaffolder
	archPack   string

	screen  Screen
	spinner spinner.Model
	outcome Outcome

	width  int
	height int
}

// NewReviewModel creates the review model for a planned run
func NewReviewModel(run *state.Run, scaffolder *scaffold.Scaffolder, archPack string) ReviewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReviewModel{
		run:        run,
		scaffolder: scaffolder,
		archPack:   archPack,
		screen:     ScreenReview,
		spinner:    s,
	}
}

// Init initializes the model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "n":
			if m.screen == ScreenReview {
				m.outcome.Confirmed = false
				return m, tea.Quit
			}
			if m.screen == ScreenComplete || m.screen == ScreenError {
				return m, tea.Quit
			}
		case "enter", "y":
			if m.screen == ScreenReview {
				m.screen = ScreenScaffolding
				m.outcome.Confirmed = true
				return m, tea.Batch(m.spinner.Tick, m.runScaffold())
			}
			if m.screen == ScreenComplete || m.screen == ScreenError {
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case scaffoldDoneMsg:
		m.outcome.Result = msg.result
		m.outcome.Err = msg.err
		if msg.err != nil {
			m.screen = ScreenError
		} else {
			m.screen = ScreenComplete
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// runScaffold materializes the artifacts off the update loop
func (m ReviewModel) runScaffold() tea.Cmd {
	run := m.run
	scaffolder := m.scaffolder
	archPack := m.archPack
	return func() tea.Msg {
		result, err := scaffolder.Materialize(run, archPack)
		return scaffoldDoneMsg{result: result, err: err}
	}
}

// View renders the model
func (m ReviewModel) View() string {
	switch m.screen {
	case ScreenReview:
		return m.viewReview()
	case ScreenScaffolding:
		return boxStyle.Render(m.spinner.View() + " Scaffolding artifacts...")
	case ScreenComplete:
		return m.viewComplete()
	case ScreenError:
		return m.viewError()
	}
	return ""
}

func (m ReviewModel) viewReview() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task Plan Review"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(TruncateString(m.run.FeatureText, 70)))
	b.WriteString("\n")
	b.WriteString(normalStyle.Render(fmt.Sprintf("Category: %s   Complexity: %s (score %d)",
		m.run.Feature.Category, m.run.Feature.ComplexityTier, m.run.Feature.ComplexityScore)))
	b.WriteString("\n")
	b.WriteString(normalStyle.Render("Stacks: " + strings.Join(m.run.StackIDs(), ", ")))
	b.WriteString("\n\n")

	for i, ph := range m.run.Plan.Phases {
		b.WriteString(phaseStyle.Render(fmt.Sprintf("Phase %d: %s (%s)", i+1, ph.Name, ph.Mode)))
		b.WriteString("\n")
		for _, a := range ph.Assignments {
			b.WriteString("  " + roleStyle.Render(string(a.Role)) + "\n")
			for _, task := range a.Tasks {
				b.WriteString(dimStyle.Render("    - "+task) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(normalStyle.Render("Artifacts to write:"))
	b.WriteString("\n")
	for _, p := range sortedDocPaths(m.run) {
		b.WriteString(dimStyle.Render("  "+p) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter/y scaffold   q/n abort"))

	return boxStyle.Render(b.String())
}

func (m ReviewModel) viewComplete() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scaffolded"))
	b.WriteString("\n")
	if m.outcome.Result != nil {
		b.WriteString(successStyle.Render(fmt.Sprintf("%d documents, %d prompts written under %s",
			len(m.outcome.Result.Documents), len(m.outcome.Result.Prompts), m.outcome.Result.FeatureDir)))
		b.WriteString("\n")
		if m.outcome.Result.CommitSHA != "" {
			b.WriteString(dimStyle.Render("Committed as " + m.outcome.Result.CommitSHA[:8]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press q to quit"))
	return boxStyle.Render(b.String())
}

func (m ReviewModel) viewError() string {
	errMsg := "Unknown error"
	if m.outcome.Err != nil {
		errMsg = m.outcome.Err.Error()
	}
	return boxStyle.Render(
		errorStyle.Render("Error") + "\n\n" +
			errMsg + "\n\n" +
			dimStyle.Render("Press q to quit"),
	)
}

// sortedDocPaths returns the run's document paths in stable order
func sortedDocPaths(run *state.Run) []string {
	var paths []string
	for _, p := range run.Layout.DocumentPaths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
