package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/eshaanmathakari/Datenschutz/internal/model"
)

type modelT struct {
	issues []model.Issue
	cursor int
}

func initialModel(issues []model.Issue) modelT { return modelT{issues: issues} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.issues)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issues (%d)  [j/k move, q quit]\n\n", len(m.issues))
	for i, issue := range m.issues {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s [%s] %s:%d %s\n", marker, issue.VulnerabilityType, issue.Severity, issue.FilePath, issue.Line, issue.Title)
	}
	if len(m.issues) > 0 && m.cursor < len(m.issues) {
		sel := m.issues[m.cursor]
		fmt.Fprintf(&b, "\n%s\nSuggestion: %s\n", sel.Description, sel.Suggestion)
		if sel.CWE != "" {
			fmt.Fprintf(&b, "%s | %s | risk %.1f\n", sel.CWE, sel.OWASP, sel.RiskScore)
		}
	}
	return b.String()
}

// Run launches a minimal TUI list view
func Run(issues []model.Issue) error {
	p := tea.NewProgram(initialModel(issues))
	_, err := p.Run()
	return err
}
