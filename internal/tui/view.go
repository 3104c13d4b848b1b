package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	var content string
	switch m.currentScene {
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneSolve:
		content = m.solveModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentContainer := lipgloss.NewStyle().
		Height(max(1, m.height-4)).
		Render(content)

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("nestegg")
	breadcrumb := m.currentScene.String()
	if m.configPath != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.configPath)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", tuistyles.SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts, or the last
// error when there is one
func (m Model) renderStatusBar() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
	}

	shortcuts := []string{
		formatShortcut("tab", "parameters/solve"),
		formatShortcut("?", "help"),
		formatShortcut("esc", "back"),
		formatShortcut("q", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(max(0, m.width-2)).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	return tuistyles.BorderStyle.Render(fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.configPath))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
nestegg - retirement net worth projection

PARAMETERS:
  ↑/↓ or k/j   Select an input
  ←/→ or h/l   Adjust the selected input
  H/L          Adjust by ten steps
  r            Reset to the loaded inputs

SOLVE:
  enter        Edit the request ("variable" or "variable min max")
  tab          Complete a variable name while editing
  a            Apply the solved value to the inputs

GENERAL:
  tab          Switch between parameters and solve
  ?            Show this help
  esc          Go back
  q/ctrl+c     Quit

A plan is solvent when it still holds at least $1 at age 99.
`
	return tuistyles.BorderStyle.Render(helpText)
}
