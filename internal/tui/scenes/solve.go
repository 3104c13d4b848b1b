package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// SolveModel asks for a variable (and optionally a search range) and shows the value the
// bisection finds for it.
type SolveModel struct {
	input    textinput.Model
	result   *breakeven.SolveResult
	err      error
	solving  bool
	currency string
	width    int
	height   int
}

// NewSolveModel creates a new solve scene model
func NewSolveModel(currency string) *SolveModel {
	if currency == "" {
		currency = output.DefaultCurrency
	}
	ti := textinput.New()
	ti.Placeholder = "monthly_contribution [min max]"
	ti.CharLimit = 64
	ti.Width = 40
	ti.ShowSuggestions = true
	ti.SetSuggestions(transform.VariableNames())

	return &SolveModel{input: ti, currency: currency, width: 100, height: 30}
}

// Focus starts editing the request
func (m *SolveModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Editing reports whether keystrokes belong to the text input
func (m *SolveModel) Editing() bool {
	return m.input.Focused()
}

// Prefill replaces the request text, typically with the focused slider's variable
func (m *SolveModel) Prefill(variable string) {
	if m.input.Value() == "" {
		m.input.SetValue(variable)
		m.input.CursorEnd()
	}
}

// SetResult stores the outcome of a solve
func (m *SolveModel) SetResult(result *breakeven.SolveResult, err error) {
	m.solving = false
	m.result = result
	m.err = err
}

// SetSize updates the scene dimensions
func (m *SolveModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the solve scene
func (m *SolveModel) Update(msg tea.Msg) (*SolveModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			req, err := ParseSolveRequest(m.input.Value())
			if err != nil {
				m.err = err
				m.result = nil
				return m, nil
			}
			m.input.Blur()
			m.solving = true
			m.err = nil
			return m, func() tea.Msg { return req }
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "/"))):
		return m, m.input.Focus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		if m.result != nil && m.result.Found && m.result.AppliedValue != nil {
			apply := tuimsg.ApplySolutionMsg{Variable: m.result.Variable, Value: *m.result.AppliedValue}
			return m, func() tea.Msg { return apply }
		}
	}
	return m, nil
}

// ParseSolveRequest reads "variable" or "variable min max". Without a range the
// variable's default search bounds apply.
func ParseSolveRequest(text string) (tuimsg.SolveRequestedMsg, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return tuimsg.SolveRequestedMsg{}, fmt.Errorf("enter a variable name")
	}
	v, err := transform.LookupVariable(fields[0])
	if err != nil {
		return tuimsg.SolveRequestedMsg{}, err
	}

	req := tuimsg.SolveRequestedMsg{Variable: v.Name, Min: v.DefaultMin, Max: v.DefaultMax}
	switch len(fields) {
	case 1:
	case 3:
		if req.Min, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return tuimsg.SolveRequestedMsg{}, fmt.Errorf("invalid min %q", fields[1])
		}
		if req.Max, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return tuimsg.SolveRequestedMsg{}, fmt.Errorf("invalid max %q", fields[2])
		}
	default:
		return tuimsg.SolveRequestedMsg{}, fmt.Errorf("expected \"variable\" or \"variable min max\"")
	}
	return req, nil
}

// View renders the request prompt and the latest result
func (m *SolveModel) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.SubtitleStyle.Render("Solve for a variable"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.solving:
		b.WriteString(tuistyles.InfoStyle.Render("Solving..."))
	case m.err != nil:
		b.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	case m.result != nil:
		b.WriteString(m.renderResult())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderVariables())
	b.WriteString("\n")
	if m.input.Focused() {
		b.WriteString(tuistyles.HelpDescStyle.Render("enter solve • tab complete • esc stop editing"))
	} else {
		b.WriteString(tuistyles.HelpDescStyle.Render("enter edit • a apply result"))
	}
	return b.String()
}

func (m *SolveModel) renderResult() string {
	r := m.result
	v, err := transform.LookupVariable(r.Variable)
	if err != nil {
		return ""
	}
	if !r.Found || r.AppliedValue == nil {
		return tuistyles.MetricNegativeStyle.Render(fmt.Sprintf(
			"No solvent %s between %s and %s",
			v.Name,
			output.FormatVariable(r.SearchMin, v.Unit, m.currency),
			output.FormatVariable(r.SearchMax, v.Unit, m.currency),
		))
	}

	bound := "at least"
	if r.Direction == breakeven.FindHighest {
		bound = "at most"
	}
	lines := []string{
		tuistyles.MetricPositiveStyle.Render(fmt.Sprintf("%s: %s %s keeps the plan solvent",
			v.Description, bound, output.FormatVariable(*r.AppliedValue, v.Unit, m.currency))),
		tuistyles.MetricLabelStyle.Render(fmt.Sprintf("Net worth at 99: %s", output.FormatCurrency(r.NetWorthAt99, m.currency))),
		tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%d iterations, %s", r.Iterations, r.ConvergenceInfo)),
	}
	return tuistyles.BorderStyle.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *SolveModel) renderVariables() string {
	var rows []string
	for _, v := range transform.Variables() {
		rows = append(rows, fmt.Sprintf("%s %s",
			tuistyles.ParameterLabelStyle.Render(fmt.Sprintf("%-28s", v.Name)),
			tuistyles.HelpDescStyle.Render(fmt.Sprintf("%g to %g %s", v.DefaultMin, v.DefaultMax, v.Unit)),
		))
	}
	return strings.Join(rows, "\n")
}
