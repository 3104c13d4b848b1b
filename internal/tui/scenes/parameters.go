package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/rgehrsitz/nestegg/internal/tui/components"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// sliderSpec is the slider range for one input. Ranges are for comfortable editing; the
// engine accepts values outside them.
type sliderSpec struct {
	variable string
	label    string
	min      float64
	max      float64
	step     float64
}

var sliderSpecs = []sliderSpec{
	{"current_age", "Current Age", 18, 99, 1},
	{"retirement_age", "Retirement Age", 18, 100, 1},
	{"current_savings", "Current Savings", 0, 2_000_000, 5_000},
	{"monthly_contribution", "Monthly Contribution", 0, 10_000, 100},
	{"annual_return", "Annual Return", 0, 15, 0.25},
	{"inflation_rate", "Inflation", 0, 10, 0.1},
	{"contribution_increase_rate", "Contribution Increase", 0, 10, 0.5},
	{"current_yearly_spending", "Yearly Spending", 0, 300_000, 1_000},
	{"tax_rate", "Tax Rate", 0, 60, 1},
}

type parameterKeys struct {
	Up, Down, Left, Right, BigLeft, BigRight, Reset key.Binding
}

var paramKeys = parameterKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
	BigLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "decrease ×10")),
	BigRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "increase ×10")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
}

// ParametersModel edits the nine inputs and shows the resulting projection
type ParametersModel struct {
	inputs        domain.RetirementInputs
	sliders       []*components.ParameterSlider
	focusedSlider int
	result        *domain.CalculationResult
	currency      string
	width         int
	height        int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel(currency string) *ParametersModel {
	if currency == "" {
		currency = output.DefaultCurrency
	}
	return &ParametersModel{currency: currency, width: 100, height: 30}
}

// SetInputs rebuilds the sliders from inputs, keeping the focused slider
func (m *ParametersModel) SetInputs(in domain.RetirementInputs) {
	m.inputs = in
	m.sliders = m.sliders[:0]
	for i, spec := range sliderSpecs {
		v, err := transform.LookupVariable(spec.variable)
		if err != nil {
			continue
		}
		slider := components.NewParameterSlider(spec.variable, spec.label, v.Get(in), spec.min, spec.max, spec.step).
			WithUnit(v.Unit).
			WithCurrency(m.currency).
			WithDescription(v.Description).
			WithWidth(36)
		slider.SetFocused(i == m.focusedSlider)
		m.sliders = append(m.sliders, slider)
	}
}

// Inputs returns the inputs as currently edited
func (m *ParametersModel) Inputs() domain.RetirementInputs {
	return m.inputs
}

// SetResult stores the calculation to display
func (m *ParametersModel) SetResult(result *domain.CalculationResult) {
	m.result = result
}

// FocusedVariable returns the variable of the focused slider
func (m *ParametersModel) FocusedVariable() string {
	if m.focusedSlider < len(m.sliders) {
		return m.sliders[m.focusedSlider].Variable
	}
	return ""
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, paramKeys.Up):
		m.moveFocus(-1)
	case key.Matches(keyMsg, paramKeys.Down):
		m.moveFocus(1)
	case key.Matches(keyMsg, paramKeys.Left):
		return m, m.adjust(-1)
	case key.Matches(keyMsg, paramKeys.Right):
		return m, m.adjust(1)
	case key.Matches(keyMsg, paramKeys.BigLeft):
		return m, m.adjust(-10)
	case key.Matches(keyMsg, paramKeys.BigRight):
		return m, m.adjust(10)
	case key.Matches(keyMsg, paramKeys.Reset):
		return m, func() tea.Msg { return tuimsg.ResetInputsMsg{} }
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

// adjust moves the focused slider by steps and, when the value changed, emits the new
// inputs for recalculation
func (m *ParametersModel) adjust(steps int) tea.Cmd {
	slider := m.sliders[m.focusedSlider]
	changed := false
	for i := 0; i < abs(steps); i++ {
		if steps > 0 {
			changed = slider.Increment() || changed
		} else {
			changed = slider.Decrement() || changed
		}
	}
	if !changed {
		return nil
	}

	updated, err := transform.SetVariable(m.inputs, slider.Variable, slider.Value)
	if err != nil {
		return nil
	}
	m.inputs = updated
	return func() tea.Msg { return tuimsg.InputsChangedMsg{Inputs: updated} }
}

// View renders the sliders beside the summary cards and chart
func (m *ParametersModel) View() string {
	var rendered []string
	for i, slider := range m.sliders {
		if i == m.focusedSlider {
			rendered = append(rendered, "", slider.Render(), "")
		} else {
			rendered = append(rendered, slider.RenderCompact())
		}
	}
	left := tuistyles.BorderStyle.Padding(0, 1).Render(strings.Join(rendered, "\n"))

	right := m.renderResult(max(40, m.width-lipgloss.Width(left)-2))
	help := tuistyles.HelpDescStyle.Render("↑/↓ select • ←/→ adjust • H/L ×10 • r reset")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		help,
	)
}

func (m *ParametersModel) renderResult(width int) string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("Calculating...")
	}
	r := m.result

	outlook := components.NewMetricCard("Net Worth at 99", output.FormatCurrency(r.NetWorthAt99, m.currency))
	if r.DepletionAge != nil {
		outlook.WithNote(false, fmt.Sprintf("runs out at %d", *r.DepletionAge))
	} else if r.Solvent {
		outlook.WithNote(true, "money lasts")
	} else {
		outlook.WithNote(false, "not solvent")
	}

	cards := []*components.MetricCard{
		components.NewMetricCard(fmt.Sprintf("Savings at %d", r.EffectiveRetirementAge), output.FormatCurrency(r.Summary.TotalSavings, m.currency)),
		components.NewMetricCard("In Today's Money", output.FormatCurrency(r.Summary.RealTotalSavings, m.currency)),
		components.NewMetricCard("After-Tax Monthly", output.FormatCurrency(r.Summary.AfterTaxMonthlyIncome, m.currency)),
		outlook,
	}

	chart := components.NewNetWorthChart("Net Worth by Age", r.Projection.Ages(), r.Projection.Values()).
		WithRetirementAge(r.EffectiveRetirementAge).
		WithSize(width, max(6, m.height-16))

	return lipgloss.JoinVertical(lipgloss.Left, components.MetricGrid(cards, 2), chart.Render())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
