package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// ParameterSlider edits one input variable within a range
type ParameterSlider struct {
	Variable    string // input variable name, e.g. "annual_return"
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // "dollars", "percent" or "years"
	Currency    string
	Width       int // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider for variable. The range widens to include value so
// loading a plan never clamps it.
func NewParameterSlider(variable, label string, value, min, max, step float64) *ParameterSlider {
	return &ParameterSlider{
		Variable: variable,
		Label:    label,
		Value:    value,
		Min:      math.Min(min, value),
		Max:      math.Max(max, value),
		Step:     step,
		Currency: output.DefaultCurrency,
		Width:    30,
	}
}

// WithUnit sets how values are displayed
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithCurrency sets the currency for dollar values
func (p *ParameterSlider) WithCurrency(currency string) *ParameterSlider {
	p.Currency = currency
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment raises the value by one step, stopping at Max. It reports whether the
// value changed.
func (p *ParameterSlider) Increment() bool {
	return p.move(p.Step)
}

// Decrement lowers the value by one step, stopping at Min. It reports whether the
// value changed.
func (p *ParameterSlider) Decrement() bool {
	return p.move(-p.Step)
}

func (p *ParameterSlider) move(delta float64) bool {
	old := p.Value
	next := p.Value + delta
	if p.Step > 0 {
		// Snap to the step grid so repeated presses do not accumulate drift.
		next = math.Round(next/p.Step) * p.Step
	}
	p.SetValue(next)
	return p.Value != old
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value float64) {
	p.Value = math.Max(p.Min, math.Min(p.Max, value))
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// FormatValue renders a value in the slider's unit
func (p *ParameterSlider) FormatValue(v float64) string {
	if p.Unit == "dollars" {
		// Whole units read better on a slider.
		v = math.Round(v)
	}
	return output.FormatVariable(v, p.Unit, p.Currency)
}

// Render returns the expanded slider: label, value, bar, range and hints
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	lines := []string{
		labelStyle.Render(p.Label) + "  " + valueStyle.Render(p.FormatValue(p.Value)),
		p.renderBar(p.Width),
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
			Render(p.FormatValue(p.Min) + "  ─  " + p.FormatValue(p.Max)),
	}
	if p.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}
	if p.IsFocused {
		lines = append(lines, tuistyles.InfoStyle.Render("← → adjust • ↑ ↓ select"))
	}
	return strings.Join(lines, "\n")
}

// RenderCompact returns a single-line version for unfocused sliders
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(24)
	valueStyle := tuistyles.ParameterValueStyle.Width(16)
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return labelStyle.Render(p.Label) + valueStyle.Render(p.FormatValue(p.Value)) + p.renderBar(12)
}

// renderBar draws the track with the thumb at the current position
func (p *ParameterSlider) renderBar(width int) string {
	if width < 1 {
		width = 1
	}
	pos := int(math.Round(float64(width-1) * p.Percentage()))
	pos = max(0, min(width-1, pos))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", width-1-pos)))
	bar.WriteString("]")
	return bar.String()
}
