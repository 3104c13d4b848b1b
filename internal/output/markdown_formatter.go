package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// MarkdownFormatter emits the report as GitHub-flavored markdown.
type MarkdownFormatter struct {
	Currency string
}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	return []byte(MarkdownReport(result, orDefaultCurrency(m.Currency))), nil
}

// PrettyFormatter renders the markdown report for the terminal with glamour.
type PrettyFormatter struct {
	Currency string
	// Style is a glamour standard style ("dark", "light", "notty"...). Empty detects
	// the terminal background.
	Style    string
	WordWrap int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	wrap := p.WordWrap
	if wrap == 0 {
		wrap = 100
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if p.Style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(p.Style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(MarkdownReport(result, orDefaultCurrency(p.Currency)))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}

func orDefaultCurrency(code string) string {
	if code == "" {
		return DefaultCurrency
	}
	return code
}
