package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter produces a standalone HTML page from the markdown report.
type HTMLFormatter struct {
	Currency string
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (h HTMLFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownToHTML.Convert([]byte(MarkdownReport(result, orDefaultCurrency(h.Currency))), &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	title := "Retirement Projection"
	if result.Name != "" {
		title += ": " + result.Name
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
