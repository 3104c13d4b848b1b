package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.CalculationResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.CalculationResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.CalculationResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                       { return ff.ID }

// WriteFormatted runs a formatter and writes output to timestamped file with extension.
func WriteFormatted(f Formatter, result *domain.CalculationResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("nestegg_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters lists every formatter, configured for a currency.
func builtInFormatters(currency string) []Formatter {
	return []Formatter{
		ConsoleFormatter{Currency: currency},
		CSVFormatter{},
		HTMLFormatter{Currency: currency},
		JSONFormatter{},
		MarkdownFormatter{Currency: currency},
		PrettyFormatter{Currency: currency},
	}
}

// GetFormatterByName fetches a registered formatter using the default currency.
func GetFormatterByName(name string) Formatter {
	f, err := NewFormatter(name, DefaultCurrency)
	if err != nil {
		return nil
	}
	return f
}

// NewFormatter returns the named formatter showing amounts in the given ISO currency.
func NewFormatter(name, currency string) (Formatter, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters(strings.ToUpper(currency)) {
		if f.Name() == n {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"md":          "markdown",
	"glamour":     "pretty",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	formatters := builtInFormatters(DefaultCurrency)
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
