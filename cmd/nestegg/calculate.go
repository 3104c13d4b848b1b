package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// fileExtensions maps formatter names to the extension --save writes.
var fileExtensions = map[string]string{
	"console":  "txt",
	"csv":      "csv",
	"html":     "html",
	"json":     "json",
	"markdown": "md",
	"pretty":   "txt",
}

type calculateOptions struct {
	format   string
	currency string
	selector string
	scenario string
	sets     []string
	save     bool
}

func calculateCmd(a *app) *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the retirement summary and net worth projection",
		Long: `Calculate the summary at retirement and the yearly net worth projection.

Examples:
  nestegg calculate plan.yaml
  nestegg calculate plan.yaml --format markdown --set retirement_age=65
  nestegg calculate plan.yaml --scenario retire_at_55 --format json
  nestegg calculate plan.yaml --select '$.projection[?(@.age==65)].net_worth'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.calculate(args[0], opts.scenario, opts.sets)
			if err != nil {
				return err
			}

			if opts.selector != "" {
				doc, err := json.Marshal(result)
				if err != nil {
					return err
				}
				selected, err := output.SelectJSON(doc, opts.selector)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(selected))
				return nil
			}

			format := firstNonEmpty(opts.format, a.settings.OutputFormat)
			currency := firstNonEmpty(opts.currency, a.settings.Currency)
			formatter, err := output.NewFormatter(format, currency)
			if err != nil {
				return err
			}

			if opts.save {
				filename, err := output.WriteFormatted(formatter, result, fileExtensions[formatter.Name()])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVar(&opts.currency, "currency", "", "ISO currency code for amounts (default from settings)")
	cmd.Flags().StringVar(&opts.selector, "select", "", "JSONPath expression evaluated against the JSON result")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "Named scenario from the input file to calculate instead of the base inputs")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Override an input, e.g. --set retirement_age=65 (repeatable)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func projectCmd(a *app) *cobra.Command {
	var (
		currency string
		scenario string
		sets     []string
		step     int
	)
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Print the yearly net worth projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.calculate(args[0], scenario, sets)
			if err != nil {
				return err
			}
			code := strings.ToUpper(firstNonEmpty(currency, a.settings.Currency))
			if err := output.ValidateCurrency(code); err != nil {
				return err
			}
			output.WriteProjectionTable(cmd.OutOrStdout(), result, code, step)
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code for amounts (default from settings)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Named scenario from the input file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override an input, e.g. --set retirement_age=65 (repeatable)")
	cmd.Flags().IntVar(&step, "step", 1, "Print every Nth age (retirement, depletion and the end points are always shown)")
	return cmd
}

// calculate loads the file, applies the named scenario and the --set overrides in that
// order, and runs the engine.
func (a *app) calculate(path, scenario string, sets []string) (*domain.CalculationResult, error) {
	cfg, err := a.loadConfig(path)
	if err != nil {
		return nil, err
	}
	inputs, err := resolveInputs(cfg, scenario, sets)
	if err != nil {
		return nil, err
	}

	result, err := a.engine().Calculate(inputs)
	if err != nil {
		return nil, err
	}
	result.Name = scenario
	return result, nil
}

func resolveInputs(cfg *domain.Configuration, scenario string, sets []string) (domain.RetirementInputs, error) {
	var transforms []transform.InputTransform
	if scenario != "" {
		s, ok := cfg.FindScenario(scenario)
		if !ok {
			return domain.RetirementInputs{}, fmt.Errorf("scenario %s not found in configuration", scenario)
		}
		transforms = append(transforms, transform.ScenarioTransforms(s.Overrides)...)
	}
	for _, set := range sets {
		t, err := transform.ParseAssignment(set)
		if err != nil {
			return domain.RetirementInputs{}, err
		}
		transforms = append(transforms, t)
	}
	return transform.ApplyTransforms(cfg.Inputs, transforms...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
