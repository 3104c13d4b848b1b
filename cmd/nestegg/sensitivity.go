package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

func sensitivityCmd(a *app) *cobra.Command {
	var (
		variable string
		rangeMin float64
		rangeMax float64
		steps    int
		format   string
		currency string
		scenario string
	)
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one input across a range and report how the outcome changes",
		Long: `Perform sensitivity analysis to test how robust a plan is to one input.

Without --variable the file's sensitivity block supplies the sweep.

Examples:
  nestegg sensitivity plan.yaml --variable annual_return --min 2 --max 12 --steps 11
  nestegg sensitivity plan.yaml --variable current_yearly_spending --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			inputs, err := resolveInputs(cfg, scenario, nil)
			if err != nil {
				return err
			}

			param := calculation.SensitivityParameter{Name: variable, Min: rangeMin, Max: rangeMax, Steps: steps}
			switch {
			case variable == "" && cfg.Sensitivity != nil:
				s := cfg.Sensitivity
				param = calculation.SensitivityParameter{Name: s.Variable, Min: s.Min, Max: s.Max, Steps: s.Steps}
			case variable == "":
				return fmt.Errorf("--variable is required when the input file has no sensitivity block")
			case !cmd.Flags().Changed("min") && !cmd.Flags().Changed("max"):
				v, err := transform.LookupVariable(variable)
				if err != nil {
					return err
				}
				param.Min, param.Max = v.DefaultMin, v.DefaultMax
			}

			analysis, err := calculation.NewSensitivityAnalyzer(a.engine()).AnalyzeSingleParameter(inputs, param)
			if err != nil {
				return err
			}

			code := strings.ToUpper(firstNonEmpty(currency, a.settings.Currency))
			if err := output.ValidateCurrency(code); err != nil {
				return err
			}
			formatter := output.NewSensitivityFormatter(firstNonEmpty(format, a.settings.OutputFormat), code)
			text, err := formatter.FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&variable, "variable", "", "Input to sweep")
	cmd.Flags().Float64Var(&rangeMin, "min", 0, "Start of the sweep (default: the variable's default range)")
	cmd.Flags().Float64Var(&rangeMax, "max", 0, "End of the sweep (default: the variable's default range)")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of evenly spaced values, including both ends")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (console, csv, json)")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code for amounts (default from settings)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Named scenario from the input file to use as the base")
	return cmd
}
