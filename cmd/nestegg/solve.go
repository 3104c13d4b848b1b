package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

func solveCmd(a *app) *cobra.Command {
	var (
		variable  string
		searchMin float64
		searchMax float64
		all       bool
		format    string
		scenario  string
		sets      []string
	)
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find the value of one input that keeps the plan solvent through age 99",
		Long: `Bisect one input over [min, max] for the boundary at which net worth at age 99
stays positive. Spending is searched for the highest solvent value; every other input
for the lowest.

Without --variable the file's solve block supplies the variable and bounds. --all
solves every input over its default range.

Examples:
  nestegg solve plan.yaml --variable monthly_contribution --min 0 --max 20000
  nestegg solve plan.yaml --variable retirement_age
  nestegg solve plan.yaml --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			inputs, err := resolveInputs(cfg, scenario, sets)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(a.engine())
			jsonOut := output.NormalizeFormatName(firstNonEmpty(format, a.settings.OutputFormat)) == "json"
			out := cmd.OutOrStdout()

			if all {
				multi, err := solver.SolveAll(cmd.Context(), inputs)
				if err != nil {
					return err
				}
				if jsonOut {
					text, err := (&breakeven.JSONFormatter{Pretty: true}).FormatAll(multi)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, text)
					return nil
				}
				fmt.Fprint(out, breakeven.FormatResults(multi))
				return nil
			}

			req := breakeven.SolveRequest{Variable: variable, SearchMin: searchMin, SearchMax: searchMax, Base: inputs}
			switch {
			case variable == "" && cfg.Solve != nil:
				req.Variable, req.SearchMin, req.SearchMax = cfg.Solve.Variable, cfg.Solve.Min, cfg.Solve.Max
			case variable == "":
				return fmt.Errorf("--variable is required when the input file has no solve block (variables: %s)",
					strings.Join(transform.VariableNames(), ", "))
			case !cmd.Flags().Changed("min") || !cmd.Flags().Changed("max"):
				v, err := transform.LookupVariable(variable)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("min") {
					req.SearchMin = v.DefaultMin
				}
				if !cmd.Flags().Changed("max") {
					req.SearchMax = v.DefaultMax
				}
			}

			a.logger.Debugf("solving %s over [%g, %g]", req.Variable, req.SearchMin, req.SearchMax)
			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			fmt.Fprint(out, breakeven.FormatResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&variable, "variable", "", "Input to solve for")
	cmd.Flags().Float64Var(&searchMin, "min", 0, "Lower search bound (default: the variable's default range)")
	cmd.Flags().Float64Var(&searchMax, "max", 0, "Upper search bound (default: the variable's default range)")
	cmd.Flags().BoolVar(&all, "all", false, "Solve every input over its default range")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (console, json)")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Named scenario from the input file to use as the base")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override an input before solving (repeatable)")
	return cmd
}
