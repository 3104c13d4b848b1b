package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/compare"
	"github.com/rgehrsitz/nestegg/internal/output"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

func compareCmd(a *app) *cobra.Command {
	var (
		with          string
		scenarios     string
		allScenarios  bool
		format        string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the base inputs against templates and named scenarios",
		Long: `Compare the base inputs against built-in what-if templates, ad-hoc transforms and
scenarios from the input file.

Examples:
  nestegg compare plan.yaml --with retire_later_5yr,low_returns
  nestegg compare plan.yaml --with adjust:annual_return=-1 --format csv
  nestegg compare plan.yaml --scenarios retire_at_55,big_spender
  nestegg compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listTemplates {
				registry := transform.CreateBuiltInTemplates()
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TEMPLATE\tDESCRIPTION")
				for _, name := range registry.List() {
					tmpl, _ := registry.Get(name)
					fmt.Fprintf(tw, "%s\t%s\n", tmpl.Name, tmpl.Description)
				}
				fmt.Fprintln(tw)
				fmt.Fprintf(tw, "Ad-hoc transforms: %s (e.g. adjust:annual_return=-1)\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return tw.Flush()
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}
			if with == "" && scenarios == "" && !allScenarios {
				return fmt.Errorf("nothing to compare: use --with, --scenarios or --all-scenarios")
			}

			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(a.engine()).Compare(cmd.Context(), cfg, compare.CompareOptions{
				Templates:    splitList(with),
				Scenarios:    splitList(scenarios),
				AllScenarios: allScenarios,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			switch output.NormalizeFormatName(firstNonEmpty(format, a.settings.OutputFormat)) {
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			case "json":
				text, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			default:
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Comma-separated templates or transforms to compare")
	cmd.Flags().StringVar(&scenarios, "scenarios", "", "Comma-separated scenario names from the input file")
	cmd.Flags().BoolVar(&allScenarios, "all-scenarios", false, "Compare every scenario in the input file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available scenario templates")
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
