package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/colcalc/internal/compare"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [config-file]",
		Short: "Compare one scenario across cities",
		Long: `Price one scenario's items in several cities and compare the totals.

Examples:
  colcalc compare config.yaml --scenario frugal
  colcalc compare config.yaml --scenario frugal --base Lisbon --cities Brno,Milan --currency EUR
  colcalc compare config.yaml --scenario frugal --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priceFiles, _ := cmd.Flags().GetStringSlice("prices")
			cfg, err := loadConfig(args[0], priceFiles)
			if err != nil {
				return err
			}

			scenario, _ := cmd.Flags().GetString("scenario")
			if scenario == "" {
				return fmt.Errorf("--scenario flag is required to name the scenario to compare")
			}
			base, _ := cmd.Flags().GetString("base")
			cities, _ := cmd.Flags().GetStringSlice("cities")
			display, _ := cmd.Flags().GetString("currency")

			engine := compare.NewCompareEngine(newEngine(cmd, cfg))
			compSet, err := engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
				ScenarioName:    scenario,
				BaseCity:        base,
				Cities:          cities,
				DisplayCurrency: defaultCurrency(display),
			})
			if err != nil {
				return err
			}
			compSet.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch format {
			case "table", "console":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			case "json":
				data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().String("scenario", "", "Scenario to compare (required)")
	cmd.Flags().String("base", "", "Base city (default: the scenario's city)")
	cmd.Flags().StringSlice("cities", nil, "Cities to compare (default: every city with prices)")
	cmd.Flags().String("currency", "", "Display currency (default: $COLCALC_CURRENCY, then the scenario currency)")
	cmd.Flags().StringSlice("prices", nil, "Additional price book files to merge")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json")
	return cmd
}
