package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/output"
	"github.com/rgehrsitz/colcalc/internal/transform"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget [config-file]",
		Short: "Evaluate the monthly budget of configured scenarios",
		Long: `Evaluate the monthly budget of every configured scenario, or only the named ones.

Examples:
  colcalc budget config.yaml
  colcalc budget config.yaml --scenario frugal --city Brno
  colcalc budget config.yaml --scenario frugal --change food_low,housing_location_outer --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priceFiles, _ := cmd.Flags().GetStringSlice("prices")
			cfg, err := loadConfig(args[0], priceFiles)
			if err != nil {
				return err
			}

			names, _ := cmd.Flags().GetStringSlice("scenario")
			city, _ := cmd.Flags().GetString("city")
			extra, _ := cmd.Flags().GetStringSlice("change")
			scenarios, err := selectScenarios(cfg, names)
			if err != nil {
				return err
			}

			engine := newEngine(cmd, cfg)
			runs := make([]calculation.BudgetRun, 0, len(scenarios))
			for _, s := range scenarios {
				if city != "" {
					s.City = city
				}
				s.Changes = append(append([]string(nil), s.Changes...), extra...)
				run, err := engine.RunScenario(cfg, s)
				if err != nil {
					return err
				}
				runs = append(runs, run)
			}

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return writeReport(cmd, output.NewBudgetReport(runs...), format, save)
		},
	}
	cmd.Flags().StringSlice("scenario", nil, "Scenarios to evaluate (default: all)")
	cmd.Flags().String("city", "", "Evaluate every scenario in this city instead of its own")
	cmd.Flags().StringSlice("change", nil, "Extra changes applied after each scenario's own")
	cmd.Flags().StringSlice("prices", nil, "Additional price book files to merge")
	cmd.Flags().StringP("format", "f", "console", "Output format")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file")
	return cmd
}

// selectScenarios returns the named scenarios in the requested order, or all of them
func selectScenarios(cfg *domain.Configuration, names []string) ([]domain.BudgetScenario, error) {
	if len(names) == 0 {
		if len(cfg.Scenarios) == 0 {
			return nil, fmt.Errorf("configuration defines no scenarios")
		}
		return cfg.Scenarios, nil
	}
	out := make([]domain.BudgetScenario, 0, len(names))
	for _, name := range names {
		found := false
		for _, s := range cfg.Scenarios {
			if strings.EqualFold(s.Name, name) {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("scenario %q not found in configuration", name)
		}
	}
	return out, nil
}

func changesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "changes",
		Short: "List the available budget changes",
		Run: func(cmd *cobra.Command, args []string) {
			registry := transform.NewChangeRegistry(nil)
			for _, line := range registry.Describe() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}
