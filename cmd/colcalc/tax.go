package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/colcalc/internal/config"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/output"
)

func taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax [report-file]",
		Short: "Break down a household tax report",
		Long: `Break down a household tax report into per-earner steps and household totals.

A configuration file supplies jurisdiction policies and the rate table needed to
render amounts in another currency.

Examples:
  colcalc tax report.yaml
  colcalc tax report.yaml --config config.yaml --currency USD
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			report, err := parser.LoadTaxReport(resolvePath(args[0]))
			if err != nil {
				return err
			}

			var cfg *domain.Configuration
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if cfg, err = loadConfig(path, nil); err != nil {
					return err
				}
			}

			display, _ := cmd.Flags().GetString("currency")
			summary, err := newEngine(cmd, cfg).RunTax(cfg, *report, defaultCurrency(display))
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return writeReport(cmd, output.NewTaxReport(summary), format, save)
		},
	}
	cmd.Flags().String("config", "", "Configuration file with jurisdiction policies and rates")
	cmd.Flags().String("currency", "", "Display currency (default: $COLCALC_CURRENCY, then the report currency)")
	cmd.Flags().StringP("format", "f", "console", "Output format")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file")
	return cmd
}
