package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/colcalc/internal/calculation"
	"github.com/rgehrsitz/colcalc/internal/config"
	"github.com/rgehrsitz/colcalc/internal/domain"
	"github.com/rgehrsitz/colcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Environment variables read at startup, optionally from a .env file
const (
	envCurrency = "COLCALC_CURRENCY"
	envDataDir  = "COLCALC_DATA_DIR"
)

// slogLogger implements calculation.Logger on top of log/slog
type slogLogger struct {
	l *slog.Logger
}

func newSlogLogger(w io.Writer, debugMode bool) slogLogger {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	return slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "colcalc",
		Short:         "Cost of living and tax breakdown calculator",
		Long:          "Estimate monthly household budgets across cities and break down household income taxes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		budgetCmd(),
		changesCmd(),
		taxCmd(),
		compareCmd(),
		exploreCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine creates an engine for cfg logging to the command's error stream
func newEngine(cmd *cobra.Command, cfg *domain.Configuration) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithConfig(cfg)
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine.SetLogger(newSlogLogger(cmd.ErrOrStderr(), debugMode))
	return engine
}

// resolvePath finds an input file as given, or else under COLCALC_DATA_DIR
func resolvePath(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	if dir := os.Getenv(envDataDir); dir != "" {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// loadConfig parses a configuration file and merges any extra price book files
func loadConfig(path string, priceFiles []string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(resolvePath(path))
	if err != nil {
		return nil, err
	}
	for _, f := range priceFiles {
		if err := parser.LoadPriceBooks(resolvePath(f), cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// defaultCurrency returns flagValue, or COLCALC_CURRENCY when the flag is empty
func defaultCurrency(flagValue string) string {
	if flagValue != "" {
		return strings.ToUpper(flagValue)
	}
	return strings.ToUpper(os.Getenv(envCurrency))
}

// writeReport renders report with the named formatter to the command output, or to a
// timestamped file when save is set
func writeReport(cmd *cobra.Command, report *output.Report, format string, save bool) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)",
			format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	if save {
		filename, err := output.WriteFormatted(f, report, reportExtension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func reportExtension(formatter string) string {
	switch formatter {
	case "csv", "json", "html":
		return formatter
	}
	return "txt"
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
