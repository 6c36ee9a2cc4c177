package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/colcalc/internal/tui"
)

func exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [config-file]",
		Short: "Explore budget changes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := resolvePath(args[0])
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				return fmt.Errorf("config file not found: %s", configPath)
			}

			model := tui.NewModel(configPath)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running explorer: %w", err)
			}
			return nil
		},
	}
}
