package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/fleetops/internal/cmd"
	"github.com/gravitrone/fleetops/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleetops",
		Short: "fleetops - fleet records for transportation offices",
		Long:  "fleetops: manage activities, vehicles, drivers, routes, fuel, maintenance, time cards, and the school calendar from a terminal UI or the command line.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.RecordCmds()...)
	root.AddCommand(cmd.StatusCmd())
	root.AddCommand(cmd.ConfigureCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("the terminal UI needs an interactive terminal; use a subcommand such as 'fleetops vehicles list'")
	}

	b, cfg, err := cmd.OpenBackend()
	if err != nil {
		return err
	}
	defer b.Close()

	app, err := ui.NewApp(b, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
