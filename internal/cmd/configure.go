package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/fleetops/internal/api"
	"github.com/gravitrone/fleetops/internal/backend"
	"github.com/gravitrone/fleetops/internal/config"
)

// RunInteractiveConfigure prompts for the backend settings, checks that the
// backend answers, and saves the config.
func RunInteractiveConfigure(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	current, err := config.LoadOrDefault()
	if err != nil {
		current = config.Default()
	}

	ask := func(label, fallback string) string {
		if fallback != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return fallback
		}
		return line
	}

	cfg := *current
	cfg.Backend = strings.ToLower(ask("backend (sqlite, api, memory)", current.Backend))
	switch cfg.Backend {
	case config.BackendSQLite:
		cfg.DatabasePath = ask("database path", current.DatabasePath)
	case config.BackendAPI:
		url := current.APIURL
		if url == "" {
			url = api.DefaultBaseURL
		}
		cfg.APIURL = ask("api url", url)
		cfg.APIKey = ask("api key", current.APIKey)
	case config.BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	b, err := backend.Open(&cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer b.Close()
	if err := b.Ping(); err != nil {
		return fmt.Errorf("backend check failed: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "using %s\n", b.Describe())
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// ConfigureCmd returns the `fleetops configure` command.
func ConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Choose where fleet records are stored",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveConfigure(c.InOrStdin(), c.OutOrStdout())
		},
	}
}
