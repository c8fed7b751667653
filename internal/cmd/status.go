package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gravitrone/fleetops/internal/backend"
	"github.com/gravitrone/fleetops/internal/fleet"
)

// StatusCmd returns the `fleetops status` command.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the backend and count records of each kind",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			b, _, err := OpenBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			out := c.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", b.Describe())
			if err := b.Ping(); err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, count := range []func() (string, int, error){
				func() (string, int, error) { return countRecords(b, fleet.Activities()) },
				func() (string, int, error) { return countRecords(b, fleet.Vehicles()) },
				func() (string, int, error) { return countRecords(b, fleet.Drivers()) },
				func() (string, int, error) { return countRecords(b, fleet.Routes()) },
				func() (string, int, error) { return countRecords(b, fleet.Fuel()) },
				func() (string, int, error) { return countRecords(b, fleet.Maintenance()) },
				func() (string, int, error) { return countRecords(b, fleet.TimeCards()) },
				func() (string, int, error) { return countRecords(b, fleet.Calendar()) },
			} {
				name, n, err := count()
				if err != nil {
					writeRow(tw, name, "error: "+err.Error())
					continue
				}
				writeRow(tw, name, fmt.Sprint(n))
			}
			return tw.Flush()
		},
	}
}

func countRecords[T any](b *backend.Backend, kind fleet.Kind[T]) (string, int, error) {
	repo, err := backend.Repository(b, kind)
	if err != nil {
		return kind.Name, 0, err
	}
	all, err := repo.GetAll()
	return kind.Name, len(all), err
}

func writeRow(w io.Writer, name, value string) {
	fmt.Fprintf(w, "  %s\t%s\n", name, value)
}
