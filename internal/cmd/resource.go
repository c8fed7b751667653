package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/fleetops/internal/backend"
	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/manage"
)

// RecordCmds returns one command group per fleet record kind.
func RecordCmds() []*cobra.Command {
	return []*cobra.Command{
		recordCmd(fleet.Activities(), "Scheduled field trips and other non-route activities"),
		recordCmd(fleet.Vehicles(), "Buses and service vehicles"),
		recordCmd(fleet.Drivers(), "Drivers and their licenses"),
		recordCmd(fleet.Routes(), "Daily route assignments and mileage"),
		recordCmd(fleet.Fuel(), "Fuel log of vehicle fill-ups"),
		recordCmd(fleet.Maintenance(), "Vehicle service and inspection history"),
		recordCmd(fleet.TimeCards(), "Driver time cards"),
		recordCmd(fleet.Calendar(), "School calendar entries that affect routing"),
	}
}

// session is one controller run against the configured backend.
type session[T any] struct {
	kind     fleet.Kind[T]
	backend  *backend.Backend
	ctrl     *manage.Controller[T, string]
	grid     *textGrid
	values   map[string]string
	buildErr error
	confirm  func(string) bool
}

func openSession[T any](c *cobra.Command, kind fleet.Kind[T]) (*session[T], error) {
	b, cfg, err := OpenBackend()
	if err != nil {
		return nil, err
	}
	repo, err := backend.Repository(b, kind)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	s := &session[T]{kind: kind, backend: b, grid: newTextGrid()}
	ctrl, err := manage.New(kind.Hooks, manage.Options[T, string]{
		Repository:  repo,
		NewDialog:   s.dialog,
		Confirm:     func(prompt string) bool { return s.confirm != nil && s.confirm(prompt) },
		Reporter:    NewLogReporter(c.ErrOrStderr(), c.OutOrStdout()),
		Grid:        s.grid,
		Placeholder: cfg.SearchPlaceholder,
		Unknown:     cfg.UnknownText,
	})
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

func (s *session[T]) Close() error {
	return s.backend.Close()
}

// dialog applies the --set values onto the seed record.
func (s *session[T]) dialog(seed *T) manage.Dialog[T] {
	return manage.DialogFunc[T](func() manage.Outcome[T] {
		var base T
		if seed != nil {
			base = *seed
		}
		entity, err := s.kind.Build(base, s.values)
		if err != nil {
			s.buildErr = err
			return manage.Cancelled[T]()
		}
		return manage.Committed(entity)
	})
}

// load refreshes the working list and fails if the load did.
func (s *session[T]) load() error {
	s.ctrl.Refresh()
	return s.result()
}

func (s *session[T]) result() error {
	if s.buildErr != nil {
		return s.buildErr
	}
	if err := s.ctrl.Err(); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

func (s *session[T]) selectID(id string) error {
	if err := s.load(); err != nil {
		return err
	}
	if !s.ctrl.SelectKey(strings.TrimSpace(id)) {
		return fmt.Errorf("no %s with id %q", s.ctrl.Noun(), id)
	}
	return nil
}

func (s *session[T]) describe(entity T) string {
	if s.kind.Hooks.Describe != nil {
		if label := strings.TrimSpace(s.kind.Hooks.Describe(entity)); label != "" {
			return label
		}
	}
	return s.kind.Identity.ID(entity)
}

func recordCmd[T any](kind fleet.Kind[T], short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.Name,
		Short: short,
	}
	cmd.AddCommand(recordListCmd(kind))
	cmd.AddCommand(recordShowCmd(kind))
	cmd.AddCommand(recordAddCmd(kind))
	cmd.AddCommand(recordEditCmd(kind))
	cmd.AddCommand(recordDeleteCmd(kind))
	return cmd
}

func recordListCmd[T any](kind fleet.Kind[T]) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind.Name,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := openSession(c, kind)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.load(); err != nil {
				return err
			}
			title := strings.ToLower(s.ctrl.Title())
			empty := fmt.Sprintf("no %s found", title)
			if strings.TrimSpace(search) != "" {
				s.ctrl.Search(search)
				if s.ctrl.State() == manage.StateFiltered {
					empty = fmt.Sprintf("no %s match %q", title, s.ctrl.Term())
				}
			}
			s.grid.Render(c.OutOrStdout(), empty)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show records containing this text")
	return cmd
}

func recordShowCmd[T any](kind fleet.Kind[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(c, kind)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.selectID(args[0]); err != nil {
				return err
			}
			s.ctrl.ViewDetails()
			return s.result()
		},
	}
}

func recordAddCmd[T any](kind fleet.Kind[T]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Long:  "Add a record. Fields: " + strings.Join(fleet.FieldKeys(kind.Fields), ", "),
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			s, err := openSession(c, kind)
			if err != nil {
				return err
			}
			defer s.Close()

			s.values = values
			if err := s.load(); err != nil {
				return err
			}
			before := len(s.ctrl.WorkingList())
			s.ctrl.Add()
			if err := s.result(); err != nil {
				return err
			}
			label := s.ctrl.Noun()
			if list := s.ctrl.WorkingList(); len(list) > before {
				added := list[len(list)-1]
				label = fmt.Sprintf("%s %s (%s)", s.ctrl.Noun(), s.describe(added), kind.Identity.ID(added))
			}
			fmt.Fprintf(c.OutOrStdout(), "added %s\n", label)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")
	return cmd
}

func recordEditCmd[T any](kind fleet.Kind[T]) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a record",
		Long:  "Change fields of a record. Fields: " + strings.Join(fleet.FieldKeys(kind.Fields), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return fmt.Errorf("nothing to change: pass at least one --set key=value")
			}
			s, err := openSession(c, kind)
			if err != nil {
				return err
			}
			defer s.Close()

			s.values = values
			if err := s.selectID(args[0]); err != nil {
				return err
			}
			s.ctrl.EditSelected()
			if err := s.result(); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "updated %s %s\n", s.ctrl.Noun(), args[0])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")
	return cmd
}

func recordDeleteCmd[T any](kind fleet.Kind[T]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := openSession(c, kind)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.selectID(args[0]); err != nil {
				return err
			}
			confirmed := false
			s.confirm = func(prompt string) bool {
				if yes {
					confirmed = true
					return true
				}
				confirmed = promptYesNo(c.InOrStdin(), c.OutOrStdout(), prompt)
				return confirmed
			}
			s.ctrl.DeleteSelected()
			if err := s.result(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(c.OutOrStdout(), "cancelled")
				return nil
			}
			fmt.Fprintf(c.OutOrStdout(), "deleted %s %s\n", s.ctrl.Noun(), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, raw := range sets {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", raw)
		}
		values[key] = value
	}
	return values, nil
}

func promptYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
