package cmd

import (
	"errors"
	"fmt"

	"github.com/gravitrone/fleetops/internal/backend"
	"github.com/gravitrone/fleetops/internal/config"
)

// OpenBackend loads the config (or the defaults when none is saved) and opens
// the backend it names.
func OpenBackend() (*backend.Backend, *config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	b, err := backend.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	return b, cfg, nil
}

// reportedError marks a failure that the reporter already logged.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already written to stderr.
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}
