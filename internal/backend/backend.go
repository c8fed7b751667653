// Package backend opens the record store selected by the config and hands out
// one repository per fleet record kind.
package backend

import (
	"fmt"
	"sync"

	"github.com/gravitrone/fleetops/internal/api"
	"github.com/gravitrone/fleetops/internal/config"
	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

// Backend is an open record store.
type Backend struct {
	kind   string
	db     *store.SQLite
	client *api.Client

	mu     sync.Mutex
	memory map[string]any
}

// Open connects to the backend named by cfg.
func Open(cfg *config.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Backend{kind: cfg.Backend, memory: map[string]any{}}
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		b.db = db
	case config.BackendAPI:
		if cfg.APIURL == "" {
			b.client = api.NewDefaultClient(cfg.APIKey)
		} else {
			b.client = api.NewClient(cfg.APIURL, cfg.APIKey)
		}
	}
	return b, nil
}

// OpenMemory returns a process-local backend. Records vanish on exit.
func OpenMemory() *Backend {
	return &Backend{kind: config.BackendMemory, memory: map[string]any{}}
}

// Kind returns the backend name: sqlite, api or memory.
func (b *Backend) Kind() string {
	return b.kind
}

// Describe returns a short human label, e.g. "sqlite /home/me/.fleetops/fleet.db".
func (b *Backend) Describe() string {
	switch {
	case b.db != nil:
		return "sqlite " + b.db.Path()
	case b.client != nil:
		return "api " + b.client.BaseURL()
	default:
		return "memory"
	}
}

// Ping checks the backend is reachable.
func (b *Backend) Ping() error {
	switch {
	case b.db != nil:
		return b.db.Ping()
	case b.client != nil:
		if _, err := b.client.Health(); err != nil {
			return fmt.Errorf("api health: %w", err)
		}
	}
	return nil
}

// Close releases the database handle, if any.
func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Repository returns the store for kind on backend b.
func Repository[T any](b *Backend, kind fleet.Kind[T]) (manage.Repository[T, string], error) {
	switch {
	case b.db != nil:
		table, err := store.NewTable(b.db, kind.Name, kind.Identity)
		if err != nil {
			return nil, fmt.Errorf("open %s table: %w", kind.Name, err)
		}
		return table, nil
	case b.client != nil:
		return api.NewResource(b.client, kind.Name, kind.Identity), nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.memory[kind.Name]; ok {
		mem, ok := existing.(*store.Memory[T])
		if !ok {
			return nil, fmt.Errorf("memory store %s holds a different record type", kind.Name)
		}
		return mem, nil
	}
	mem := store.NewMemory(kind.Identity)
	b.memory[kind.Name] = mem
	return mem, nil
}
