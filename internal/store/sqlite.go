package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SQLite is an embedded database holding one table per entity type.
type SQLite struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
// Pass ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "fleetops.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Ping checks the database is reachable.
func (s *SQLite) Ping() error {
	return s.db.Ping()
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Table stores entities of one type as JSON payloads keyed by id.
type Table[T any] struct {
	store    *SQLite
	name     string
	identity Identity[T]
}

// NewTable creates the backing table if missing and returns a repository over it.
func NewTable[T any](s *SQLite, name string, identity Identity[T]) (*Table[T], error) {
	if !tableNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid table name %q", name)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`, name)
	if _, err := s.db.Exec(stmt); err != nil {
		return nil, fmt.Errorf("create %s table: %w", name, err)
	}
	return &Table[T]{store: s, name: name, identity: identity}, nil
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) GetAll() ([]T, error) {
	rows, err := t.store.db.Query(fmt.Sprintf(`SELECT payload FROM %s ORDER BY position, id`, t.name))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var entity T
		if err := json.Unmarshal(payload, &entity); err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.name, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.name, err)
	}
	return out, nil
}

func (t *Table[T]) GetByID(id string) (T, bool, error) {
	var zero T
	var payload []byte
	err := t.store.db.QueryRow(fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, t.name), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("select %s %s: %w", t.name, id, err)
	}
	var entity T
	if err := json.Unmarshal(payload, &entity); err != nil {
		return zero, false, fmt.Errorf("decode %s: %w", t.name, err)
	}
	return entity, true, nil
}

func (t *Table[T]) Add(entity T) (string, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	entity, id := t.identity.Assign(entity)
	payload, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", t.name, err)
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (id, position, payload, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM %s), ?, ?)`, t.name, t.name)
	if _, err := t.store.db.Exec(stmt, id, payload, now()); err != nil {
		return "", fmt.Errorf("insert %s: %w", t.name, err)
	}
	return id, nil
}

func (t *Table[T]) Update(entity T) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	id := t.identity.ID(entity)
	if id == "" {
		return false, nil
	}
	payload, err := json.Marshal(entity)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", t.name, err)
	}
	res, err := t.store.db.Exec(fmt.Sprintf(`UPDATE %s SET payload = ?, updated_at = ? WHERE id = ?`, t.name), payload, now(), id)
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", t.name, id, err)
	}
	return n > 0, nil
}

func (t *Table[T]) Delete(id string) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, err := t.store.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name), id); err != nil {
		return fmt.Errorf("delete %s %s: %w", t.name, id, err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
