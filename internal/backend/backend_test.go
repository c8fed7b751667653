package backend

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/fleetops/internal/api"
	"github.com/gravitrone/fleetops/internal/config"
	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/store"
)

func TestOpenSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.db")
	b, err := Open(&config.Config{Backend: config.BackendSQLite, DatabasePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	assert.Equal(t, config.BackendSQLite, b.Kind())
	assert.Equal(t, "sqlite "+path, b.Describe())
	require.NoError(t, b.Ping())

	repo, err := Repository(b, fleet.Vehicles())
	require.NoError(t, err)
	_, ok := repo.(*store.Table[fleet.Vehicle])
	assert.True(t, ok)

	id, err := repo.Add(fleet.Vehicle{Number: "7", Status: "active"})
	require.NoError(t, err)
	got, found, err := repo.GetByID(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "7", got.Number)
}

func TestOpenAPIBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	b, err := Open(&config.Config{Backend: config.BackendAPI, APIURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "api "+srv.URL, b.Describe())
	require.NoError(t, b.Ping())

	repo, err := Repository(b, fleet.Drivers())
	require.NoError(t, err)
	_, ok := repo.(*api.Resource[fleet.Driver])
	assert.True(t, ok)
	assert.NoError(t, b.Close())
}

func TestAPIBackendDefaultsURL(t *testing.T) {
	b, err := Open(&config.Config{Backend: config.BackendAPI})
	require.NoError(t, err)
	assert.Equal(t, "api "+api.DefaultBaseURL, b.Describe())
}

func TestMemoryBackendSharesStorePerKind(t *testing.T) {
	b := OpenMemory()

	first, err := Repository(b, fleet.Routes())
	require.NoError(t, err)
	_, err = first.Add(fleet.Route{Name: "North AM", Date: "2024-09-03"})
	require.NoError(t, err)

	second, err := Repository(b, fleet.Routes())
	require.NoError(t, err)
	all, err := second.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	other, err := Repository(b, fleet.Calendar())
	require.NoError(t, err)
	events, err := other.GetAll()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, "memory", b.Describe())
	assert.NoError(t, b.Ping())
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{Backend: "mongo"})
	assert.Error(t, err)
}
