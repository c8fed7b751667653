package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/fleetops/internal/config"
	"github.com/gravitrone/fleetops/internal/manage"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "fleetops", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(RecordCmds()...)
	root.AddCommand(StatusCmd(), ConfigureCmd())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func addedID(t *testing.T, out string) string {
	t.Helper()
	open := strings.LastIndex(out, "(")
	closing := strings.LastIndex(out, ")")
	require.True(t, open >= 0 && closing > open, "no id in %q", out)
	return out[open+1 : closing]
}

func TestListEmpty(t *testing.T) {
	withHome(t)
	out, _, err := run(t, "", "vehicles", "list")
	require.NoError(t, err)
	assert.Equal(t, "no vehicles found\n", out)
}

func TestAddListShowEditDelete(t *testing.T) {
	withHome(t)

	out, _, err := run(t, "", "vehicles", "add", "--set", "number=12", "--set", "make=Blue Bird", "--set", "year=2018")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "added vehicle Bus 12 Blue Bird ("))
	id := addedID(t, out)

	_, _, err = run(t, "", "vehicles", "add", "--set", "number=14", "--set", "make=Thomas")
	require.NoError(t, err)

	out, _, err = run(t, "", "vehicles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bus #")
	assert.Contains(t, out, "Blue Bird")
	assert.Contains(t, out, "Thomas")
	assert.Contains(t, out, "Unknown")

	out, _, err = run(t, "", "vehicles", "list", "--search", "thomas")
	require.NoError(t, err)
	assert.Contains(t, out, "Thomas")
	assert.NotContains(t, out, "Blue Bird")

	out, _, err = run(t, "", "vehicles", "list", "--search", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "no vehicles match \"zzz\"\n", out)

	out, _, err = run(t, "", "vehicles", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Bus 12 Blue Bird")
	assert.Contains(t, out, "2018")

	out, _, err = run(t, "", "vehicles", "edit", id, "--set", "model=Vision")
	require.NoError(t, err)
	assert.Equal(t, "updated vehicle "+id+"\n", out)
	out, _, err = run(t, "", "vehicles", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Vision")

	out, _, err = run(t, "n\n", "vehicles", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, `Delete vehicle "Bus 12 Blue Bird Vision"? [y/N]: `)
	assert.Contains(t, out, "cancelled")

	out, _, err = run(t, "y\n", "vehicles", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted vehicle "+id)

	out, _, err = run(t, "", "vehicles", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Blue Bird")
}

func TestDeleteYesSkipsPrompt(t *testing.T) {
	withHome(t)
	out, _, err := run(t, "", "drivers", "add", "--set", "name=Ana Ruiz")
	require.NoError(t, err)
	id := addedID(t, out)

	out, _, err = run(t, "", "drivers", "delete", id, "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "deleted driver "+id)
}

func TestAddValidation(t *testing.T) {
	withHome(t)

	_, _, err := run(t, "", "vehicles", "add", "--set", "make=Blue Bird")
	require.Error(t, err)
	assert.True(t, errors.Is(err, manage.ErrValidation))
	assert.Equal(t, "Number is required", err.Error())
	assert.False(t, IsReported(err))

	_, _, err = run(t, "", "vehicles", "add", "--set", "number=1", "--set", "odometer=5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")

	_, _, err = run(t, "", "vehicles", "add", "--set", "number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want key=value")

	_, _, err = run(t, "", "activities", "add", "--set", "type=Field trip", "--set", "destination=Zoo", "--set", "date=09/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date must be a date")
}

func TestEditRequiresChangesAndKnownID(t *testing.T) {
	withHome(t)

	_, _, err := run(t, "", "routes", "edit", "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, _, err = run(t, "", "routes", "edit", "r1", "--set", "name=North")
	require.Error(t, err)
	assert.Equal(t, `no route with id "r1"`, err.Error())

	_, _, err = run(t, "", "calendar", "show", "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calendar entry")
}

func TestStatusCountsRecords(t *testing.T) {
	withHome(t)
	_, _, err := run(t, "", "routes", "add", "--set", "name=North AM", "--set", "date=2024-09-03")
	require.NoError(t, err)

	out, _, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: sqlite")
	assert.Contains(t, out, "routes       1")
	assert.Contains(t, out, "vehicles     0")
	assert.Contains(t, out, "maintenance  0")
	assert.Contains(t, out, "timecards    0")
}

func TestConfigureMemoryBackend(t *testing.T) {
	withHome(t)

	out, _, err := run(t, "memory\n", "configure")
	require.NoError(t, err)
	assert.Contains(t, out, "using memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
}

func TestConfigureRejectsUnknownBackend(t *testing.T) {
	withHome(t)
	_, _, err := run(t, "postgres\n", "configure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestConfigureAPIChecksHealthAndLoadFailuresAreReported(t *testing.T) {
	withHome(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			w.Write([]byte(`{"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"DB","message":"database offline"}}`))
	}))
	t.Cleanup(srv.Close)

	out, _, err := run(t, "api\n"+srv.URL+"\nfleet_key\n", "configure")
	require.NoError(t, err)
	assert.Contains(t, out, "using api "+srv.URL)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "fleet_key", cfg.APIKey)

	_, stderr, err := run(t, "", "vehicles", "list")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.True(t, errors.Is(err, manage.ErrLoad))
	assert.Contains(t, stderr, "fleetops: Failed to load vehicles")
	assert.Contains(t, stderr, "database offline")
}

func TestParseSets(t *testing.T) {
	values, err := parseSets([]string{"a=1", " b =x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, values)

	_, err = parseSets([]string{"=1"})
	assert.Error(t, err)
}

func TestPromptYesNo(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, promptYesNo(strings.NewReader("YES\n"), &out, "Go?"))
	assert.False(t, promptYesNo(strings.NewReader("\n"), &out, "Go?"))
	assert.False(t, promptYesNo(strings.NewReader(""), &out, "Go?"))
	assert.Contains(t, out.String(), "Go? [y/N]: ")
}
