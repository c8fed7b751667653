package manage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trip struct {
	ID          int
	Type        string
	Destination string
	Date        string
}

type fakeRepo struct {
	items     []trip
	nextID    int
	getAllErr error
	addErr    error
	updateErr error
	deleteErr error
	updateOK  bool
	panicLoad bool

	getAllCalls int
	getCalls    int
	addCalls    int
	updateCalls int
	deleteCalls int
	deleted     []int
}

func newFakeRepo(items ...trip) *fakeRepo {
	return &fakeRepo{items: items, nextID: 100, updateOK: true}
}

func (r *fakeRepo) calls() int {
	return r.getAllCalls + r.getCalls + r.addCalls + r.updateCalls + r.deleteCalls
}

func (r *fakeRepo) GetAll() ([]trip, error) {
	r.getAllCalls++
	if r.panicLoad {
		panic("driver exploded")
	}
	if r.getAllErr != nil {
		return nil, r.getAllErr
	}
	out := make([]trip, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *fakeRepo) GetByID(id int) (trip, bool, error) {
	r.getCalls++
	for _, t := range r.items {
		if t.ID == id {
			return t, true, nil
		}
	}
	return trip{}, false, nil
}

func (r *fakeRepo) Add(t trip) (int, error) {
	r.addCalls++
	if r.addErr != nil {
		return 0, r.addErr
	}
	r.nextID++
	t.ID = r.nextID
	r.items = append(r.items, t)
	return t.ID, nil
}

func (r *fakeRepo) Update(t trip) (bool, error) {
	r.updateCalls++
	if r.updateErr != nil {
		return false, r.updateErr
	}
	if !r.updateOK {
		return false, nil
	}
	for i := range r.items {
		if r.items[i].ID == t.ID {
			r.items[i] = t
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Delete(id int) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	kept := r.items[:0]
	for _, t := range r.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.items = kept
	return nil
}

type fakeGrid struct {
	columns    []Column
	rows       []Row
	setRows    int
	clears     int
	enabled    map[Command]bool
	columnSets int
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{enabled: map[Command]bool{}}
}

func (g *fakeGrid) SetColumns(columns []Column) {
	g.columns = columns
	g.columnSets++
}
func (g *fakeGrid) SetRows(rows []Row) {
	g.rows = rows
	g.setRows++
}
func (g *fakeGrid) ClearSelection() { g.clears++ }
func (g *fakeGrid) SetCommandEnabled(cmd Command, enabled bool) {
	g.enabled[cmd] = enabled
}

func (g *fakeGrid) keys() []string {
	out := make([]string, len(g.rows))
	for i, r := range g.rows {
		out[i] = r.Key
	}
	return out
}

type fakeReporter struct {
	errors  []string
	causes  []error
	infos   []string
	details []DetailField
	title   string
}

func (r *fakeReporter) Error(msg string, cause error) {
	r.errors = append(r.errors, msg)
	r.causes = append(r.causes, cause)
}
func (r *fakeReporter) Info(msg string) { r.infos = append(r.infos, msg) }
func (r *fakeReporter) Details(title string, fields []DetailField) {
	r.title = title
	r.details = fields
}

func tripHooks() Hooks[trip, int] {
	return Hooks[trip, int]{
		Title: "Trips",
		Noun:  "trip",
		Columns: []Column{
			{Field: "type", Header: "Type", Width: 12},
			{Field: "destination", Header: "Destination", Width: 20},
			{Field: "date", Header: "Date", Width: 10},
		},
		Key: func(t trip) int { return t.ID },
		Project: func(t trip) map[string]string {
			return map[string]string{"type": t.Type, "destination": t.Destination, "date": t.Date}
		},
		SearchFields: func(t trip) []string { return []string{t.Type, t.Destination, t.Date} },
		Describe:     func(t trip) string { return t.Destination },
	}
}

type harness struct {
	ctrl     *Controller[trip, int]
	repo     *fakeRepo
	grid     *fakeGrid
	reporter *fakeReporter
	dialog   func(seed *trip) Outcome[trip]
	seeds    []*trip
	answer   bool
	prompts  []string
}

func newHarness(t *testing.T, repo *fakeRepo) *harness {
	t.Helper()
	h := &harness{repo: repo, grid: newFakeGrid(), reporter: &fakeReporter{}}
	h.dialog = func(*trip) Outcome[trip] { return Cancelled[trip]() }
	var r Repository[trip, int]
	if repo != nil {
		r = repo
	}
	ctrl, err := New(tripHooks(), Options[trip, int]{
		Repository: r,
		Grid:       h.grid,
		Reporter:   h.reporter,
		NewDialog: func(seed *trip) Dialog[trip] {
			h.seeds = append(h.seeds, seed)
			return DialogFunc[trip](func() Outcome[trip] { return h.dialog(seed) })
		},
		Confirm: func(prompt string) bool {
			h.prompts = append(h.prompts, prompt)
			return h.answer
		},
	})
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

func sampleTrips() []trip {
	return []trip{
		{ID: 1, Type: "Field Trip", Destination: "Zoo", Date: "2024-05-01"},
		{ID: 2, Type: "Sports", Destination: "Stadium", Date: "2024-05-03"},
		{ID: 3, Type: "Band", Destination: "", Date: "2024-06-11"},
	}
}

func TestNewRequiresKeyProjectAndGrid(t *testing.T) {
	grid := newFakeGrid()

	_, err := New(Hooks[trip, int]{Project: tripHooks().Project}, Options[trip, int]{Grid: grid})
	assert.Error(t, err)

	_, err = New(Hooks[trip, int]{Key: tripHooks().Key}, Options[trip, int]{Grid: grid})
	assert.Error(t, err)

	_, err = New(tripHooks(), Options[trip, int]{})
	assert.Error(t, err)
}

func TestNewDeclaresColumnsOnce(t *testing.T) {
	h := newHarness(t, newFakeRepo())
	assert.Equal(t, 1, h.grid.columnSets)
	assert.Len(t, h.grid.columns, 3)
	assert.Equal(t, StateEmpty, h.ctrl.State())
	assert.NotNil(t, h.ctrl.WorkingList())
	assert.Empty(t, h.ctrl.WorkingList())
}

func TestRefreshIsIdempotent(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))

	h.ctrl.Refresh()
	first := h.ctrl.WorkingList()
	firstRows := len(h.grid.rows)

	h.ctrl.Refresh()
	assert.Equal(t, first, h.ctrl.WorkingList())
	assert.Equal(t, firstRows, len(h.grid.rows))
	assert.Equal(t, 3, firstRows)
	assert.Equal(t, StateLoaded, h.ctrl.State())
}

func TestRefreshSubstitutesUnknownForBlankFields(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()

	require.Len(t, h.grid.rows, 3)
	assert.Equal(t, DefaultUnknown, h.grid.rows[2].Values["destination"])
	assert.Equal(t, "3", h.grid.rows[2].Key)
	assert.Equal(t, []string{"Band", "Unknown", "2024-06-11"}, h.grid.rows[2].Cells(h.grid.columns))
}

func TestSearchShowsSubsetOfRefresh(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()
	full := h.grid.keys()

	for _, term := range []string{"zoo", "2024", "s", "nothing-matches", "BAND"} {
		h.ctrl.Search(term)
		assert.Subset(t, full, h.grid.keys(), "term %q", term)
	}

	h.ctrl.Search("")
	assert.Equal(t, full, h.grid.keys())
	assert.Equal(t, StateLoaded, h.ctrl.State())
}

func TestSearchMatchesAnyDeclaredField(t *testing.T) {
	h := newHarness(t, newFakeRepo(trip{ID: 7, Type: "Field Trip", Destination: "Zoo"}))
	h.ctrl.Refresh()

	h.ctrl.Search("zoo")
	assert.Equal(t, []string{"7"}, h.grid.keys())

	h.ctrl.Search("field")
	assert.Equal(t, []string{"7"}, h.grid.keys())

	h.ctrl.Search("stadium")
	assert.Empty(t, h.grid.keys())
	assert.Equal(t, StateFiltered, h.ctrl.State())
}

func TestSearchFiltersWorkingListWithoutFetching(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	require.Equal(t, 1, repo.getAllCalls)

	h.ctrl.Search("zoo")
	assert.Equal(t, 1, repo.getAllCalls)
	assert.Len(t, h.ctrl.WorkingList(), 3)
	assert.Len(t, h.ctrl.Visible(), 1)
	assert.Equal(t, "zoo", h.ctrl.Term())
}

func TestSearchPlaceholderReloads(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Search("zoo")

	h.ctrl.Search("  search...  ")
	assert.Equal(t, 2, repo.getAllCalls)
	assert.Len(t, h.grid.rows, 3)
	assert.Equal(t, "", h.ctrl.Term())
	assert.Equal(t, StateLoaded, h.ctrl.State())
}

func TestSelectionGatesRowCommands(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()

	for _, cmd := range []Command{CommandEdit, CommandDelete, CommandDetails} {
		assert.False(t, h.ctrl.Enabled(cmd), cmd.String())
		assert.False(t, h.grid.enabled[cmd], cmd.String())
	}
	assert.True(t, h.grid.enabled[CommandAdd])
	assert.True(t, h.grid.enabled[CommandSearch])

	h.ctrl.Select(1)
	assert.Equal(t, StateSelected, h.ctrl.State())
	for _, cmd := range []Command{CommandEdit, CommandDelete, CommandDetails} {
		assert.True(t, h.ctrl.Enabled(cmd), cmd.String())
		assert.True(t, h.grid.enabled[cmd], cmd.String())
	}

	h.ctrl.Refresh()
	assert.Equal(t, StateLoaded, h.ctrl.State())
	for _, cmd := range []Command{CommandEdit, CommandDelete, CommandDetails} {
		assert.False(t, h.grid.enabled[cmd], cmd.String())
	}
}

func TestSelectOutOfRangeClears(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()
	h.ctrl.Select(0)
	require.True(t, h.ctrl.HasSelection())

	h.ctrl.Select(9)
	assert.False(t, h.ctrl.HasSelection())
	assert.Equal(t, -1, h.ctrl.SelectedRow())
}

func TestSelectionWithinFilterKeepsFilteredState(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()
	h.ctrl.Search("stadium")
	h.ctrl.Select(0)

	assert.Equal(t, StateFiltered, h.ctrl.State())
	assert.True(t, h.ctrl.Enabled(CommandEdit))
	selected, ok := h.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, selected.ID)
}

func TestDeleteDeclinedLeavesStateAlone(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(0)
	h.answer = false

	h.ctrl.DeleteSelected()

	assert.Empty(t, repo.deleted)
	assert.Len(t, h.ctrl.WorkingList(), 3)
	assert.Equal(t, 1, repo.getAllCalls)
	assert.True(t, h.ctrl.HasSelection())
	require.Len(t, h.prompts, 1)
	assert.Equal(t, `Delete trip "Zoo"?`, h.prompts[0])
}

func TestDeleteConfirmedDeletesOnceAndRefreshesOnce(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(1)
	h.answer = true

	h.ctrl.DeleteSelected()

	assert.Equal(t, []int{2}, repo.deleted)
	assert.Equal(t, 2, repo.getAllCalls)
	assert.Len(t, h.ctrl.WorkingList(), 2)
	assert.Equal(t, StateLoaded, h.ctrl.State())
	assert.NoError(t, h.ctrl.Err())
}

func TestDeleteResolvesByIdentityInsideFilter(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Search("band")
	h.ctrl.Select(0)
	h.answer = true

	h.ctrl.DeleteSelected()

	assert.Equal(t, []int{3}, repo.deleted)
}

func TestDeleteWithoutConfirmHookDeclines(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	ctrl, err := New(tripHooks(), Options[trip, int]{Repository: repo, Grid: newFakeGrid()})
	require.NoError(t, err)
	ctrl.Refresh()
	ctrl.Select(0)

	ctrl.DeleteSelected()
	assert.Empty(t, repo.deleted)
}

func TestLoadFailureIsIsolated(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.getAllErr = errors.New("database offline")
	h := newHarness(t, repo)

	assert.NotPanics(t, h.ctrl.Refresh)
	assert.Empty(t, h.ctrl.WorkingList())
	assert.NotNil(t, h.ctrl.WorkingList())
	require.Len(t, h.reporter.errors, 1)
	assert.Equal(t, "Failed to load trips", h.reporter.errors[0])
	assert.ErrorIs(t, h.reporter.causes[0], ErrLoad)
	assert.ErrorContains(t, h.ctrl.Err(), "database offline")

	repo.getAllErr = nil
	h.ctrl.Refresh()
	assert.Len(t, h.ctrl.WorkingList(), 3)
	assert.Len(t, h.grid.rows, 3)
	assert.NoError(t, h.ctrl.Err())
	assert.Len(t, h.reporter.errors, 1)
}

func TestLoadPanicIsRecovered(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.panicLoad = true
	h := newHarness(t, repo)

	assert.NotPanics(t, h.ctrl.Refresh)
	assert.Empty(t, h.ctrl.WorkingList())
	require.Len(t, h.reporter.errors, 1)
	assert.ErrorContains(t, h.reporter.causes[0], "driver exploded")
}

func TestNilRepositoryProducesEmptyList(t *testing.T) {
	h := newHarness(t, nil)

	h.ctrl.Refresh()
	assert.Empty(t, h.ctrl.WorkingList())
	assert.Equal(t, StateLoaded, h.ctrl.State())
	require.Len(t, h.reporter.errors, 1)
	assert.ErrorIs(t, h.ctrl.Err(), ErrLoad)
}

func TestEditWithoutSelectionIsANotice(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	before := repo.calls()

	h.ctrl.EditSelected()

	assert.Len(t, h.reporter.infos, 1)
	assert.Empty(t, h.reporter.errors)
	assert.Equal(t, before, repo.calls())
	assert.Empty(t, h.seeds)
}

func TestRowCommandsWithoutSelectionAreNotices(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	before := repo.calls()

	h.ctrl.DeleteSelected()
	h.ctrl.ViewDetails()

	assert.Len(t, h.reporter.infos, 2)
	assert.Empty(t, h.prompts)
	assert.Equal(t, before, repo.calls())
}

func TestAddCommittedStoresAndRefreshes(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.dialog = func(seed *trip) Outcome[trip] {
		return Committed(trip{Type: "Museum", Destination: "Science Center"})
	}

	h.ctrl.Add()

	require.Len(t, h.seeds, 1)
	assert.Nil(t, h.seeds[0])
	assert.Equal(t, 1, repo.addCalls)
	assert.Len(t, h.ctrl.WorkingList(), 4)
	assert.Equal(t, 2, repo.getAllCalls)
}

func TestAddCancelledDoesNothing(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()

	h.ctrl.Add()

	assert.Equal(t, 0, repo.addCalls)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestAddFailureKeepsDraftForRetry(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.addErr = errors.New("disk full")
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	entered := trip{Type: "Museum", Destination: "Science Center", Date: "2024-07-04"}
	h.dialog = func(seed *trip) Outcome[trip] {
		if seed != nil {
			return Committed(*seed)
		}
		return Committed(entered)
	}

	h.ctrl.Add()

	require.Len(t, h.reporter.errors, 1)
	assert.ErrorIs(t, h.reporter.causes[0], ErrMutation)
	assert.Len(t, h.ctrl.WorkingList(), 3)
	draft, ok := h.ctrl.Draft()
	require.True(t, ok)
	assert.Equal(t, entered, draft)

	repo.addErr = nil
	h.ctrl.Add()

	require.Len(t, h.seeds, 2)
	require.NotNil(t, h.seeds[1])
	assert.Equal(t, entered, *h.seeds[1])
	assert.Len(t, h.ctrl.WorkingList(), 4)
	_, ok = h.ctrl.Draft()
	assert.False(t, ok)
}

func TestEditCommittedUpdatesAndRefreshes(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(2)
	h.dialog = func(seed *trip) Outcome[trip] {
		edited := *seed
		edited.Destination = "Concert Hall"
		return Committed(edited)
	}

	h.ctrl.EditSelected()

	require.Len(t, h.seeds, 1)
	assert.Equal(t, 3, h.seeds[0].ID)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 2, repo.getAllCalls)
	assert.Equal(t, "Concert Hall", h.ctrl.WorkingList()[2].Destination)
	assert.False(t, h.ctrl.HasSelection())
}

func TestEditNoRowsAffectedIsAFailure(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.updateOK = false
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(0)
	h.dialog = func(seed *trip) Outcome[trip] { return Committed(*seed) }

	h.ctrl.EditSelected()

	require.Len(t, h.reporter.errors, 1)
	assert.ErrorIs(t, h.ctrl.Err(), ErrMutation)
	assert.Equal(t, 1, repo.getAllCalls)
	assert.True(t, h.ctrl.HasSelection())
}

func TestEditRejectsIdentityChange(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(0)
	h.dialog = func(seed *trip) Outcome[trip] {
		edited := *seed
		edited.ID = 42
		return Committed(edited)
	}

	h.ctrl.EditSelected()

	assert.Equal(t, 0, repo.updateCalls)
	assert.ErrorIs(t, h.ctrl.Err(), ErrMutation)
}

func TestViewDetailsReportsFields(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()
	h.ctrl.Select(2)

	h.ctrl.ViewDetails()

	assert.Equal(t, "Trips", h.reporter.title)
	assert.Equal(t, []DetailField{
		{Label: "Type", Value: "Band"},
		{Label: "Destination", Value: "Unknown"},
		{Label: "Date", Value: "2024-06-11"},
	}, h.reporter.details)
	assert.Equal(t, StateSelected, h.ctrl.State())
}

func TestSelectKeyFindsVisibleRow(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()

	assert.True(t, h.ctrl.SelectKey(3))
	assert.Equal(t, 2, h.ctrl.SelectedRow())
	assert.False(t, h.ctrl.SelectKey(99))
	assert.False(t, h.ctrl.HasSelection())
}

func TestClearSelectionClearsGridHighlight(t *testing.T) {
	h := newHarness(t, newFakeRepo(sampleTrips()...))
	h.ctrl.Refresh()
	h.ctrl.Select(1)
	before := h.grid.clears

	h.ctrl.ClearSelection()
	assert.Equal(t, before+1, h.grid.clears)
	assert.False(t, h.grid.enabled[CommandEdit])
	assert.Equal(t, StateLoaded, h.ctrl.State())
}

func TestDialogPanicIsReported(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.dialog = func(*trip) Outcome[trip] { panic("widget gone") }

	assert.NotPanics(t, h.ctrl.Add)
	assert.Len(t, h.reporter.errors, 1)
	assert.Equal(t, 0, repo.addCalls)
}

func TestCustomMatchOverridesFields(t *testing.T) {
	hooks := tripHooks()
	hooks.Match = func(t trip, term string) bool { return fmt.Sprint(t.ID) == term }
	ctrl, err := New(hooks, Options[trip, int]{Repository: newFakeRepo(sampleTrips()...), Grid: newFakeGrid()})
	require.NoError(t, err)
	ctrl.Refresh()

	ctrl.Search("2")
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "Sports", ctrl.Visible()[0].Type)
}

func TestSearchWithoutFieldsIgnoresUnknownPlaceholder(t *testing.T) {
	hooks := tripHooks()
	hooks.SearchFields = nil
	ctrl, err := New(hooks, Options[trip, int]{
		Repository: newFakeRepo(trip{ID: 3, Type: "Band", Date: "2024-06-11"}),
		Grid:       newFakeGrid(),
	})
	require.NoError(t, err)
	ctrl.Refresh()
	require.Equal(t, DefaultUnknown, ctrl.Rows()[0].Values["destination"])

	ctrl.Search("unknown")
	assert.Empty(t, ctrl.Visible())
	assert.Equal(t, StateFiltered, ctrl.State())

	ctrl.Search("band")
	assert.Len(t, ctrl.Visible(), 1)
}

func TestDeleteFailureLeavesListAndSelection(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.deleteErr = errors.New("locked")
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(1)
	h.answer = true

	h.ctrl.DeleteSelected()

	require.Len(t, h.reporter.errors, 1)
	assert.Equal(t, "Failed to delete trip", h.reporter.errors[0])
	assert.ErrorIs(t, h.ctrl.Err(), ErrMutation)
	assert.ErrorContains(t, h.ctrl.Err(), "locked")
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Equal(t, 1, repo.getAllCalls)
	assert.Len(t, h.ctrl.WorkingList(), 3)
	assert.True(t, h.ctrl.HasSelection())
	assert.Equal(t, 1, h.ctrl.SelectedRow())
}

func TestEditRepositoryErrorLeavesListAndSelection(t *testing.T) {
	repo := newFakeRepo(sampleTrips()...)
	repo.updateErr = errors.New("disk full")
	h := newHarness(t, repo)
	h.ctrl.Refresh()
	h.ctrl.Select(0)
	h.dialog = func(seed *trip) Outcome[trip] {
		edited := *seed
		edited.Destination = "Aquarium"
		return Committed(edited)
	}

	h.ctrl.EditSelected()

	require.Len(t, h.reporter.errors, 1)
	assert.Equal(t, "Failed to update trip", h.reporter.errors[0])
	assert.ErrorIs(t, h.ctrl.Err(), ErrMutation)
	assert.ErrorContains(t, h.ctrl.Err(), "disk full")
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 1, repo.getAllCalls)
	assert.Equal(t, "Zoo", h.ctrl.WorkingList()[0].Destination)
	assert.True(t, h.ctrl.HasSelection())
}
