package manage

import (
	"errors"
	"fmt"
	"strings"
)

// --- State ---

// State is the controller's display state.
type State int

const (
	// StateEmpty means nothing has been loaded yet.
	StateEmpty State = iota
	// StateLoaded shows the full working list with no selection.
	StateLoaded
	// StateSelected shows the full working list with one row chosen.
	StateSelected
	// StateFiltered shows a search subset; a selection may or may not exist.
	StateFiltered
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateSelected:
		return "selected"
	case StateFiltered:
		return "filtered"
	}
	return "unknown"
}

var (
	errNoRepository   = errors.New("no repository configured")
	errNoDialog       = errors.New("no dialog configured")
	errNoRowsAffected = errors.New("no rows affected")
	errIdentity       = errors.New("dialog changed the record identity")
)

// --- Hooks ---

// Hooks is everything an entity type supplies to plug into a Controller.
// Key and Project are required; the rest have defaults.
type Hooks[T any, ID comparable] struct {
	// Title is the plural display name, e.g. "Vehicles".
	Title string
	// Noun is the singular name used in prompts, e.g. "vehicle".
	Noun string

	Columns []Column
	Key     func(T) ID
	// Project returns display values keyed by Column.Field. Blank values are
	// replaced with the unknown placeholder.
	Project func(T) map[string]string

	// SearchFields lists the text matched by the default search predicate.
	SearchFields func(T) []string
	// Match overrides the default search predicate.
	Match func(entity T, term string) bool

	Details  func(T) []DetailField
	Describe func(T) string

	// Load overrides Repository.GetAll as the source of the working list.
	Load func() ([]T, error)
}

// Options carries a controller's collaborators.
type Options[T any, ID comparable] struct {
	Repository Repository[T, ID]
	NewDialog  DialogFactory[T]
	// Confirm gates destructive commands. A nil Confirm declines.
	Confirm  func(prompt string) bool
	Reporter Reporter
	Grid     GridView

	Placeholder string
	Unknown     string
}

// --- Controller ---

// Controller drives the CRUD-over-grid lifecycle for one entity type.
//
// All methods must be called from the host's UI goroutine.
type Controller[T any, ID comparable] struct {
	hooks       Hooks[T, ID]
	repo        Repository[T, ID]
	newDialog   DialogFactory[T]
	confirm     func(string) bool
	reporter    Reporter
	grid        GridView
	placeholder string
	unknown     string

	loaded   bool
	items    []T
	visible  []T
	rows     []Row
	term     string
	filtered bool
	selected int
	draft    *T
	lastErr  error
}

// New builds a controller and declares its columns on the grid.
func New[T any, ID comparable](hooks Hooks[T, ID], opts Options[T, ID]) (*Controller[T, ID], error) {
	if hooks.Key == nil {
		return nil, fmt.Errorf("manage: hooks.Key is required")
	}
	if hooks.Project == nil {
		return nil, fmt.Errorf("manage: hooks.Project is required")
	}
	if opts.Grid == nil {
		return nil, fmt.Errorf("manage: options.Grid is required")
	}
	if hooks.Title == "" {
		hooks.Title = "Items"
	}
	if hooks.Noun == "" {
		hooks.Noun = "item"
	}
	if opts.Reporter == nil {
		opts.Reporter = discardReporter{}
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Unknown == "" {
		opts.Unknown = DefaultUnknown
	}

	c := &Controller[T, ID]{
		hooks:       hooks,
		repo:        opts.Repository,
		newDialog:   opts.NewDialog,
		confirm:     opts.Confirm,
		reporter:    opts.Reporter,
		grid:        opts.Grid,
		placeholder: opts.Placeholder,
		unknown:     opts.Unknown,
		items:       []T{},
		visible:     []T{},
		rows:        []Row{},
		selected:    -1,
	}
	c.grid.SetColumns(c.Columns())
	c.syncCommands()
	return c, nil
}

// --- Commands ---

// Refresh reloads the working list and re-projects every row.
// A failed load leaves an empty list and reports the failure.
func (c *Controller[T, ID]) Refresh() {
	c.lastErr = nil
	items, err := c.loadAll()
	if err != nil {
		c.fail(fmt.Sprintf("Failed to load %s", strings.ToLower(c.hooks.Title)), err)
		items = []T{}
	}
	c.items = items
	c.loaded = true
	c.term = ""
	c.filtered = false
	c.project(c.items)
}

// Add opens the create dialog and stores a committed entity.
//
// When the repository rejects the entity, it is kept as a draft and seeds the
// next create dialog so the user does not retype it.
func (c *Controller[T, ID]) Add() {
	c.lastErr = nil
	var seed *T
	if c.draft != nil {
		d := *c.draft
		seed = &d
	}
	out, ok := c.openDialog(seed)
	if !ok {
		return
	}
	if !out.Committed {
		c.draft = nil
		return
	}

	err := c.mutate("add", func() error {
		_, err := c.repo.Add(out.Entity)
		return err
	})
	if err != nil {
		d := out.Entity
		c.draft = &d
		c.fail(fmt.Sprintf("Failed to add %s", c.hooks.Noun), err)
		return
	}
	c.draft = nil
	c.Refresh()
}

// EditSelected opens the edit dialog for the selected entity and stores the
// committed result.
func (c *Controller[T, ID]) EditSelected() {
	c.lastErr = nil
	entity, ok := c.requireSelection("edit")
	if !ok {
		return
	}
	seed := entity
	out, ok := c.openDialog(&seed)
	if !ok || !out.Committed {
		return
	}
	if c.hooks.Key(out.Entity) != c.hooks.Key(entity) {
		c.fail(fmt.Sprintf("Failed to update %s", c.hooks.Noun), &Failure{Kind: MutationFailure, Op: "update", Err: errIdentity})
		return
	}

	err := c.mutate("update", func() error {
		affected, err := c.repo.Update(out.Entity)
		if err != nil {
			return err
		}
		if !affected {
			return errNoRowsAffected
		}
		return nil
	})
	if err != nil {
		c.fail(fmt.Sprintf("Failed to update %s", c.hooks.Noun), err)
		return
	}
	c.Refresh()
}

// DeleteSelected asks for confirmation and deletes the selected entity.
func (c *Controller[T, ID]) DeleteSelected() {
	c.lastErr = nil
	entity, ok := c.requireSelection("delete")
	if !ok {
		return
	}
	if c.confirm == nil || !c.confirm(c.DeletePrompt(entity)) {
		return
	}

	id := c.hooks.Key(entity)
	err := c.mutate("delete", func() error {
		return c.repo.Delete(id)
	})
	if err != nil {
		c.fail(fmt.Sprintf("Failed to delete %s", c.hooks.Noun), err)
		return
	}
	c.Refresh()
}

// ViewDetails presents the selected entity read-only.
func (c *Controller[T, ID]) ViewDetails() {
	c.lastErr = nil
	entity, ok := c.requireSelection("view")
	if !ok {
		return
	}
	c.reporter.Details(c.detailTitle(entity), c.detailFields(entity))
}

// Search narrows the displayed rows to entities matching term.
//
// A blank term, or one equal to the placeholder, performs a full Refresh.
// Otherwise the current working list is filtered without touching the
// repository, and the working list itself stays as loaded.
func (c *Controller[T, ID]) Search(term string) {
	if isBlankTerm(term, c.placeholder) {
		c.Refresh()
		return
	}
	c.lastErr = nil
	trimmed := strings.TrimSpace(term)
	matched := make([]T, 0, len(c.items))
	for _, e := range c.items {
		if c.matches(e, trimmed) {
			matched = append(matched, e)
		}
	}
	c.term = trimmed
	c.filtered = true
	c.project(matched)
}

// --- Selection ---

// Select marks a visible row as selected. An out-of-range row clears the
// selection.
func (c *Controller[T, ID]) Select(row int) {
	if !c.loaded || row < 0 || row >= len(c.visible) {
		c.selected = -1
	} else {
		c.selected = row
	}
	c.syncCommands()
}

// SelectKey selects the visible row whose entity has the given id.
func (c *Controller[T, ID]) SelectKey(id ID) bool {
	for i, e := range c.visible {
		if c.hooks.Key(e) == id {
			c.Select(i)
			return true
		}
	}
	c.Select(-1)
	return false
}

// ClearSelection drops the current selection and clears the grid highlight.
func (c *Controller[T, ID]) ClearSelection() {
	c.Select(-1)
	c.grid.ClearSelection()
}

// --- Observers ---

// State returns the display state.
func (c *Controller[T, ID]) State() State {
	switch {
	case !c.loaded:
		return StateEmpty
	case c.filtered:
		return StateFiltered
	case c.selected >= 0:
		return StateSelected
	default:
		return StateLoaded
	}
}

// HasSelection reports whether a row is selected.
func (c *Controller[T, ID]) HasSelection() bool {
	return c.selected >= 0
}

// SelectedRow returns the selected visible row index, or -1.
func (c *Controller[T, ID]) SelectedRow() int {
	return c.selected
}

// Selected resolves the selected row to its entity by identity.
func (c *Controller[T, ID]) Selected() (T, bool) {
	var zero T
	if c.selected < 0 || c.selected >= len(c.visible) {
		return zero, false
	}
	id := c.hooks.Key(c.visible[c.selected])
	if e, ok := c.lookup(id); ok {
		return e, true
	}
	return zero, false
}

// Enabled reports whether a command can run in the current state.
func (c *Controller[T, ID]) Enabled(cmd Command) bool {
	if cmd.RowScoped() {
		return c.HasSelection()
	}
	return true
}

// WorkingList returns a copy of the loaded entities.
func (c *Controller[T, ID]) WorkingList() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Visible returns a copy of the entities behind the displayed rows.
func (c *Controller[T, ID]) Visible() []T {
	out := make([]T, len(c.visible))
	copy(out, c.visible)
	return out
}

// Rows returns a copy of the displayed rows.
func (c *Controller[T, ID]) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Columns returns the declared grid columns.
func (c *Controller[T, ID]) Columns() []Column {
	out := make([]Column, len(c.hooks.Columns))
	copy(out, c.hooks.Columns)
	return out
}

// Term returns the active search term, empty when unfiltered.
func (c *Controller[T, ID]) Term() string {
	return c.term
}

// Title returns the plural display name.
func (c *Controller[T, ID]) Title() string {
	return c.hooks.Title
}

// Noun returns the singular display name.
func (c *Controller[T, ID]) Noun() string {
	return c.hooks.Noun
}

// Placeholder returns the search placeholder text.
func (c *Controller[T, ID]) Placeholder() string {
	return c.placeholder
}

// Draft returns the entity kept from a failed add, if any.
func (c *Controller[T, ID]) Draft() (T, bool) {
	if c.draft == nil {
		var zero T
		return zero, false
	}
	return *c.draft, true
}

// Err returns the failure reported by the most recent command, or nil.
func (c *Controller[T, ID]) Err() error {
	return c.lastErr
}

// DeletePrompt is the confirmation text shown before deleting entity.
func (c *Controller[T, ID]) DeletePrompt(entity T) string {
	label := ""
	if c.hooks.Describe != nil {
		label = strings.TrimSpace(c.hooks.Describe(entity))
	}
	if label == "" {
		label = fmt.Sprint(c.hooks.Key(entity))
	}
	return fmt.Sprintf("Delete %s %q?", c.hooks.Noun, label)
}

// --- Internals ---

func (c *Controller[T, ID]) loadAll() (items []T, err error) {
	load := c.hooks.Load
	if load == nil {
		if c.repo == nil {
			return nil, &Failure{Kind: LoadFailure, Op: "load", Err: errNoRepository}
		}
		load = c.repo.GetAll
	}
	err = guard(LoadFailure, "load", func() error {
		var loadErr error
		items, loadErr = load()
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Controller[T, ID]) mutate(op string, fn func() error) error {
	if c.repo == nil {
		return &Failure{Kind: MutationFailure, Op: op, Err: errNoRepository}
	}
	return guard(MutationFailure, op, fn)
}

func (c *Controller[T, ID]) openDialog(seed *T) (out Outcome[T], ok bool) {
	if c.newDialog == nil {
		c.fail(fmt.Sprintf("Cannot edit %s", c.hooks.Noun), errNoDialog)
		return out, false
	}
	err := guard(ValidationFailure, "dialog", func() error {
		dlg := c.newDialog(seed)
		if dlg == nil {
			return errNoDialog
		}
		out = dlg.Show()
		return nil
	})
	if err != nil {
		c.fail(fmt.Sprintf("Cannot edit %s", c.hooks.Noun), err)
		return out, false
	}
	return out, true
}

func (c *Controller[T, ID]) requireSelection(verb string) (T, bool) {
	if c.selected < 0 {
		var zero T
		c.reporter.Info(fmt.Sprintf("Select a %s to %s.", c.hooks.Noun, verb))
		return zero, false
	}
	entity, ok := c.Selected()
	if ok {
		return entity, true
	}

	// The row is no longer in the working list; ask the repository directly.
	id := c.hooks.Key(c.visible[c.selected])
	if c.repo == nil {
		c.fail(fmt.Sprintf("Failed to load %s", c.hooks.Noun), &Failure{Kind: LoadFailure, Op: "get", Err: errNoRepository})
		return entity, false
	}
	var found bool
	err := guard(LoadFailure, "get", func() error {
		var getErr error
		entity, found, getErr = c.repo.GetByID(id)
		return getErr
	})
	if err != nil {
		c.fail(fmt.Sprintf("Failed to load %s", c.hooks.Noun), err)
		return entity, false
	}
	if !found {
		c.reporter.Info(fmt.Sprintf("The selected %s no longer exists.", c.hooks.Noun))
		return entity, false
	}
	return entity, true
}

func (c *Controller[T, ID]) lookup(id ID) (T, bool) {
	for _, e := range c.items {
		if c.hooks.Key(e) == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T, ID]) project(list []T) {
	rows := make([]Row, len(list))
	for i, e := range list {
		rows[i] = c.projectRow(e)
	}
	c.visible = list
	c.rows = rows
	c.selected = -1
	c.grid.SetRows(c.Rows())
	c.grid.ClearSelection()
	c.syncCommands()
}

func (c *Controller[T, ID]) projectRow(e T) Row {
	projected := c.hooks.Project(e)
	values := make(map[string]string, len(c.hooks.Columns))
	for k, v := range projected {
		values[k] = v
	}
	for _, col := range c.hooks.Columns {
		values[col.Field] = OrUnknown(values[col.Field], c.unknown)
	}
	return Row{Key: fmt.Sprint(c.hooks.Key(e)), Values: values}
}

func (c *Controller[T, ID]) matches(e T, term string) bool {
	switch {
	case c.hooks.Match != nil:
		return c.hooks.Match(e, term)
	case c.hooks.SearchFields != nil:
		return MatchAny(term, c.hooks.SearchFields(e)...)
	default:
		// Raw projected text; the unknown placeholder is display-only.
		raw := Row{Values: c.hooks.Project(e)}
		return MatchAny(term, raw.Cells(c.hooks.Columns)...)
	}
}

func (c *Controller[T, ID]) detailTitle(e T) string {
	if c.hooks.Describe != nil {
		if label := strings.TrimSpace(c.hooks.Describe(e)); label != "" {
			return label
		}
	}
	return c.hooks.Title
}

func (c *Controller[T, ID]) detailFields(e T) []DetailField {
	var fields []DetailField
	if c.hooks.Details != nil {
		fields = c.hooks.Details(e)
	} else {
		row := c.projectRow(e)
		for _, col := range c.hooks.Columns {
			fields = append(fields, DetailField{Label: col.Header, Value: row.Values[col.Field]})
		}
	}
	for i := range fields {
		fields[i].Value = OrUnknown(fields[i].Value, c.unknown)
	}
	return fields
}

func (c *Controller[T, ID]) syncCommands() {
	for _, cmd := range Commands {
		c.grid.SetCommandEnabled(cmd, c.Enabled(cmd))
	}
}

func (c *Controller[T, ID]) fail(message string, err error) {
	c.lastErr = err
	c.reporter.Error(message, err)
}

// guard runs fn and converts both returned errors and panics into a Failure.
func guard(kind FailureKind, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Failure{Kind: kind, Op: op, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		var f *Failure
		if errors.As(err, &f) {
			return err
		}
		return &Failure{Kind: kind, Op: op, Err: err}
	}
	return nil
}
