package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/ui/components"
)

// --- Messages ---

type refreshMsg struct{ tab string }
type clearToastMsg struct{ tab string }

type appToast struct {
	level string
	text  string
}

// tabModel is one record screen hosted by the App.
type tabModel interface {
	Name() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Hints() []string
	SetSize(width, height int)
	// Capturing reports whether keys are going to a text input.
	Capturing() bool
}

type manageView int

const (
	manageViewGrid manageView = iota
	manageViewSearch
	manageViewForm
	manageViewConfirm
	manageViewDetails
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

// ManageOptions tunes how a ManageModel presents its records.
type ManageOptions struct {
	Placeholder string
	Unknown     string
	VimKeys     bool
}

// ManageModel is the grid screen for one record kind. It is the controller's
// grid, reporter, dialog, and confirmation gate.
type ManageModel[T any] struct {
	kind fleet.Kind[T]
	ctrl *manage.Controller[T, string]
	vim  bool

	width  int
	height int

	view    manageView
	columns []manage.Column
	rows    []manage.Row
	enabled map[manage.Command]bool
	list    *components.List
	active  bool

	search textinput.Model

	form     *Form[T]
	formMode formMode
	outcome  manage.Outcome[T]

	confirmText   string
	confirmAnswer bool

	detailTitle string
	detailRows  []components.TableRow

	err   string
	toast *appToast
}

// NewManageModel wires a controller for kind over repo.
func NewManageModel[T any](kind fleet.Kind[T], repo manage.Repository[T, string], opts ManageOptions) (*ManageModel[T], error) {
	m := &ManageModel[T]{
		kind:    kind,
		vim:     opts.VimKeys,
		enabled: map[manage.Command]bool{},
		list:    components.NewList(10),
		rows:    []manage.Row{},
	}

	ctrl, err := manage.New(kind.Hooks, manage.Options[T, string]{
		Repository: repo,
		NewDialog: func(*T) manage.Dialog[T] {
			return manage.DialogFunc[T](func() manage.Outcome[T] { return m.outcome })
		},
		Confirm:     func(string) bool { return m.confirmAnswer },
		Reporter:    m,
		Grid:        m,
		Placeholder: opts.Placeholder,
		Unknown:     opts.Unknown,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind.Name, err)
	}
	m.ctrl = ctrl

	search := textinput.New()
	search.Prompt = ""
	search.CharLimit = 80
	search.Placeholder = ctrl.Placeholder()
	m.search = search
	return m, nil
}

func (m *ManageModel[T]) Name() string  { return m.kind.Name }
func (m *ManageModel[T]) Title() string { return m.ctrl.Title() }

// Controller exposes the underlying controller.
func (m *ManageModel[T]) Controller() *manage.Controller[T, string] {
	return m.ctrl
}

func (m *ManageModel[T]) Init() tea.Cmd {
	name := m.kind.Name
	return func() tea.Msg { return refreshMsg{tab: name} }
}

func (m *ManageModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	page := height - 24
	if page < 5 {
		page = 5
	}
	m.list.PageSize = page
}

func (m *ManageModel[T]) Capturing() bool {
	return m.view == manageViewSearch || m.view == manageViewForm
}

// --- GridView ---

func (m *ManageModel[T]) SetColumns(columns []manage.Column) {
	m.columns = columns
}

func (m *ManageModel[T]) SetRows(rows []manage.Row) {
	m.rows = rows
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	m.list.SetItems(keys)
	m.active = false
}

// ClearSelection drops the highlight and rewinds the cursor so the next
// arrow key starts from an end of the grid.
func (m *ManageModel[T]) ClearSelection() {
	m.active = false
	m.list.Home()
}

func (m *ManageModel[T]) SetCommandEnabled(cmd manage.Command, enabled bool) {
	m.enabled[cmd] = enabled
}

// --- Reporter ---

func (m *ManageModel[T]) Error(message string, cause error) {
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, causeText(cause))
	}
	m.err = message
}

func (m *ManageModel[T]) Info(message string) {
	m.toast = &appToast{level: "info", text: components.SanitizeOneLine(message)}
}

func (m *ManageModel[T]) Details(title string, fields []manage.DetailField) {
	m.detailTitle = title
	m.detailRows = make([]components.TableRow, len(fields))
	for i, f := range fields {
		m.detailRows[i] = components.TableRow{Label: f.Label, Value: f.Value}
	}
	m.view = manageViewDetails
}

func causeText(err error) string {
	var failure *manage.Failure
	if errors.As(err, &failure) && failure.Err != nil {
		return failure.Err.Error()
	}
	return err.Error()
}

// --- Update ---

func (m *ManageModel[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshMsg:
		m.err = ""
		m.ctrl.Refresh()
		return m.toastCmd()
	case clearToastMsg:
		m.toast = nil
		return nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.view {
		case manageViewSearch:
			cmd = m.handleSearchKeys(msg)
		case manageViewForm:
			cmd = m.handleFormKeys(msg)
		case manageViewConfirm:
			m.handleConfirmKeys(msg)
		case manageViewDetails:
			if isBack(msg) || isEnter(msg) {
				m.view = manageViewGrid
			}
		default:
			m.handleGridKeys(msg)
		}
		return tea.Batch(cmd, m.toastCmd())
	}
	return nil
}

func (m *ManageModel[T]) handleGridKeys(msg tea.KeyMsg) {
	switch {
	case isUp(msg) || (m.vim && isKey(msg, "k")):
		m.move(-1)
	case isDown(msg) || (m.vim && isKey(msg, "j")):
		m.move(1)
	case isBack(msg):
		if m.active {
			m.ctrl.ClearSelection()
		} else if m.ctrl.State() == manage.StateFiltered {
			m.err = ""
			m.ctrl.Search("")
		}
	case isKey(msg, "/"):
		m.search.SetValue(m.ctrl.Term())
		m.search.CursorEnd()
		m.search.Focus()
		m.view = manageViewSearch
	case isKey(msg, "r", "ctrl+r"):
		m.err = ""
		m.ctrl.Refresh()
	case isKey(msg, "a"):
		m.err = ""
		m.openAdd()
	case isKey(msg, "e"):
		m.err = ""
		m.openEdit()
	case isKey(msg, "d"):
		m.err = ""
		m.openConfirm()
	case isEnter(msg):
		m.err = ""
		m.ctrl.ViewDetails()
	}
}

func (m *ManageModel[T]) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	if !m.active {
		m.active = true
		if delta < 0 {
			m.list.End()
		}
	} else if delta > 0 {
		m.list.Down()
	} else {
		m.list.Up()
	}
	m.ctrl.Select(m.list.Selected())
}

func (m *ManageModel[T]) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case isBack(msg):
		m.search.Blur()
		m.view = manageViewGrid
		return nil
	case isEnter(msg):
		m.search.Blur()
		m.view = manageViewGrid
		m.err = ""
		m.ctrl.Search(m.search.Value())
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *ManageModel[T]) openAdd() {
	if !m.enabled[manage.CommandAdd] {
		return
	}
	var base T
	if draft, ok := m.ctrl.Draft(); ok {
		base = draft
	}
	m.form = newForm("New "+m.ctrl.Noun(), m.kind, base)
	m.formMode = formAdd
	m.view = manageViewForm
}

func (m *ManageModel[T]) openEdit() {
	entity, ok := m.ctrl.Selected()
	if !m.enabled[manage.CommandEdit] || !ok {
		// Let the controller report why editing is unavailable.
		m.outcome = manage.Cancelled[T]()
		m.ctrl.EditSelected()
		return
	}
	m.form = newForm("Edit "+m.ctrl.Noun(), m.kind, entity)
	m.formMode = formEdit
	m.view = manageViewForm
}

func (m *ManageModel[T]) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	status, cmd := m.form.Update(msg)
	switch status {
	case formSubmitted:
		m.outcome = manage.Committed(m.form.Result())
	case formCancelled:
		m.outcome = manage.Cancelled[T]()
	default:
		return cmd
	}

	m.view = manageViewGrid
	m.form = nil
	if m.formMode == formAdd {
		m.ctrl.Add()
	} else {
		m.ctrl.EditSelected()
	}
	m.outcome = manage.Cancelled[T]()
	return cmd
}

func (m *ManageModel[T]) openConfirm() {
	entity, ok := m.ctrl.Selected()
	if !m.enabled[manage.CommandDelete] || !ok {
		m.confirmAnswer = false
		m.ctrl.DeleteSelected()
		return
	}
	m.confirmText = m.ctrl.DeletePrompt(entity)
	m.view = manageViewConfirm
}

func (m *ManageModel[T]) handleConfirmKeys(msg tea.KeyMsg) {
	switch {
	case isKey(msg, "y"):
		m.confirmAnswer = true
	case isKey(msg, "n") || isBack(msg):
		m.confirmAnswer = false
	default:
		return
	}
	m.view = manageViewGrid
	m.ctrl.DeleteSelected()
	m.confirmAnswer = false
}

func (m *ManageModel[T]) toastCmd() tea.Cmd {
	if m.toast == nil {
		return nil
	}
	name := m.kind.Name
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{tab: name}
	})
}

// --- View ---

func (m *ManageModel[T]) View() string {
	var content string
	switch m.view {
	case manageViewSearch:
		content = components.InputDialog("Search "+strings.ToLower(m.ctrl.Title()), m.search.Value())
	case manageViewForm:
		content = m.form.View(m.width)
	case manageViewConfirm:
		content = components.ConfirmDialog("Delete "+m.ctrl.Noun(), m.confirmText)
	case manageViewDetails:
		content = components.Table(m.detailTitle, m.detailRows, m.width)
	default:
		content = m.renderGrid()
	}

	if m.err != "" {
		content += "\n\n" + components.ErrorBox("Error", components.SanitizeOneLine(m.err), m.width)
	} else if m.toast != nil {
		content += "\n\n" + components.TitledBox("Info", m.toast.text, m.width)
	}
	return content
}

func (m *ManageModel[T]) renderGrid() string {
	title := m.ctrl.Title()
	if len(m.rows) == 0 {
		text := fmt.Sprintf("No %s found.", strings.ToLower(title))
		if m.ctrl.State() == manage.StateFiltered {
			text = fmt.Sprintf("No %s match %q.", strings.ToLower(title), m.ctrl.Term())
		}
		return components.TitledBox(title, MutedStyle.Render(text), m.width)
	}

	cols := make([]components.TableColumn, len(m.columns))
	for i, c := range m.columns {
		cols[i] = components.TableColumn{Header: c.Header, Width: c.Width, Align: components.ColumnAlign(c.Numeric)}
	}

	visible := m.list.Visible()
	cells := make([][]string, 0, len(visible))
	activeRow := -1
	for i := range visible {
		abs := m.list.RelToAbs(i)
		if m.active && m.list.IsSelected(abs) {
			activeRow = i
		}
		cells = append(cells, m.rows[abs].Cells(m.columns))
	}

	countLine := fmt.Sprintf("%d total", len(m.ctrl.WorkingList()))
	if m.ctrl.State() == manage.StateFiltered {
		countLine = fmt.Sprintf("%s · %d shown · search: %s", countLine, len(m.rows), m.ctrl.Term())
	}
	if m.active {
		countLine = fmt.Sprintf("%s · row %d", countLine, m.list.Selected()+1)
	}

	grid := components.TableGridWithActiveRow(cols, cells, components.BoxContentWidth(m.width), activeRow)
	return components.TitledBox(title, MutedStyle.Render(countLine)+"\n\n"+grid, m.width)
}

// Hints lists the keys that do something right now.
func (m *ManageModel[T]) Hints() []string {
	switch m.view {
	case manageViewSearch:
		return components.Hints("enter", "Search", "esc", "Cancel")
	case manageViewForm:
		return components.Hints("tab", "Next", "ctrl+s", "Save", "esc", "Cancel")
	case manageViewConfirm:
		return components.Hints("y", "Confirm", "n", "Cancel")
	case manageViewDetails:
		return components.Hints("esc", "Back")
	}

	hints := []string{components.Hint("↑/↓", "Select")}
	if m.enabled[manage.CommandAdd] {
		hints = append(hints, components.Hint("a", "Add"))
	}
	if m.enabled[manage.CommandEdit] {
		hints = append(hints, components.Hint("e", "Edit"))
	}
	if m.enabled[manage.CommandDelete] {
		hints = append(hints, components.Hint("d", "Delete"))
	}
	if m.enabled[manage.CommandDetails] {
		hints = append(hints, components.Hint("enter", "Details"))
	}
	if m.enabled[manage.CommandSearch] {
		hints = append(hints, components.Hint("/", "Search"))
	}
	if m.enabled[manage.CommandRefresh] {
		hints = append(hints, components.Hint("r", "Refresh"))
	}
	return hints
}
