package manage

// Column declares one grid column. Numeric columns are right-aligned by hosts
// that can align.
type Column struct {
	Field   string
	Header  string
	Width   int
	Numeric bool
}

// Row is one projected grid row. Key is the entity identity rendered as
// text; Values is keyed by Column.Field.
type Row struct {
	Key    string
	Values map[string]string
}

// Cells returns the row values in column order.
func (r Row) Cells(columns []Column) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = r.Values[c.Field]
	}
	return cells
}

// Command is a host-facing action a controller gates.
type Command int

const (
	CommandAdd Command = iota
	CommandEdit
	CommandDelete
	CommandDetails
	CommandSearch
	CommandRefresh
)

// Commands lists every command in display order.
var Commands = []Command{CommandAdd, CommandEdit, CommandDelete, CommandDetails, CommandSearch, CommandRefresh}

func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandEdit:
		return "edit"
	case CommandDelete:
		return "delete"
	case CommandDetails:
		return "details"
	case CommandSearch:
		return "search"
	case CommandRefresh:
		return "refresh"
	}
	return "unknown"
}

// RowScoped reports whether the command needs a selected row.
func (c Command) RowScoped() bool {
	return c == CommandEdit || c == CommandDelete || c == CommandDetails
}

// GridView is the tabular display a controller projects rows into.
//
// Selection flows the other way: the host calls Controller.Select when the
// user picks a row. ClearSelection is called whenever rows are replaced.
type GridView interface {
	SetColumns(columns []Column)
	SetRows(rows []Row)
	ClearSelection()
	SetCommandEnabled(cmd Command, enabled bool)
}
