package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/ui/components"
)

const maxCellWidth = 40

// --- Grid ---

// textGrid is a GridView that renders to a writer once the command is done.
type textGrid struct {
	columns []manage.Column
	rows    []manage.Row
	enabled map[manage.Command]bool
}

func newTextGrid() *textGrid {
	return &textGrid{enabled: map[manage.Command]bool{}}
}

func (g *textGrid) SetColumns(columns []manage.Column) { g.columns = columns }
func (g *textGrid) SetRows(rows []manage.Row)          { g.rows = rows }
func (g *textGrid) ClearSelection()                    {}
func (g *textGrid) SetCommandEnabled(cmd manage.Command, enabled bool) {
	g.enabled[cmd] = enabled
}

// Render writes the grid sized to its content.
func (g *textGrid) Render(out io.Writer, emptyText string) {
	if len(g.rows) == 0 {
		fmt.Fprintln(out, emptyText)
		return
	}

	cols := make([]components.TableColumn, len(g.columns))
	cells := make([][]string, len(g.rows))
	for i, r := range g.rows {
		cells[i] = r.Cells(g.columns)
	}
	total := 2
	for i, c := range g.columns {
		w := lipgloss.Width(c.Header)
		for _, row := range cells {
			if cw := lipgloss.Width(components.SanitizeOneLine(row[i])); cw > w {
				w = cw
			}
		}
		if w > maxCellWidth {
			w = maxCellWidth
		}
		cols[i] = components.TableColumn{Header: c.Header, Width: w, Align: components.ColumnAlign(c.Numeric)}
		total += w
		if i > 0 {
			total++
		}
	}

	grid := components.TableGrid(cols, cells, total)
	for _, line := range strings.Split(grid, "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

// --- Reporter ---

// LogReporter writes controller failures and notices to a logger and detail
// summaries to out.
type LogReporter struct {
	logger *log.Logger
	out    io.Writer
}

// NewLogReporter logs to errOut with a "fleetops: " prefix.
func NewLogReporter(errOut, out io.Writer) *LogReporter {
	return &LogReporter{
		logger: log.New(errOut, "fleetops: ", 0),
		out:    out,
	}
}

func (r *LogReporter) Error(message string, cause error) {
	if cause != nil {
		r.logger.Printf("%s: %v", message, cause)
		return
	}
	r.logger.Print(message)
}

func (r *LogReporter) Info(message string) {
	r.logger.Print(message)
}

func (r *LogReporter) Details(title string, fields []manage.DetailField) {
	rows := make([]components.TableRow, len(fields))
	for i, f := range fields {
		rows[i] = components.TableRow{Label: f.Label, Value: f.Value}
	}
	fmt.Fprintln(r.out, components.Table(title, rows, 100))
}
