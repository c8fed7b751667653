package components

// List tracks a cursor over record keys and the window of rows that fits
// on screen.
type List struct {
	Items    []string
	Cursor   int
	Offset   int
	PageSize int
}

func NewList(pageSize int) *List {
	return &List{PageSize: pageSize}
}

// SetItems replaces the keys and rewinds to the first row.
func (l *List) SetItems(items []string) {
	l.Items = items
	l.Home()
}

// Home puts the cursor on the first row.
func (l *List) Home() {
	l.Cursor = 0
	l.Offset = 0
}

// End puts the cursor on the last row and scrolls it into view.
func (l *List) End() {
	if len(l.Items) == 0 {
		l.Home()
		return
	}
	l.Cursor = len(l.Items) - 1
	l.Offset = 0
	if l.PageSize > 0 && l.Cursor >= l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
}

func (l *List) Down() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Visible returns the keys inside the scroll window.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := l.Offset + l.PageSize
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.Offset:end]
}

func (l *List) Selected() int {
	return l.Cursor
}

func (l *List) IsSelected(absIdx int) bool {
	return absIdx == l.Cursor
}

// RelToAbs maps a window index to a row index.
func (l *List) RelToAbs(relIdx int) int {
	return l.Offset + relIdx
}
