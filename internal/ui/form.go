package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/ui/components"
)

type formStatus int

const (
	formEditing formStatus = iota
	formSubmitted
	formCancelled
)

// Form edits one record through the kind's field table. It only returns
// formSubmitted once the record passes validation.
type Form[T any] struct {
	title  string
	kind   fleet.Kind[T]
	base   T
	inputs []textinput.Model
	focus  int
	err    string
	result T
}

func newForm[T any](title string, kind fleet.Kind[T], base T) *Form[T] {
	values := kind.Values(base)
	inputs := make([]textinput.Model, len(kind.Fields))
	for i, f := range kind.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 160
		ti.Placeholder = f.Label
		ti.SetValue(values[f.Key])
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return &Form[T]{title: title, kind: kind, base: base, inputs: inputs}
}

// Update handles one key. Navigation keys move focus; everything else goes
// to the focused input.
func (f *Form[T]) Update(msg tea.KeyMsg) (formStatus, tea.Cmd) {
	switch {
	case isBack(msg):
		return formCancelled, nil
	case isSave(msg):
		entity, err := f.Entity()
		if err != nil {
			f.err = err.Error()
			return formEditing, nil
		}
		f.err = ""
		f.result = entity
		return formSubmitted, nil
	case isNextField(msg):
		f.move(1)
		return formEditing, nil
	case isPrevField(msg):
		f.move(-1)
		return formEditing, nil
	}
	if len(f.inputs) == 0 {
		return formEditing, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formEditing, cmd
}

// Entity builds and validates the record from the current input values.
func (f *Form[T]) Entity() (T, error) {
	return f.kind.Build(f.base, f.Values())
}

// Result is the record accepted by the last successful save.
func (f *Form[T]) Result() T {
	return f.result
}

// Values returns the raw input text keyed by field.
func (f *Form[T]) Values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, field := range f.kind.Fields {
		out[field.Key] = f.inputs[i].Value()
	}
	return out
}

// SetValue replaces the text of one field.
func (f *Form[T]) SetValue(key, value string) bool {
	for i, field := range f.kind.Fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
			return true
		}
	}
	return false
}

func (f *Form[T]) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *Form[T]) View(width int) string {
	labelWidth := 0
	for _, field := range f.kind.Fields {
		if w := lipgloss.Width(field.Label) + 2; w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, field := range f.kind.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		label = lipgloss.NewStyle().Width(labelWidth + 1).Render(label)
		if i == f.focus {
			b.WriteString(SelectedStyle.Render("› "+label) + " " + f.inputs[i].View())
		} else {
			value := f.inputs[i].Value()
			if value == "" {
				value = MutedStyle.Render("-")
			}
			b.WriteString(MutedStyle.Render("  "+label) + " " + NormalStyle.Render(components.SanitizeOneLine(value)))
		}
		if i < len(f.kind.Fields)-1 {
			b.WriteString("\n")
		}
	}
	if f.err != "" {
		b.WriteString("\n\n" + ErrorStyle.Render(components.SanitizeOneLine(f.err)))
	}
	b.WriteString("\n\n" + MutedStyle.Render("tab: next | ctrl+s: save | esc: cancel"))
	return components.TitledBox(f.title, b.String(), width)
}
