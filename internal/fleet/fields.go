// Package fleet defines the fleet-operations record types and the hooks that
// plug each of them into a management controller.
package fleet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gravitrone/fleetops/internal/manage"
	"github.com/gravitrone/fleetops/internal/store"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Field is one editable attribute of T, shared by the TUI form and the CLI
// --set flags.
type Field[T any] struct {
	Key      string
	Label    string
	Required bool
	Get      func(T) string
	Set      func(*T, string) error
}

// Kind bundles everything a host needs to manage one record type.
type Kind[T any] struct {
	// Name is the table, command, and endpoint name, e.g. "vehicles".
	Name     string
	Hooks    manage.Hooks[T, string]
	Fields   []Field[T]
	Identity store.Identity[T]
	Validate func(T) error
}

// Apply sets the named fields on entity. Unknown keys are an error.
func Apply[T any](entity T, fields []Field[T], values map[string]string) (T, error) {
	byKey := make(map[string]Field[T], len(fields))
	for _, f := range fields {
		byKey[f.Key] = f
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := byKey[k]
		if !ok {
			return entity, manage.Validationf("unknown field %q (known: %s)", k, strings.Join(FieldKeys(fields), ", "))
		}
		if err := f.Set(&entity, values[k]); err != nil {
			return entity, err
		}
	}
	return entity, nil
}

// Build applies values onto base and validates the result.
func (k Kind[T]) Build(base T, values map[string]string) (T, error) {
	entity, err := Apply(base, k.Fields, values)
	if err != nil {
		return entity, err
	}
	if k.Validate != nil {
		return entity, k.Validate(entity)
	}
	return entity, Check(entity, k.Fields, nil)
}

// Values returns the current text of every field, keyed by field key.
func (k Kind[T]) Values(entity T) map[string]string {
	out := make(map[string]string, len(k.Fields))
	for _, f := range k.Fields {
		out[f.Key] = f.Get(entity)
	}
	return out
}

// FieldKeys lists the keys of fields in order.
func FieldKeys[T any](fields []Field[T]) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// Check validates required fields and then runs validate.
func Check[T any](entity T, fields []Field[T], validate func(T) error) error {
	for _, f := range fields {
		if f.Required && strings.TrimSpace(f.Get(entity)) == "" {
			return manage.Validationf("%s is required", f.Label)
		}
	}
	if validate != nil {
		return validate(entity)
	}
	return nil
}

// --- field builders ---

func textField[T any](key, label string, required bool, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Key:      key,
		Label:    label,
		Required: required,
		Get:      func(e T) string { return *ptr(&e) },
		Set: func(e *T, v string) error {
			*ptr(e) = strings.TrimSpace(v)
			return nil
		},
	}
}

func dateField[T any](key, label string, required bool, ptr func(*T) *string) Field[T] {
	f := textField(key, label, required, ptr)
	f.Set = func(e *T, v string) error {
		v = strings.TrimSpace(v)
		if v != "" {
			if _, err := time.Parse(DateLayout, v); err != nil {
				return manage.Validationf("%s must be a date like 2024-09-03", label)
			}
		}
		*ptr(e) = v
		return nil
	}
	return f
}

func clockField[T any](key, label string, ptr func(*T) *string) Field[T] {
	f := textField(key, label, false, ptr)
	f.Set = func(e *T, v string) error {
		v = strings.TrimSpace(v)
		if v != "" {
			if _, err := time.Parse(TimeLayout, v); err != nil {
				return manage.Validationf("%s must be a time like 07:45", label)
			}
		}
		*ptr(e) = v
		return nil
	}
	return f
}

func intField[T any](key, label string, ptr func(*T) *int) Field[T] {
	return Field[T]{
		Key:   key,
		Label: label,
		Get: func(e T) string {
			if n := *ptr(&e); n != 0 {
				return strconv.Itoa(n)
			}
			return ""
		},
		Set: func(e *T, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				*ptr(e) = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return manage.Validationf("%s must be a whole number", label)
			}
			*ptr(e) = n
			return nil
		},
	}
}

func decimalField[T any](key, label string, ptr func(*T) *float64) Field[T] {
	return Field[T]{
		Key:   key,
		Label: label,
		Get: func(e T) string {
			if n := *ptr(&e); n != 0 {
				return strconv.FormatFloat(n, 'f', -1, 64)
			}
			return ""
		},
		Set: func(e *T, v string) error {
			v = strings.TrimPrefix(strings.TrimSpace(v), "$")
			if v == "" {
				*ptr(e) = 0
				return nil
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return manage.Validationf("%s must be a number like 18.5", label)
			}
			*ptr(e) = n
			return nil
		},
	}
}

func boolField[T any](key, label string, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		Key:   key,
		Label: label,
		Get: func(e T) string {
			if *ptr(&e) {
				return "yes"
			}
			return "no"
		},
		Set: func(e *T, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "y", "yes", "true", "1":
				*ptr(e) = true
			case "", "n", "no", "false", "0":
				*ptr(e) = false
			default:
				return manage.Validationf("%s must be yes or no", label)
			}
			return nil
		},
	}
}

func oneOf(label, value string, options []string) error {
	if value == "" {
		return nil
	}
	for _, o := range options {
		if strings.EqualFold(o, value) {
			return nil
		}
	}
	return manage.Validationf("%s must be one of: %s", label, strings.Join(options, ", "))
}

func notBefore(labelA, a, labelB, b, layout string) error {
	if a == "" || b == "" {
		return nil
	}
	ta, errA := time.Parse(layout, a)
	tb, errB := time.Parse(layout, b)
	if errA != nil || errB != nil {
		return nil
	}
	if tb.Before(ta) {
		return manage.Validationf("%s cannot be before %s", labelB, labelA)
	}
	return nil
}

// details builds the read-only summary from the field table.
func details[T any](entity T, fields []Field[T]) []manage.DetailField {
	out := make([]manage.DetailField, 0, len(fields))
	for _, f := range fields {
		out = append(out, manage.DetailField{Label: f.Label, Value: f.Get(entity)})
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func money(n float64) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", n)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
