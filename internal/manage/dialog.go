package manage

// Outcome is the result of a modal edit/create dialog.
type Outcome[T any] struct {
	Entity    T
	Committed bool
}

// Committed wraps an entity the user saved.
func Committed[T any](entity T) Outcome[T] {
	return Outcome[T]{Entity: entity, Committed: true}
}

// Cancelled reports that the dialog was closed without saving.
func Cancelled[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Dialog is a modal that returns once the user commits or cancels.
// Implementations validate before returning a committed outcome.
type Dialog[T any] interface {
	Show() Outcome[T]
}

// DialogFunc adapts a plain function to Dialog.
type DialogFunc[T any] func() Outcome[T]

// Show calls f.
func (f DialogFunc[T]) Show() Outcome[T] {
	return f()
}

// DialogFactory builds a dialog seeded with an existing entity, or with nil
// for a blank create form.
type DialogFactory[T any] func(seed *T) Dialog[T]
