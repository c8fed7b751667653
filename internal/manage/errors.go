package manage

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad marks failures while reading from a repository.
	ErrLoad = errors.New("load failed")
	// ErrMutation marks rejected add/update/delete calls.
	ErrMutation = errors.New("mutation failed")
	// ErrValidation is raised by dialogs before they commit.
	ErrValidation = errors.New("validation failed")
)

// FailureKind classifies a Failure.
type FailureKind int

const (
	LoadFailure FailureKind = iota
	MutationFailure
	ValidationFailure
)

func (k FailureKind) String() string {
	switch k {
	case LoadFailure:
		return "load"
	case MutationFailure:
		return "mutation"
	case ValidationFailure:
		return "validation"
	}
	return "unknown"
}

func (k FailureKind) sentinel() error {
	switch k {
	case LoadFailure:
		return ErrLoad
	case MutationFailure:
		return ErrMutation
	default:
		return ErrValidation
	}
}

// Failure wraps a repository error with the operation that triggered it.
type Failure struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Op == "" && f.Err != nil {
		return f.Err.Error()
	}
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the sentinel for the failure kind.
func (f *Failure) Is(target error) bool {
	return target == f.Kind.sentinel()
}

// Validationf builds an error that satisfies errors.Is(err, ErrValidation).
func Validationf(format string, args ...any) error {
	return &Failure{Kind: ValidationFailure, Err: fmt.Errorf(format, args...)}
}
