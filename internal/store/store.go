// Package store holds manage.Repository implementations backed by memory and
// by an embedded SQLite database.
package store

import (
	"github.com/google/uuid"
)

// Identity reads and assigns the string id of an entity.
type Identity[T any] struct {
	ID     func(T) string
	WithID func(T, string) T
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

// Assign gives entity an id when it has none.
func (i Identity[T]) Assign(entity T) (T, string) {
	id := i.ID(entity)
	if id == "" {
		id = NewID()
		entity = i.WithID(entity, id)
	}
	return entity, id
}
