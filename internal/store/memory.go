package store

import (
	"fmt"
	"sync"
)

// Memory is an ordered in-memory repository.
type Memory[T any] struct {
	mu       sync.RWMutex
	identity Identity[T]
	items    []T
}

// NewMemory creates a repository seeded with items. Items without an id get one.
func NewMemory[T any](identity Identity[T], items ...T) *Memory[T] {
	m := &Memory[T]{identity: identity, items: make([]T, 0, len(items))}
	for _, item := range items {
		item, _ = identity.Assign(item)
		m.items = append(m.items, item)
	}
	return m
}

func (m *Memory[T]) GetAll() ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory[T]) GetByID(id string) (T, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true, nil
	}
	var zero T
	return zero, false, nil
}

func (m *Memory[T]) Add(entity T) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, id := m.identity.Assign(entity)
	if m.indexOf(id) >= 0 {
		return "", fmt.Errorf("add %s: duplicate id", id)
	}
	m.items = append(m.items, entity)
	return id, nil
}

func (m *Memory[T]) Update(entity T) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.identity.ID(entity))
	if i < 0 {
		return false, nil
	}
	m.items[i] = entity
	return true, nil
}

func (m *Memory[T]) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

func (m *Memory[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range m.items {
		if m.identity.ID(item) == id {
			return i
		}
	}
	return -1
}
