package api

import (
	"fmt"
	"net/url"

	"github.com/gravitrone/fleetops/internal/store"
)

// Resource is a REST-backed repository for one record collection, served at
// /api/<name>.
type Resource[T any] struct {
	client   *Client
	name     string
	identity store.Identity[T]
}

// NewResource returns a repository over /api/<name>.
func NewResource[T any](client *Client, name string, identity store.Identity[T]) *Resource[T] {
	return &Resource[T]{client: client, name: name, identity: identity}
}

func (r *Resource[T]) collection() string {
	return "/api/" + r.name
}

func (r *Resource[T]) item(id string) string {
	return fmt.Sprintf("/api/%s/%s", r.name, url.PathEscape(id))
}

func (r *Resource[T]) GetAll() ([]T, error) {
	data, err := r.client.get(r.collection())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return decodeList[T](data)
}

func (r *Resource[T]) GetByID(id string) (T, bool, error) {
	var zero T
	data, err := r.client.get(r.item(id))
	if IsNotFound(err) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s %s: %w", r.name, id, err)
	}
	entity, err := decodeOne[T](data)
	if err != nil {
		return zero, false, err
	}
	return *entity, true, nil
}

func (r *Resource[T]) Add(entity T) (string, error) {
	entity, id := r.identity.Assign(entity)
	data, err := r.client.post(r.collection(), entity)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", r.name, err)
	}
	if len(data) == 0 {
		return id, nil
	}
	created, err := decodeOne[T](data)
	if err != nil {
		return "", err
	}
	if serverID := r.identity.ID(*created); serverID != "" {
		return serverID, nil
	}
	return id, nil
}

func (r *Resource[T]) Update(entity T) (bool, error) {
	id := r.identity.ID(entity)
	if id == "" {
		return false, nil
	}
	data, err := r.client.patch(r.item(id), entity)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	if res, err := decodeOne[updateResult](data); err == nil && res.Updated != nil {
		return *res.Updated, nil
	}
	return true, nil
}

func (r *Resource[T]) Delete(id string) error {
	_, err := r.client.del(r.item(id))
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	return nil
}
