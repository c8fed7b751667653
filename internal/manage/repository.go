package manage

// Repository is the persistence boundary a management controller depends on.
//
// GetAll never returns a nil slice on success. Delete is idempotent: removing
// an id that is already gone is not an error.
type Repository[T any, ID comparable] interface {
	GetAll() ([]T, error)
	GetByID(id ID) (T, bool, error)
	Add(entity T) (ID, error)
	Update(entity T) (bool, error)
	Delete(id ID) error
}
