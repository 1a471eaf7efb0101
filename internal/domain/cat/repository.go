package cat

import "context"

// CatRepository defines persistence operations for cats.
type CatRepository interface {
	// Create inserts c and returns the stored row with its generated ID.
	Create(ctx context.Context, c *Cat) (*Cat, error)

	// FindByID returns ErrNotFound when no cat has the given ID.
	FindByID(ctx context.Context, id int64) (*Cat, error)

	FindAll(ctx context.Context) ([]*Cat, error)

	// UpdateSalary returns ErrNotFound when no row was updated.
	UpdateSalary(ctx context.Context, id int64, salary int) error

	// Delete removes an unreferenced cat. It returns ErrInUse when any mission
	// has the cat assigned and ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error
}

// BreedValidator confirms that a title-cased breed name is recognized.
type BreedValidator interface {
	IsValidBreed(ctx context.Context, breed string) (bool, error)
}
