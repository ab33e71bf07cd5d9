package season

import "context"

// Repository exposes season persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, id string) (Season, bool, error)
	Upsert(ctx context.Context, item Season) error
	Delete(ctx context.Context, id string) (bool, error)
}
