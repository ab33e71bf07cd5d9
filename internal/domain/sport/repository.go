package sport

import "context"

// Repository describes sport persistence needs from use cases.
// Name lookups are case-insensitive: sport names are unique regardless of case.
type Repository interface {
	List(ctx context.Context) ([]Sport, error)
	GetByID(ctx context.Context, id string) (Sport, bool, error)
	GetByName(ctx context.Context, name string) (Sport, bool, error)
	Create(ctx context.Context, item Sport) error
	Update(ctx context.Context, item Sport) error
	Delete(ctx context.Context, id string) (bool, error)
}
