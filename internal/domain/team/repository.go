package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListBySport(ctx context.Context, sportID string) ([]Team, error)
	GetByID(ctx context.Context, id string) (Team, bool, error)
	Upsert(ctx context.Context, item Team) error
	Delete(ctx context.Context, id string) (bool, error)
}
