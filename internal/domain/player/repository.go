package player

import "context"

// Repository exposes player persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	ListBySport(ctx context.Context, sportID string) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) (bool, error)
}
