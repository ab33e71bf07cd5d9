package match

import "context"

// Repository exposes match persistence operations.
//
// UpsertWithChildren commits the match row together with its child rows in a
// single transaction: when lineups or events is non-nil the existing set for
// the match is removed and the given set inserted in its place. A nil slice
// means "document carried no such structure, leave the current rows alone";
// an empty non-nil slice clears the set.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	UpsertWithChildren(ctx context.Context, item Match, lineups []Lineup, events []Event) error
	Delete(ctx context.Context, id string) (bool, error)
	ListLineups(ctx context.Context, matchID string) ([]Lineup, error)
	ListEvents(ctx context.Context, matchID string) ([]Event, error)
}
