package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/acitysports/sports-backend/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.Mutex
	items   map[string]match.Match
	lineups map[string][]match.Lineup
	events  map[string][]match.Event
}

func NewMatchRepository(items ...match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &MatchRepository{
		items:   byID,
		lineups: make(map[string][]match.Lineup),
		events:  make(map[string][]match.Event),
	}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	return item, ok, nil
}

// UpsertWithChildren mirrors the relational contract: the whole operation is
// atomic under one lock, nil child slices leave existing rows alone, and
// non-nil slices replace the set.
func (r *MatchRepository) UpsertWithChildren(_ context.Context, item match.Match, lineups []match.Lineup, events []match.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	if lineups != nil {
		r.lineups[item.ID] = dedupeLineups(lineups)
	}
	if events != nil {
		r.events[item.ID] = append([]match.Event(nil), events...)
	}

	return nil
}

func dedupeLineups(lineups []match.Lineup) []match.Lineup {
	seen := make(map[string]struct{}, len(lineups))
	out := make([]match.Lineup, 0, len(lineups))
	for _, row := range lineups {
		key := row.MatchID + "\x00" + row.PlayerID
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}

	return out
}

func (r *MatchRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	delete(r.lineups, id)
	delete(r.events, id)
	return true, nil
}

func (r *MatchRepository) ListLineups(_ context.Context, matchID string) ([]match.Lineup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]match.Lineup(nil), r.lineups[matchID]...), nil
}

func (r *MatchRepository) ListEvents(_ context.Context, matchID string) ([]match.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]match.Event(nil), r.events[matchID]...), nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
}
