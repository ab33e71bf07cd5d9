package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/acitysports/sports-backend/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
	// teams answers sport-scoped listings, mirroring the relational join.
	teams *TeamRepository
}

func NewPlayerRepository(teams *TeamRepository, items ...player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &PlayerRepository{items: byID, teams: teams}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) ListBySport(ctx context.Context, sportID string) ([]player.Player, error) {
	if r.teams == nil {
		return []player.Player{}, nil
	}

	teams, err := r.teams.ListBySport(ctx, sportID)
	if err != nil {
		return nil, err
	}
	teamIDs := make(map[string]struct{}, len(teams))
	for _, item := range teams {
		teamIDs[item.ID] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.items {
		if _, ok := teamIDs[item.TeamID]; ok {
			out = append(out, item)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
