package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/acitysports/sports-backend/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository(items ...team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &TeamRepository{items: byID}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) ListBySport(_ context.Context, sportID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if item.SportID == sportID {
			out = append(out, item)
		}
	}
	sortTeams(out)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func sortTeams(items []team.Team) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
