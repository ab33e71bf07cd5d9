package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/acitysports/sports-backend/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository(items ...season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &SeasonRepository{items: byID}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *SeasonRepository) Upsert(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
