package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/acitysports/sports-backend/internal/domain/sport"
)

type SportRepository struct {
	mu    sync.RWMutex
	items map[string]sport.Sport
}

func NewSportRepository(items ...sport.Sport) *SportRepository {
	byID := make(map[string]sport.Sport, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &SportRepository{items: byID}
}

func (r *SportRepository) List(_ context.Context) ([]sport.Sport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sport.Sport, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *SportRepository) GetByID(_ context.Context, id string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *SportRepository) GetByName(_ context.Context, name string) (sport.Sport, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return sport.Sport{}, false, nil
}

func (r *SportRepository) Create(_ context.Context, item sport.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *SportRepository) Update(_ context.Context, item sport.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *SportRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
