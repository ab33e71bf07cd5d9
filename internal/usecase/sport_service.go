package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/acitysports/sports-backend/internal/domain/sport"
	"github.com/acitysports/sports-backend/internal/platform/id"
	"github.com/acitysports/sports-backend/internal/platform/resilience"
)

type SportService struct {
	sportRepo sport.Repository
	idGen     id.Generator
	ensure    resilience.SingleFlight
}

func NewSportService(sportRepo sport.Repository, idGen id.Generator) *SportService {
	return &SportService{
		sportRepo: sportRepo,
		idGen:     idGen,
	}
}

func (s *SportService) List(ctx context.Context) ([]sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.List")
	defer span.End()

	items, err := s.sportRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}

	return items, nil
}

func (s *SportService) GetByID(ctx context.Context, sportID string) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.GetByID")
	defer span.End()

	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	item, exists, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		return sport.Sport{}, fmt.Errorf("get sport by id: %w", err)
	}
	if !exists {
		return sport.Sport{}, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	return item, nil
}

// FindByName looks a sport up by its case-insensitive unique name.
func (s *SportService) FindByName(ctx context.Context, name string) (sport.Sport, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.FindByName")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return sport.Sport{}, false, fmt.Errorf("%w: sport name is required", ErrInvalidInput)
	}

	item, exists, err := s.sportRepo.GetByName(ctx, name)
	if err != nil {
		return sport.Sport{}, false, fmt.Errorf("get sport by name: %w", err)
	}

	return item, exists, nil
}

func (s *SportService) Create(ctx context.Context, name string) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport name is required", ErrInvalidInput)
	}

	if _, exists, err := s.sportRepo.GetByName(ctx, name); err != nil {
		return sport.Sport{}, fmt.Errorf("check sport name before create: %w", err)
	} else if exists {
		return sport.Sport{}, fmt.Errorf("%w: sport name %q already exists", ErrConflict, name)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return sport.Sport{}, fmt.Errorf("generate sport id: %w", err)
	}

	item := sport.Sport{ID: newID, Name: name}
	if err := s.sportRepo.Create(ctx, item); err != nil {
		return sport.Sport{}, fmt.Errorf("create sport: %w", err)
	}

	return item, nil
}

func (s *SportService) Update(ctx context.Context, sportID, name string) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.Update")
	defer span.End()

	sportID = strings.TrimSpace(sportID)
	name = strings.TrimSpace(name)
	if sportID == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}
	if name == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport name is required", ErrInvalidInput)
	}

	if _, exists, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		return sport.Sport{}, fmt.Errorf("get sport before update: %w", err)
	} else if !exists {
		return sport.Sport{}, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	if other, exists, err := s.sportRepo.GetByName(ctx, name); err != nil {
		return sport.Sport{}, fmt.Errorf("check sport name before update: %w", err)
	} else if exists && other.ID != sportID {
		return sport.Sport{}, fmt.Errorf("%w: sport name %q already exists", ErrConflict, name)
	}

	item := sport.Sport{ID: sportID, Name: name}
	if err := s.sportRepo.Update(ctx, item); err != nil {
		return sport.Sport{}, fmt.Errorf("update sport: %w", err)
	}

	return item, nil
}

func (s *SportService) Delete(ctx context.Context, sportID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.Delete")
	defer span.End()

	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	deleted, err := s.sportRepo.Delete(ctx, sportID)
	if err != nil {
		return fmt.Errorf("delete sport: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	return nil
}

// EnsureExists returns the sport with the given name, creating it when
// absent. Sport names are unique case-insensitively; concurrent callers for
// the same name collapse into one lookup-or-create.
func (s *SportService) EnsureExists(ctx context.Context, name string) (sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.EnsureExists")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport name is required", ErrInvalidInput)
	}

	key := strings.ToLower(name)
	val, err, _ := s.ensure.Do(key, func() (any, error) {
		return s.ensureExists(ctx, name)
	})
	if err != nil {
		return sport.Sport{}, err
	}

	return val.(sport.Sport), nil
}

func (s *SportService) ensureExists(ctx context.Context, name string) (sport.Sport, error) {
	item, exists, err := s.sportRepo.GetByName(ctx, name)
	if err != nil {
		return sport.Sport{}, fmt.Errorf("get sport by name: %w", err)
	}
	if exists {
		return item, nil
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return sport.Sport{}, fmt.Errorf("generate sport id: %w", err)
	}

	item = sport.Sport{ID: newID, Name: name}
	if err := s.sportRepo.Create(ctx, item); err != nil {
		// Lost a create race with another delivery; the winner's row is
		// the one to use.
		existing, exists, getErr := s.sportRepo.GetByName(ctx, name)
		if getErr == nil && exists {
			return existing, nil
		}
		return sport.Sport{}, fmt.Errorf("create sport %q: %w", name, err)
	}

	return item, nil
}
