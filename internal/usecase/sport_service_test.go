package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/acitysports/sports-backend/internal/infrastructure/repository/memory"
	idgen "github.com/acitysports/sports-backend/internal/platform/id"
)

func TestSportService_EnsureExists_CreatesOnce(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	first, err := svc.EnsureExists(t.Context(), "Football")
	if err != nil {
		t.Fatalf("ensure sport failed: %v", err)
	}
	if first.Name != "Football" {
		t.Fatalf("unexpected sport name: %q", first.Name)
	}

	second, err := svc.EnsureExists(t.Context(), "football")
	if err != nil {
		t.Fatalf("ensure sport failed on repeat: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same sport id for case-insensitive repeat, got %s and %s", first.ID, second.ID)
	}

	sports, err := svc.List(t.Context())
	if err != nil {
		t.Fatalf("list sports failed: %v", err)
	}
	if len(sports) != 1 {
		t.Fatalf("expected exactly one sport, got %d", len(sports))
	}
}

func TestSportService_EnsureExists_ConcurrentCallers(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.EnsureExists(t.Context(), "Basketball"); err != nil {
				t.Errorf("ensure sport failed: %v", err)
			}
		}()
	}
	wg.Wait()

	sports, err := svc.List(t.Context())
	if err != nil {
		t.Fatalf("list sports failed: %v", err)
	}
	if len(sports) != 1 {
		t.Fatalf("expected exactly one sport after concurrent ensures, got %d", len(sports))
	}
}

func TestSportService_Create_Conflict(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	if _, err := svc.Create(t.Context(), "Volleyball"); err != nil {
		t.Fatalf("create sport failed: %v", err)
	}

	_, err := svc.Create(t.Context(), "volleyball")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSportService_Create_RequiresName(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	_, err := svc.Create(t.Context(), "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSportService_Delete_Absent(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	err := svc.Delete(t.Context(), "missing-sport")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSportService_Update_NameCollision(t *testing.T) {
	sportRepo := memory.NewSportRepository()
	svc := NewSportService(sportRepo, idgen.NewRandomGenerator())

	first, err := svc.Create(t.Context(), "Futsal")
	if err != nil {
		t.Fatalf("create sport failed: %v", err)
	}
	if _, err := svc.Create(t.Context(), "Handball"); err != nil {
		t.Fatalf("create sport failed: %v", err)
	}

	_, err = svc.Update(t.Context(), first.ID, "handball")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
