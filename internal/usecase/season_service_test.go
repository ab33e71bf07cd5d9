package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/infrastructure/repository/memory"
)

type fakeSeasonFetcher struct {
	seasons map[string]season.Season
	err     error
	calls   int
}

func (f *fakeSeasonFetcher) GetSeason(_ context.Context, seasonID string) (season.Season, bool, error) {
	f.calls++
	if f.err != nil {
		return season.Season{}, false, f.err
	}
	item, ok := f.seasons[seasonID]
	return item, ok, nil
}

func TestSeasonService_UpsertFromWebhook(t *testing.T) {
	seasonRepo := memory.NewSeasonRepository()
	svc := NewSeasonService(seasonRepo, nil, nil)

	doc := WebhookDocument{
		Type:      DocumentTypeSeasons,
		ID:        "season-2026",
		Title:     "Season 2026",
		StartDate: "2026-01-10",
		EndDate:   "2026-06-20",
	}

	item, err := svc.UpsertFromWebhook(t.Context(), doc)
	if err != nil {
		t.Fatalf("upsert season from webhook failed: %v", err)
	}
	if item.ID != "season-2026" {
		t.Fatalf("unexpected season id: %s", item.ID)
	}
	if item.StartDate == nil || item.StartDate.Format("2006-01-02") != "2026-01-10" {
		t.Fatalf("unexpected start date: %v", item.StartDate)
	}

	// Redelivery of the same document must not fail or duplicate.
	if _, err := svc.UpsertFromWebhook(t.Context(), doc); err != nil {
		t.Fatalf("redelivered upsert failed: %v", err)
	}
	seasons, err := svc.List(t.Context())
	if err != nil {
		t.Fatalf("list seasons failed: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("expected one season after redelivery, got %d", len(seasons))
	}
}

func TestSeasonService_UpsertFromWebhook_MissingTitle(t *testing.T) {
	seasonRepo := memory.NewSeasonRepository()
	svc := NewSeasonService(seasonRepo, nil, nil)

	_, err := svc.UpsertFromWebhook(t.Context(), WebhookDocument{
		Type: DocumentTypeSeasons,
		ID:   "season-no-title",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.GetByID(t.Context(), "season-no-title"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no season stored, got %v", err)
	}
}

func TestSeasonService_Resolve_LocalHit(t *testing.T) {
	seasonRepo := memory.NewSeasonRepository(season.Season{ID: "season-1", Title: "Season One"})
	fetcher := &fakeSeasonFetcher{}
	svc := NewSeasonService(seasonRepo, fetcher, nil)

	item, err := svc.Resolve(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if item.Title != "Season One" {
		t.Fatalf("unexpected title: %q", item.Title)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no cms calls for a local hit, got %d", fetcher.calls)
	}
}

func TestSeasonService_Resolve_CMSFallbackMaterializes(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &fakeSeasonFetcher{
		seasons: map[string]season.Season{
			"season-2": {ID: "season-2", Title: "Season Two", StartDate: &start},
		},
	}
	seasonRepo := memory.NewSeasonRepository()
	svc := NewSeasonService(seasonRepo, fetcher, nil)

	item, err := svc.Resolve(t.Context(), "season-2")
	if err != nil {
		t.Fatalf("resolve via cms fallback failed: %v", err)
	}
	if item.Title != "Season Two" {
		t.Fatalf("unexpected title: %q", item.Title)
	}

	// The fallback must persist the season locally.
	stored, err := svc.GetByID(t.Context(), "season-2")
	if err != nil {
		t.Fatalf("expected season materialized locally: %v", err)
	}
	if stored.StartDate == nil || !stored.StartDate.Equal(start) {
		t.Fatalf("unexpected stored start date: %v", stored.StartDate)
	}
}

func TestSeasonService_Resolve_BothMiss(t *testing.T) {
	fetcher := &fakeSeasonFetcher{seasons: map[string]season.Season{}}
	svc := NewSeasonService(memory.NewSeasonRepository(), fetcher, nil)

	_, err := svc.Resolve(t.Context(), "season-unknown")
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}

func TestSeasonService_Resolve_CMSUnavailable(t *testing.T) {
	fetcher := &fakeSeasonFetcher{err: fmt.Errorf("connection refused")}
	svc := NewSeasonService(memory.NewSeasonRepository(), fetcher, nil)

	_, err := svc.Resolve(t.Context(), "season-3")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSeasonService_Delete_Absent(t *testing.T) {
	svc := NewSeasonService(memory.NewSeasonRepository(), nil, nil)

	err := svc.Delete(t.Context(), "season-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
