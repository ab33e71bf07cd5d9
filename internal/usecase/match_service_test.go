package usecase

import (
	"errors"
	"testing"

	"github.com/acitysports/sports-backend/internal/domain/match"
	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/infrastructure/repository/memory"
)

func newMatchFixture(t *testing.T, seasons ...season.Season) (*MatchService, *memory.MatchRepository) {
	t.Helper()

	seasonSvc := NewSeasonService(memory.NewSeasonRepository(seasons...), nil, nil)
	matchRepo := memory.NewMatchRepository()
	return NewMatchService(matchRepo, seasonSvc, nil), matchRepo
}

func matchDoc() WebhookDocument {
	return WebhookDocument{
		Type:     DocumentTypeFixtures,
		ID:       "match-1",
		Date:     "2026-03-14T18:00:00Z",
		HomeTeam: DocumentRef{Ref: "team-home"},
		AwayTeam: DocumentRef{Ref: "team-away"},
		Season:   DocumentRef{Ref: "season-1"},
	}
}

func TestMatchService_UpsertFromWebhook_WithLineups(t *testing.T) {
	svc, _ := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	doc := matchDoc()
	doc.Lineups = &LineupsField{
		HomeLineup:      []DocumentRef{{Ref: "p1"}, {Ref: "p2"}},
		AwaySubstitutes: []DocumentRef{{Ref: "p3"}},
	}

	item, err := svc.UpsertFromWebhook(t.Context(), doc)
	if err != nil {
		t.Fatalf("upsert match from webhook failed: %v", err)
	}
	if item.SeasonID != "season-1" {
		t.Fatalf("unexpected season id: %s", item.SeasonID)
	}

	lineups, err := svc.Lineups(t.Context(), "match-1")
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	if len(lineups) != 3 {
		t.Fatalf("expected 3 lineup rows, got %d", len(lineups))
	}

	byPlayer := make(map[string]match.Lineup, len(lineups))
	for _, l := range lineups {
		byPlayer[l.PlayerID] = l
	}
	if !byPlayer["p1"].IsStarter || byPlayer["p1"].TeamID != "team-home" {
		t.Fatalf("unexpected row for p1: %+v", byPlayer["p1"])
	}
	if !byPlayer["p2"].IsStarter {
		t.Fatalf("expected p2 to be a starter")
	}
	if byPlayer["p3"].IsStarter || byPlayer["p3"].TeamID != "team-away" {
		t.Fatalf("unexpected row for p3: %+v", byPlayer["p3"])
	}
}

func TestMatchService_UpsertFromWebhook_LineupReplacement(t *testing.T) {
	svc, _ := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	first := matchDoc()
	first.Lineups = &LineupsField{HomeLineup: []DocumentRef{{Ref: "p1"}, {Ref: "p2"}}}
	if _, err := svc.UpsertFromWebhook(t.Context(), first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := matchDoc()
	second.Lineups = &LineupsField{HomeLineup: []DocumentRef{{Ref: "p9"}}}
	if _, err := svc.UpsertFromWebhook(t.Context(), second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	lineups, err := svc.Lineups(t.Context(), "match-1")
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	if len(lineups) != 1 || lineups[0].PlayerID != "p9" {
		t.Fatalf("expected only the replacement lineup, got %+v", lineups)
	}
}

func TestMatchService_UpsertFromWebhook_AbsentLineupsLeavesRows(t *testing.T) {
	svc, _ := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	first := matchDoc()
	first.Lineups = &LineupsField{HomeLineup: []DocumentRef{{Ref: "p1"}}}
	if _, err := svc.UpsertFromWebhook(t.Context(), first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// A document without a Lineups key must not touch stored lineups.
	if _, err := svc.UpsertFromWebhook(t.Context(), matchDoc()); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	lineups, err := svc.Lineups(t.Context(), "match-1")
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	if len(lineups) != 1 || lineups[0].PlayerID != "p1" {
		t.Fatalf("expected original lineup untouched, got %+v", lineups)
	}
}

func TestMatchService_UpsertFromWebhook_SkipsMalformedLineupEntries(t *testing.T) {
	svc, _ := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	doc := matchDoc()
	doc.Lineups = &LineupsField{HomeLineup: []DocumentRef{{Ref: "p1"}, {Ref: ""}}}
	if _, err := svc.UpsertFromWebhook(t.Context(), doc); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	lineups, err := svc.Lineups(t.Context(), "match-1")
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	if len(lineups) != 1 {
		t.Fatalf("expected the refless entry skipped, got %d rows", len(lineups))
	}
}

func TestMatchService_UpsertFromWebhook_UnknownSeason(t *testing.T) {
	svc, matchRepo := newMatchFixture(t)

	_, err := svc.UpsertFromWebhook(t.Context(), matchDoc())
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}

	if _, exists, err := matchRepo.GetByID(t.Context(), "match-1"); err != nil || exists {
		t.Fatalf("expected no match stored, exists=%v err=%v", exists, err)
	}
}

func TestMatchService_UpsertFromWebhook_MissingRequiredFields(t *testing.T) {
	svc, matchRepo := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	doc := matchDoc()
	doc.HomeTeam = DocumentRef{}
	_, err := svc.UpsertFromWebhook(t.Context(), doc)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, exists, err := matchRepo.GetByID(t.Context(), "match-1"); err != nil || exists {
		t.Fatalf("expected no match stored, exists=%v err=%v", exists, err)
	}
}

func TestMatchService_UpsertFromWebhook_EventsFiltered(t *testing.T) {
	svc, _ := newMatchFixture(t, season.Season{ID: "season-1", Title: "Season One"})

	doc := matchDoc()
	doc.Events = []EventField{
		{Player: DocumentRef{Ref: "p1"}, Minute: 12, Type: "goal", Assist: DocumentRef{Ref: "p2"}},
		{Player: DocumentRef{Ref: "p3"}, Minute: 30, Type: "own-dance"},
		{Minute: 44, Type: "goal"},
	}

	if _, err := svc.UpsertFromWebhook(t.Context(), doc); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	events, err := svc.Events(t.Context(), "match-1")
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the valid event kept, got %d", len(events))
	}
	if events[0].Type != match.EventGoal || events[0].AssistPlayerID != "p2" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestMatchService_Delete_Absent(t *testing.T) {
	svc, _ := newMatchFixture(t)

	err := svc.Delete(t.Context(), "match-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Lineups_UnknownMatch(t *testing.T) {
	svc, _ := newMatchFixture(t)

	_, err := svc.Lineups(t.Context(), "match-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
