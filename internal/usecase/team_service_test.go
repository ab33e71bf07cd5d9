package usecase

import (
	"errors"
	"testing"

	"github.com/acitysports/sports-backend/internal/domain/team"
	"github.com/acitysports/sports-backend/internal/infrastructure/repository/memory"
	idgen "github.com/acitysports/sports-backend/internal/platform/id"
)

func newTeamFixture() (*TeamService, *SportService, *memory.TeamRepository) {
	sportSvc := NewSportService(memory.NewSportRepository(), idgen.NewRandomGenerator())
	teamRepo := memory.NewTeamRepository()
	return NewTeamService(teamRepo, sportSvc), sportSvc, teamRepo
}

func TestTeamService_UpsertFromWebhook_CreatesSport(t *testing.T) {
	svc, sportSvc, _ := newTeamFixture()

	doc := WebhookDocument{
		Type:     DocumentTypeTeams,
		ID:       "team-eagles",
		Name:     "Eagles",
		Sport:    "Football",
		Division: "women",
		Coach:    "A. Coach",
	}
	doc.Logo.Asset.URL = "https://cdn.example.com/eagles.png"

	item, err := svc.UpsertFromWebhook(t.Context(), doc)
	if err != nil {
		t.Fatalf("upsert team from webhook failed: %v", err)
	}
	if item.Division != team.DivisionWomen {
		t.Fatalf("unexpected division: %s", item.Division)
	}
	if item.LogoURL != "https://cdn.example.com/eagles.png" {
		t.Fatalf("unexpected logo url: %s", item.LogoURL)
	}

	sports, err := sportSvc.List(t.Context())
	if err != nil {
		t.Fatalf("list sports failed: %v", err)
	}
	if len(sports) != 1 || sports[0].Name != "Football" {
		t.Fatalf("expected one sport named Football, got %+v", sports)
	}
	if item.SportID != sports[0].ID {
		t.Fatalf("team not linked to created sport")
	}

	// Redelivery reuses the existing sport.
	if _, err := svc.UpsertFromWebhook(t.Context(), doc); err != nil {
		t.Fatalf("redelivered upsert failed: %v", err)
	}
	sports, err = sportSvc.List(t.Context())
	if err != nil {
		t.Fatalf("list sports failed: %v", err)
	}
	if len(sports) != 1 {
		t.Fatalf("expected one sport after redelivery, got %d", len(sports))
	}
}

func TestTeamService_UpsertFromWebhook_DivisionDefaultsToMen(t *testing.T) {
	svc, _, _ := newTeamFixture()

	item, err := svc.UpsertFromWebhook(t.Context(), WebhookDocument{
		Type:     DocumentTypeTeams,
		ID:       "team-hawks",
		Name:     "Hawks",
		Sport:    "Basketball",
		Division: "junior varsity",
	})
	if err != nil {
		t.Fatalf("upsert team from webhook failed: %v", err)
	}
	if item.Division != team.DivisionMen {
		t.Fatalf("expected MEN for unknown division, got %s", item.Division)
	}
}

func TestTeamService_UpsertFromWebhook_MissingSport(t *testing.T) {
	svc, _, teamRepo := newTeamFixture()

	_, err := svc.UpsertFromWebhook(t.Context(), WebhookDocument{
		Type: DocumentTypeTeams,
		ID:   "team-incomplete",
		Name: "Incomplete",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, exists, err := teamRepo.GetByID(t.Context(), "team-incomplete"); err != nil || exists {
		t.Fatalf("expected no team stored, exists=%v err=%v", exists, err)
	}
}

func TestTeamService_List_BySportName(t *testing.T) {
	svc, _, _ := newTeamFixture()

	if _, err := svc.UpsertFromWebhook(t.Context(), WebhookDocument{
		Type: DocumentTypeTeams, ID: "team-a", Name: "Alpha", Sport: "Football",
	}); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}
	if _, err := svc.UpsertFromWebhook(t.Context(), WebhookDocument{
		Type: DocumentTypeTeams, ID: "team-b", Name: "Beta", Sport: "Rugby",
	}); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}

	teams, err := svc.List(t.Context(), "football")
	if err != nil {
		t.Fatalf("list teams by sport name failed: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "team-a" {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	all, err := svc.List(t.Context(), "")
	if err != nil {
		t.Fatalf("list all teams failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected two teams, got %d", len(all))
	}
}

func TestTeamService_List_UnknownSport(t *testing.T) {
	svc, _, _ := newTeamFixture()

	_, err := svc.List(t.Context(), "curling")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown sport filter, got %v", err)
	}
}

func TestTeamService_Delete_Absent(t *testing.T) {
	svc, _, _ := newTeamFixture()

	err := svc.Delete(t.Context(), "team-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
