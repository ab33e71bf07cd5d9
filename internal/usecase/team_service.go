package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acitysports/sports-backend/internal/domain/sport"
	"github.com/acitysports/sports-backend/internal/domain/team"
)

// sportEnsurer is the get-or-create boundary team upserts resolve their
// sport reference through.
type sportEnsurer interface {
	EnsureExists(ctx context.Context, name string) (sport.Sport, error)
	GetByID(ctx context.Context, sportID string) (sport.Sport, error)
	FindByName(ctx context.Context, name string) (sport.Sport, bool, error)
}

type TeamService struct {
	teamRepo team.Repository
	sports   sportEnsurer
}

func NewTeamService(teamRepo team.Repository, sports sportEnsurer) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		sports:   sports,
	}
}

// List returns all teams, optionally narrowed to a sport given by ID or by
// case-insensitive name.
func (s *TeamService) List(ctx context.Context, sportIDOrName string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	sportIDOrName = strings.TrimSpace(sportIDOrName)
	if sportIDOrName == "" {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		return items, nil
	}

	sportID, err := s.resolveSportFilter(ctx, sportIDOrName)
	if err != nil {
		return nil, err
	}

	items, err := s.teamRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("list teams by sport: %w", err)
	}

	return items, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

// UpsertFromWebhook applies a teams document delivered by the CMS.
func (s *TeamService) UpsertFromWebhook(ctx context.Context, doc WebhookDocument) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpsertFromWebhook")
	defer span.End()

	if err := requireFields(map[string]string{
		"_id":   doc.ID,
		"name":  doc.Name,
		"sport": doc.Sport,
	}); err != nil {
		return team.Team{}, err
	}

	return s.Upsert(ctx, TeamInput{
		ID:       doc.ID,
		Name:     doc.Name,
		LogoURL:  doc.Logo.Asset.URL,
		Coach:    doc.Coach,
		Sport:    doc.Sport,
		Division: doc.Division,
	})
}

type TeamInput struct {
	ID       string
	Name     string
	LogoURL  string
	Coach    string
	Sport    string
	Division string
}

func (s *TeamService) Upsert(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Upsert")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	input.Sport = strings.TrimSpace(input.Sport)
	if input.ID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.Sport == "" {
		return team.Team{}, fmt.Errorf("%w: team sport is required", ErrInvalidInput)
	}

	sportRow, err := s.sports.EnsureExists(ctx, input.Sport)
	if err != nil {
		return team.Team{}, fmt.Errorf("ensure sport for team %s: %w", input.ID, err)
	}

	item := team.Team{
		ID:       input.ID,
		Name:     input.Name,
		LogoURL:  strings.TrimSpace(input.LogoURL),
		Coach:    strings.TrimSpace(input.Coach),
		SportID:  sportRow.ID,
		Division: team.NormalizeDivision(input.Division),
	}
	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	return item, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	deleted, err := s.teamRepo.Delete(ctx, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return nil
}

// resolveSportFilter accepts either a sport ID or a sport name, the way the
// list endpoints let clients filter.
func (s *TeamService) resolveSportFilter(ctx context.Context, sportIDOrName string) (string, error) {
	item, err := s.sports.GetByID(ctx, sportIDOrName)
	if err == nil {
		return item.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	named, exists, err := s.sports.FindByName(ctx, sportIDOrName)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: sport=%s", ErrNotFound, sportIDOrName)
	}

	return named.ID, nil
}
