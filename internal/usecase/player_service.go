package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acitysports/sports-backend/internal/domain/player"
)

type PlayerService struct {
	playerRepo player.Repository
	sports     sportEnsurer
}

func NewPlayerService(playerRepo player.Repository, sports sportEnsurer) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		sports:     sports,
	}
}

type PlayerFilter struct {
	TeamID        string
	SportIDOrName string
}

func (s *PlayerService) List(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter.TeamID = strings.TrimSpace(filter.TeamID)
	filter.SportIDOrName = strings.TrimSpace(filter.SportIDOrName)

	switch {
	case filter.TeamID != "":
		items, err := s.playerRepo.ListByTeam(ctx, filter.TeamID)
		if err != nil {
			return nil, fmt.Errorf("list players by team: %w", err)
		}
		return items, nil
	case filter.SportIDOrName != "":
		sportID, err := s.resolveSportFilter(ctx, filter.SportIDOrName)
		if err != nil {
			return nil, err
		}
		items, err := s.playerRepo.ListBySport(ctx, sportID)
		if err != nil {
			return nil, fmt.Errorf("list players by sport: %w", err)
		}
		return items, nil
	default:
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		return items, nil
	}
}

func (s *PlayerService) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByID")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

// UpsertFromWebhook applies a players document delivered by the CMS.
// Positions default to empty and jersey number to zero when the document
// omits them.
func (s *PlayerService) UpsertFromWebhook(ctx context.Context, doc WebhookDocument) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpsertFromWebhook")
	defer span.End()

	if err := requireFields(map[string]string{
		"_id":  doc.ID,
		"name": doc.Name,
	}); err != nil {
		return player.Player{}, err
	}

	return s.Upsert(ctx, PlayerInput{
		ID:           doc.ID,
		Name:         doc.Name,
		TeamID:       doc.Team.Ref,
		Positions:    doc.Positions,
		JerseyNumber: doc.JerseyNumber,
	})
}

type PlayerInput struct {
	ID           string
	Name         string
	TeamID       string
	Positions    []string
	JerseyNumber int
}

func (s *PlayerService) Upsert(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Upsert")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	if input.ID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if input.JerseyNumber < 0 {
		return player.Player{}, fmt.Errorf("%w: jersey number cannot be negative", ErrInvalidInput)
	}

	positions := make([]string, 0, len(input.Positions))
	for _, position := range input.Positions {
		position = strings.TrimSpace(position)
		if position != "" {
			positions = append(positions, position)
		}
	}

	item := player.Player{
		ID:           input.ID,
		Name:         input.Name,
		TeamID:       strings.TrimSpace(input.TeamID),
		Positions:    positions,
		JerseyNumber: input.JerseyNumber,
	}
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("upsert player: %w", err)
	}

	return item, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return nil
}

func (s *PlayerService) resolveSportFilter(ctx context.Context, sportIDOrName string) (string, error) {
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
