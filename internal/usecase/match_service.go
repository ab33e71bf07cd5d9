package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acitysports/sports-backend/internal/domain/match"
	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/domain/team"
	"github.com/acitysports/sports-backend/internal/platform/logging"
)

// seasonResolver materializes a season reference, falling back to the CMS
// when the row is not local yet.
type seasonResolver interface {
	Resolve(ctx context.Context, seasonID string) (season.Season, error)
}

type MatchService struct {
	matchRepo match.Repository
	seasons   seasonResolver
	logger    *logging.Logger
}

func NewMatchService(matchRepo match.Repository, seasons seasonResolver, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo: matchRepo,
		seasons:   seasons,
		logger:    logger,
	}
}

func (s *MatchService) List(ctx context.Context, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID != "" {
		items, err := s.matchRepo.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("list matches by season: %w", err)
		}
		return items, nil
	}

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *MatchService) Lineups(ctx context.Context, matchID string) ([]match.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Lineups")
	defer span.End()

	if _, err := s.GetByID(ctx, matchID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListLineups(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	return items, nil
}

func (s *MatchService) Events(ctx context.Context, matchID string) ([]match.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Events")
	defer span.End()

	if _, err := s.GetByID(ctx, matchID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListEvents(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	return items, nil
}

// UpsertFromWebhook applies a fixtures document delivered by the CMS. The
// season reference is a hard dependency: when it cannot be resolved locally
// or from the CMS, nothing is committed. The lineup structure, when present,
// replaces the match's full lineup set; entries without a player reference
// are skipped.
func (s *MatchService) UpsertFromWebhook(ctx context.Context, doc WebhookDocument) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpsertFromWebhook")
	defer span.End()

	if err := requireFields(map[string]string{
		"_id":      doc.ID,
		"date":     doc.Date,
		"homeTeam": doc.HomeTeam.Ref,
		"awayTeam": doc.AwayTeam.Ref,
		"season":   doc.Season.Ref,
	}); err != nil {
		return match.Match{}, err
	}

	matchDate, err := parseCMSDate(doc.Date)
	if err != nil {
		return match.Match{}, fmt.Errorf("parse match date: %w", err)
	}

	resolvedSeason, err := s.seasons.Resolve(ctx, doc.Season.Ref)
	if err != nil {
		return match.Match{}, fmt.Errorf("resolve season for match %s: %w", doc.ID, err)
	}

	item := match.Match{
		ID:            doc.ID,
		Date:          *matchDate,
		HomeTeamID:    doc.HomeTeam.Ref,
		AwayTeamID:    doc.AwayTeam.Ref,
		SeasonID:      resolvedSeason.ID,
		HomeScore:     doc.HomeScore,
		AwayScore:     doc.AwayScore,
		HomeFormation: strings.TrimSpace(doc.HomeFormation),
		AwayFormation: strings.TrimSpace(doc.AwayFormation),
		Division:      team.NormalizeDivision(doc.Division),
	}

	lineups := s.lineupsFromDocument(ctx, doc)
	events := s.eventsFromDocument(ctx, doc)

	if err := s.matchRepo.UpsertWithChildren(ctx, item, lineups, events); err != nil {
		return match.Match{}, fmt.Errorf("upsert match: %w", err)
	}

	return item, nil
}

// lineupsFromDocument flattens the four CMS lineup arrays into rows. A nil
// return means the document carried no lineup structure at all.
func (s *MatchService) lineupsFromDocument(ctx context.Context, doc WebhookDocument) []match.Lineup {
	if doc.Lineups == nil {
		return nil
	}

	rows := make([]match.Lineup, 0,
		len(doc.Lineups.HomeLineup)+len(doc.Lineups.AwayLineup)+
			len(doc.Lineups.HomeSubstitutes)+len(doc.Lineups.AwaySubstitutes))
	rows = s.appendLineupRows(ctx, rows, doc.ID, doc.HomeTeam.Ref, doc.Lineups.HomeLineup, true)
	rows = s.appendLineupRows(ctx, rows, doc.ID, doc.AwayTeam.Ref, doc.Lineups.AwayLineup, true)
	rows = s.appendLineupRows(ctx, rows, doc.ID, doc.HomeTeam.Ref, doc.Lineups.HomeSubstitutes, false)
	rows = s.appendLineupRows(ctx, rows, doc.ID, doc.AwayTeam.Ref, doc.Lineups.AwaySubstitutes, false)

	return rows
}

func (s *MatchService) appendLineupRows(ctx context.Context, rows []match.Lineup, matchID, teamID string, refs []DocumentRef, isStarter bool) []match.Lineup {
	for _, ref := range refs {
		playerID := strings.TrimSpace(ref.Ref)
		if playerID == "" {
			s.logger.WarnContext(ctx, "skipping lineup entry without player reference", "match_id", matchID, "team_id", teamID)
			continue
		}

		rows = append(rows, match.Lineup{
			MatchID:   matchID,
			PlayerID:  playerID,
			TeamID:    teamID,
			IsStarter: isStarter,
		})
	}

	return rows
}

// eventsFromDocument maps the CMS event array, dropping entries that lack a
// player reference or carry a type this system does not track.
func (s *MatchService) eventsFromDocument(ctx context.Context, doc WebhookDocument) []match.Event {
	if doc.Events == nil {
		return nil
	}

	rows := make([]match.Event, 0, len(doc.Events))
	for _, entry := range doc.Events {
		playerID := strings.TrimSpace(entry.Player.Ref)
		if playerID == "" {
			s.logger.WarnContext(ctx, "skipping match event without player reference", "match_id", doc.ID, "event_type", entry.Type)
			continue
		}

		eventType := match.NormalizeEventType(entry.Type)
		if !match.IsKnownEventType(eventType) {
			s.logger.WarnContext(ctx, "skipping match event with unknown type", "match_id", doc.ID, "event_type", entry.Type)
			continue
		}

		rows = append(rows, match.Event{
			MatchID:        doc.ID,
			PlayerID:       playerID,
			Minute:         entry.Minute,
			Type:           eventType,
			AssistPlayerID: strings.TrimSpace(entry.Assist.Ref),
			SubOffPlayerID: strings.TrimSpace(entry.PlayerOut.Ref),
			SubOnPlayerID:  strings.TrimSpace(entry.PlayerIn.Ref),
		})
	}

	return rows
}

type MatchInput struct {
	ID            string
	Date          time.Time
	HomeTeamID    string
	AwayTeamID    string
	SeasonID      string
	HomeScore     *int
	AwayScore     *int
	HomeFormation string
	AwayFormation string
	Division      string
}

// Upsert serves the CRUD surface; it shares the webhook path's season
// resolution and transaction discipline but touches no child rows.
func (s *MatchService) Upsert(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Upsert")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	if input.ID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}
	if input.HomeTeamID == "" || input.AwayTeamID == "" {
		return match.Match{}, fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if input.SeasonID == "" {
		return match.Match{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	resolvedSeason, err := s.seasons.Resolve(ctx, input.SeasonID)
	if err != nil {
		return match.Match{}, fmt.Errorf("resolve season for match %s: %w", input.ID, err)
	}

	item := match.Match{
		ID:            input.ID,
		Date:          input.Date.UTC(),
		HomeTeamID:    input.HomeTeamID,
		AwayTeamID:    input.AwayTeamID,
		SeasonID:      resolvedSeason.ID,
		HomeScore:     input.HomeScore,
		AwayScore:     input.AwayScore,
		HomeFormation: strings.TrimSpace(input.HomeFormation),
		AwayFormation: strings.TrimSpace(input.AwayFormation),
		Division:      team.NormalizeDivision(input.Division),
	}
	if err := s.matchRepo.UpsertWithChildren(ctx, item, nil, nil); err != nil {
		return match.Match{}, fmt.Errorf("upsert match: %w", err)
	}

	return item, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	deleted, err := s.matchRepo.Delete(ctx, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return nil
}
