package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/platform/logging"
	"github.com/acitysports/sports-backend/internal/platform/resilience"
)

// SeasonFetcher reads a single season document from the CMS. The second
// return reports whether the CMS has a document with that ID at all.
type SeasonFetcher interface {
	GetSeason(ctx context.Context, seasonID string) (season.Season, bool, error)
}

type SeasonService struct {
	seasonRepo season.Repository
	fetcher    SeasonFetcher
	logger     *logging.Logger
	resolve    resilience.SingleFlight
}

func NewSeasonService(seasonRepo season.Repository, fetcher SeasonFetcher, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		seasonRepo: seasonRepo,
		fetcher:    fetcher,
		logger:     logger,
	}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	return items, nil
}

func (s *SeasonService) GetByID(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetByID")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season by id: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}

// UpsertFromWebhook applies a seasons document delivered by the CMS.
func (s *SeasonService) UpsertFromWebhook(ctx context.Context, doc WebhookDocument) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpsertFromWebhook")
	defer span.End()

	if err := requireFields(map[string]string{
		"_id":   doc.ID,
		"title": doc.Title,
	}); err != nil {
		return season.Season{}, err
	}

	return s.Upsert(ctx, SeasonInput{
		ID:        doc.ID,
		Title:     doc.Title,
		StartDate: doc.StartDate,
		EndDate:   doc.EndDate,
	})
}

type SeasonInput struct {
	ID        string
	Title     string
	StartDate string
	EndDate   string
}

func (s *SeasonService) Upsert(ctx context.Context, input SeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Upsert")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.Title = strings.TrimSpace(input.Title)
	if input.ID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return season.Season{}, fmt.Errorf("%w: season title is required", ErrInvalidInput)
	}

	startDate, err := parseCMSDate(input.StartDate)
	if err != nil {
		return season.Season{}, fmt.Errorf("parse season start date: %w", err)
	}
	endDate, err := parseCMSDate(input.EndDate)
	if err != nil {
		return season.Season{}, fmt.Errorf("parse season end date: %w", err)
	}

	item := season.Season{
		ID:        input.ID,
		Title:     input.Title,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.seasonRepo.Upsert(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("upsert season: %w", err)
	}

	return item, nil
}

func (s *SeasonService) Delete(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	deleted, err := s.seasonRepo.Delete(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return nil
}

// Resolve returns the season row for a CMS reference, fetching the document
// from the CMS and materializing it locally on a miss. Season webhooks can
// arrive after the matches that reference them, so the miss path repairs the
// ordering once and later references resolve locally. Concurrent resolutions
// of the same season collapse into one CMS round trip.
func (s *SeasonService) Resolve(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Resolve")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season by id: %w", err)
	}
	if exists {
		return item, nil
	}

	val, err, shared := s.resolve.Do(seasonID, func() (any, error) {
		return s.resolveFromCMS(ctx, seasonID)
	})
	if err != nil {
		return season.Season{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "season resolution shared with concurrent caller", "season_id", seasonID)
	}

	return val.(season.Season), nil
}

func (s *SeasonService) resolveFromCMS(ctx context.Context, seasonID string) (season.Season, error) {
	if s.fetcher == nil {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrReferenceNotFound, seasonID)
	}

	fetched, exists, err := s.fetcher.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("%w: fetch season %s from cms: %v", ErrDependencyUnavailable, seasonID, err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrReferenceNotFound, seasonID)
	}

	if err := s.seasonRepo.Upsert(ctx, fetched); err != nil {
		return season.Season{}, fmt.Errorf("materialize season %s from cms: %w", seasonID, err)
	}

	s.logger.InfoContext(ctx, "season materialized from cms fallback", "season_id", seasonID, "title", fetched.Title)

	return fetched, nil
}
