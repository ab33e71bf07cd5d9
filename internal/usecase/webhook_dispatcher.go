package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/acitysports/sports-backend/internal/platform/logging"
)

const (
	DocumentTypeTeams    = "teams"
	DocumentTypeFixtures = "fixtures"
	DocumentTypeSeasons  = "seasons"
	DocumentTypePlayers  = "players"
)

// WebhookHandler processes one CMS document of a single type.
type WebhookHandler func(ctx context.Context, doc WebhookDocument) error

// WebhookDispatcher routes CMS change notifications to per-type handlers.
// The registries are fixed at construction; a document type without a
// handler is logged and acknowledged rather than failed, so CMS schema
// additions do not break deliveries.
type WebhookDispatcher struct {
	upsertHandlers map[string]WebhookHandler
	deleteHandlers map[string]WebhookHandler
	logger         *logging.Logger
}

func NewWebhookDispatcher(
	upsertHandlers map[string]WebhookHandler,
	deleteHandlers map[string]WebhookHandler,
	logger *logging.Logger,
) *WebhookDispatcher {
	if logger == nil {
		logger = logging.Default()
	}

	return &WebhookDispatcher{
		upsertHandlers: upsertHandlers,
		deleteHandlers: deleteHandlers,
		logger:         logger,
	}
}

// NewDefaultWebhookDispatcher wires the standard registries over the entity
// services.
func NewDefaultWebhookDispatcher(
	teams *TeamService,
	players *PlayerService,
	seasons *SeasonService,
	matches *MatchService,
	logger *logging.Logger,
) *WebhookDispatcher {
	upsertHandlers := map[string]WebhookHandler{
		DocumentTypeTeams: func(ctx context.Context, doc WebhookDocument) error {
			_, err := teams.UpsertFromWebhook(ctx, doc)
			return err
		},
		DocumentTypePlayers: func(ctx context.Context, doc WebhookDocument) error {
			_, err := players.UpsertFromWebhook(ctx, doc)
			return err
		},
		DocumentTypeSeasons: func(ctx context.Context, doc WebhookDocument) error {
			_, err := seasons.UpsertFromWebhook(ctx, doc)
			return err
		},
		DocumentTypeFixtures: func(ctx context.Context, doc WebhookDocument) error {
			_, err := matches.UpsertFromWebhook(ctx, doc)
			return err
		},
	}

	deleteHandlers := map[string]WebhookHandler{
		DocumentTypeTeams: func(ctx context.Context, doc WebhookDocument) error {
			return teams.Delete(ctx, doc.ID)
		},
		DocumentTypePlayers: func(ctx context.Context, doc WebhookDocument) error {
			return players.Delete(ctx, doc.ID)
		},
		DocumentTypeSeasons: func(ctx context.Context, doc WebhookDocument) error {
			return seasons.Delete(ctx, doc.ID)
		},
		DocumentTypeFixtures: func(ctx context.Context, doc WebhookDocument) error {
			return matches.Delete(ctx, doc.ID)
		},
	}

	return NewWebhookDispatcher(upsertHandlers, deleteHandlers, logger)
}

// DispatchUpsert routes a create/update notification. Unknown document
// types succeed trivially.
func (d *WebhookDispatcher) DispatchUpsert(ctx context.Context, doc WebhookDocument) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.WebhookDispatcher.DispatchUpsert")
	defer span.End()

	return d.dispatch(ctx, d.upsertHandlers, "upsert", doc)
}

// DispatchDelete routes a deletion notification. Only the document ID is
// required; its absence is a validation failure.
func (d *WebhookDispatcher) DispatchDelete(ctx context.Context, doc WebhookDocument) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.WebhookDispatcher.DispatchDelete")
	defer span.End()

	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("%w: missing required fields: _id", ErrInvalidInput)
	}

	return d.dispatch(ctx, d.deleteHandlers, "delete", doc)
}

func (d *WebhookDispatcher) dispatch(ctx context.Context, registry map[string]WebhookHandler, class string, doc WebhookDocument) error {
	docType := strings.TrimSpace(doc.Type)
	d.logger.InfoContext(ctx, "dispatching cms webhook", "class", class, "document_type", docType, "document_id", doc.ID)

	handler, ok := registry[docType]
	if !ok {
		d.logger.InfoContext(ctx, "no handler registered for document type", "class", class, "document_type", docType, "document_id", doc.ID)
		return nil
	}

	if err := handler(ctx, doc); err != nil {
		return fmt.Errorf("handle %s for type %s id %s: %w", class, docType, doc.ID, err)
	}

	return nil
}
