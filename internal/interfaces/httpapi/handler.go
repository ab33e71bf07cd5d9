package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/acitysports/sports-backend/internal/platform/logging"
	"github.com/acitysports/sports-backend/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	sportService  *usecase.SportService
	seasonService *usecase.SeasonService
	teamService   *usecase.TeamService
	playerService *usecase.PlayerService
	matchService  *usecase.MatchService
	dispatcher    *usecase.WebhookDispatcher
	resyncService *usecase.ResyncService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	sportService *usecase.SportService,
	seasonService *usecase.SeasonService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	dispatcher *usecase.WebhookDispatcher,
	resyncService *usecase.ResyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		sportService:  sportService,
		seasonService: seasonService,
		teamService:   teamService,
		playerService: playerService,
		matchService:  matchService,
		dispatcher:    dispatcher,
		resyncService: resyncService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Root")
	defer span.End()

	writeMessage(ctx, w, http.StatusOK, "sports backend api")
}

// decodeBody decodes a JSON request body into target, rejecting unknown
// fields. CMS webhook payloads bypass this and use decodeWebhookBody.
func (h *Handler) decodeBody(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeWebhookBody is lenient about unknown fields because Sanity sends
// the whole document, including attributes this service never reads.
func (h *Handler) decodeWebhookBody(ctx context.Context, r *http.Request) (usecase.WebhookDocument, error) {
	var doc usecase.WebhookDocument
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&doc); err != nil {
		if err == io.EOF {
			return doc, fmt.Errorf("%w: empty webhook payload", usecase.ErrInvalidInput)
		}
		return doc, fmt.Errorf("%w: invalid webhook payload: %v", usecase.ErrInvalidInput, err)
	}
	return doc, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
