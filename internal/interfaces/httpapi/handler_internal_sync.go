package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/acitysports/sports-backend/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type resyncRequest struct {
	Kinds      []string `json:"kinds" validate:"dive,required"`
	MaxWorkers int      `json:"maxWorkers" validate:"min=0,max=64"`
}

// RunResync replays the full CMS dataset through the webhook pipeline.
// The request body is optional; an empty body means all kinds with the
// configured worker count.
func (h *Handler) RunResync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResync")
	defer span.End()

	var req resyncRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resyncService.Resync(ctx, usecase.ResyncInput{
		Kinds:      req.Kinds,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "resync finished",
		"document_count", result.DocumentCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
