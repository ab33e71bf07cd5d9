package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/acitysports/sports-backend/internal/usecase"
)

type seasonUpsertRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required,max=200"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.GetByID(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	h.upsertSeason(ctx, w, r, "", http.StatusCreated)
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	h.upsertSeason(ctx, w, r, seasonID, http.StatusOK)
}

func (h *Handler) upsertSeason(ctx context.Context, w http.ResponseWriter, r *http.Request, pathID string, successStatus int) {
	var req seasonUpsertRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if pathID != "" {
		if strings.TrimSpace(req.ID) == "" {
			req.ID = pathID
		} else if strings.TrimSpace(req.ID) != pathID {
			writeError(ctx, w, fmt.Errorf("%w: season id mismatch between path and payload", usecase.ErrInvalidInput))
			return
		}
	}

	item, err := h.seasonService.Upsert(ctx, usecase.SeasonInput{
		ID:        req.ID,
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert season failed", "season_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, successStatus, seasonToDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	if err := h.seasonService.Delete(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
