package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/acitysports/sports-backend/internal/usecase"
)

type playerUpsertRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required,max=200"`
	TeamID       string   `json:"teamId"`
	Positions    []string `json:"positions" validate:"dive,required"`
	JerseyNumber int      `json:"jerseyNumber" validate:"min=0"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	filter := usecase.PlayerFilter{
		TeamID:        strings.TrimSpace(query.Get("teamId")),
		SportIDOrName: strings.TrimSpace(query.Get("sportId")),
	}
	if filter.SportIDOrName == "" {
		filter.SportIDOrName = strings.TrimSpace(query.Get("sport"))
	}

	players, err := h.playerService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", filter.TeamID, "sport", filter.SportIDOrName, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.GetByID(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	h.upsertPlayer(ctx, w, r, "", http.StatusCreated)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	h.upsertPlayer(ctx, w, r, playerID, http.StatusOK)
}

func (h *Handler) upsertPlayer(ctx context.Context, w http.ResponseWriter, r *http.Request, pathID string, successStatus int) {
	var req playerUpsertRequest
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
			writeError(ctx, w, fmt.Errorf("%w: player id mismatch between path and payload", usecase.ErrInvalidInput))
			return
		}
	}

	item, err := h.playerService.Upsert(ctx, usecase.PlayerInput{
		ID:           req.ID,
		Name:         req.Name,
		TeamID:       req.TeamID,
		Positions:    req.Positions,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert player failed", "player_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, successStatus, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
