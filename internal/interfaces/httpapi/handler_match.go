package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/acitysports/sports-backend/internal/usecase"
)

type matchUpsertRequest struct {
	ID            string `json:"id"`
	Date          string `json:"date" validate:"required"`
	HomeTeamID    string `json:"homeTeamId" validate:"required"`
	AwayTeamID    string `json:"awayTeamId" validate:"required"`
	SeasonID      string `json:"seasonId" validate:"required"`
	HomeScore     *int   `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore     *int   `json:"awayScore" validate:"omitempty,min=0"`
	HomeFormation string `json:"homeFormation"`
	AwayFormation string `json:"awayFormation"`
	Division      string `json:"division"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	seasonID := strings.TrimSpace(r.URL.Query().Get("seasonId"))
	matches, err := h.matchService.List(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListMatchLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchLineups")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	lineups, err := h.matchService.Lineups(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match lineups failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]lineupDTO, 0, len(lineups))
	for _, l := range lineups {
		items = append(items, lineupToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	events, err := h.matchService.Events(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	h.upsertMatch(ctx, w, r, "", http.StatusCreated)
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	h.upsertMatch(ctx, w, r, matchID, http.StatusOK)
}

func (h *Handler) upsertMatch(ctx context.Context, w http.ResponseWriter, r *http.Request, pathID string, successStatus int) {
	var req matchUpsertRequest
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
			writeError(ctx, w, fmt.Errorf("%w: match id mismatch between path and payload", usecase.ErrInvalidInput))
			return
		}
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.matchService.Upsert(ctx, usecase.MatchInput{
		ID:            req.ID,
		Date:          date,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		SeasonID:      req.SeasonID,
		HomeScore:     req.HomeScore,
		AwayScore:     req.AwayScore,
		HomeFormation: req.HomeFormation,
		AwayFormation: req.AwayFormation,
		Division:      req.Division,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert match failed", "match_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, successStatus, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
