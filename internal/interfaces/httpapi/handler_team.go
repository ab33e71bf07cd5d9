package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/acitysports/sports-backend/internal/usecase"
)

type teamUpsertRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=200"`
	LogoURL  string `json:"logoUrl" validate:"omitempty,url"`
	Coach    string `json:"coach" validate:"max=200"`
	Sport    string `json:"sport" validate:"required,max=100"`
	Division string `json:"division"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	sportFilter := strings.TrimSpace(r.URL.Query().Get("sportId"))
	if sportFilter == "" {
		sportFilter = strings.TrimSpace(r.URL.Query().Get("sport"))
	}

	teams, err := h.teamService.List(ctx, sportFilter)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "sport", sportFilter, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.GetByID(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	h.upsertTeam(ctx, w, r, "", http.StatusCreated)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	h.upsertTeam(ctx, w, r, teamID, http.StatusOK)
}

func (h *Handler) upsertTeam(ctx context.Context, w http.ResponseWriter, r *http.Request, pathID string, successStatus int) {
	var req teamUpsertRequest
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
			writeError(ctx, w, fmt.Errorf("%w: team id mismatch between path and payload", usecase.ErrInvalidInput))
			return
		}
	}

	item, err := h.teamService.Upsert(ctx, usecase.TeamInput{
		ID:       req.ID,
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		Coach:    req.Coach,
		Sport:    req.Sport,
		Division: req.Division,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert team failed", "team_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, successStatus, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
