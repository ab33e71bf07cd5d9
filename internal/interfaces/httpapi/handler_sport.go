package httpapi

import (
	"net/http"
	"strings"
)

type sportUpsertRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	sports, err := h.sportService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list sports failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sportDTO, 0, len(sports))
	for _, s := range sports {
		items = append(items, sportToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSport")
	defer span.End()

	sportID := strings.TrimSpace(r.PathValue("sportID"))
	item, err := h.sportService.GetByID(ctx, sportID)
	if err != nil {
		h.logger.WarnContext(ctx, "get sport failed", "sport_id", sportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportToDTO(item))
}

func (h *Handler) CreateSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSport")
	defer span.End()

	var req sportUpsertRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.sportService.Create(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create sport failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sportToDTO(item))
}

func (h *Handler) UpdateSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSport")
	defer span.End()

	sportID := strings.TrimSpace(r.PathValue("sportID"))
	var req sportUpsertRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.sportService.Update(ctx, sportID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "update sport failed", "sport_id", sportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sportToDTO(item))
}

func (h *Handler) DeleteSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSport")
	defer span.End()

	sportID := strings.TrimSpace(r.PathValue("sportID"))
	if err := h.sportService.Delete(ctx, sportID); err != nil {
		h.logger.WarnContext(ctx, "delete sport failed", "sport_id", sportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
