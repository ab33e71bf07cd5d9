package httpapi

import (
	"net/http"
)

// HandleWebhookUpsert ingests a Sanity create/update delivery. The
// dispatcher acknowledges unknown document types so the CMS never sees
// a failure for content this service does not track.
func (h *Handler) HandleWebhookUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HandleWebhookUpsert")
	defer span.End()

	doc, err := h.decodeWebhookBody(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.dispatcher.DispatchUpsert(ctx, doc); err != nil {
		h.logger.WarnContext(ctx, "webhook upsert failed", "document_type", doc.Type, "document_id", doc.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMessage(ctx, w, http.StatusOK, "webhook processed")
}

// HandleWebhookDelete ingests a Sanity delete delivery.
func (h *Handler) HandleWebhookDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HandleWebhookDelete")
	defer span.End()

	doc, err := h.decodeWebhookBody(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.dispatcher.DispatchDelete(ctx, doc); err != nil {
		h.logger.WarnContext(ctx, "webhook delete failed", "document_type", doc.Type, "document_id", doc.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMessage(ctx, w, http.StatusOK, "webhook processed")
}
