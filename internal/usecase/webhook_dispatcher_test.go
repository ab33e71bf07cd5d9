package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestWebhookDispatcher_RoutesByDocumentType(t *testing.T) {
	var upserts, deletes []string
	record := func(bucket *[]string) WebhookHandler {
		return func(_ context.Context, doc WebhookDocument) error {
			*bucket = append(*bucket, doc.Type+":"+doc.ID)
			return nil
		}
	}

	dispatcher := NewWebhookDispatcher(
		map[string]WebhookHandler{
			DocumentTypeTeams:    record(&upserts),
			DocumentTypeFixtures: record(&upserts),
		},
		map[string]WebhookHandler{
			DocumentTypeTeams: record(&deletes),
		},
		nil,
	)

	if err := dispatcher.DispatchUpsert(t.Context(), WebhookDocument{Type: DocumentTypeTeams, ID: "team-1"}); err != nil {
		t.Fatalf("dispatch upsert failed: %v", err)
	}
	if err := dispatcher.DispatchUpsert(t.Context(), WebhookDocument{Type: DocumentTypeFixtures, ID: "match-1"}); err != nil {
		t.Fatalf("dispatch upsert failed: %v", err)
	}
	if err := dispatcher.DispatchDelete(t.Context(), WebhookDocument{Type: DocumentTypeTeams, ID: "team-1"}); err != nil {
		t.Fatalf("dispatch delete failed: %v", err)
	}

	if len(upserts) != 2 || upserts[0] != "teams:team-1" || upserts[1] != "fixtures:match-1" {
		t.Fatalf("unexpected upsert routing: %v", upserts)
	}
	if len(deletes) != 1 || deletes[0] != "teams:team-1" {
		t.Fatalf("unexpected delete routing: %v", deletes)
	}
}

func TestWebhookDispatcher_UnknownTypeIsNoOp(t *testing.T) {
	dispatcher := NewWebhookDispatcher(
		map[string]WebhookHandler{
			DocumentTypeTeams: func(context.Context, WebhookDocument) error {
				t.Fatal("handler must not run for unknown types")
				return nil
			},
		},
		nil,
		nil,
	)

	if err := dispatcher.DispatchUpsert(t.Context(), WebhookDocument{Type: "standings", ID: "s-1"}); err != nil {
		t.Fatalf("unknown type should be acknowledged, got %v", err)
	}
	if err := dispatcher.DispatchDelete(t.Context(), WebhookDocument{Type: "standings", ID: "s-1"}); err != nil {
		t.Fatalf("unknown type delete should be acknowledged, got %v", err)
	}
}

func TestWebhookDispatcher_DeleteRequiresID(t *testing.T) {
	dispatcher := NewWebhookDispatcher(nil, map[string]WebhookHandler{
		DocumentTypeTeams: func(context.Context, WebhookDocument) error { return nil },
	}, nil)

	err := dispatcher.DispatchDelete(t.Context(), WebhookDocument{Type: DocumentTypeTeams})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWebhookDispatcher_HandlerErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	dispatcher := NewWebhookDispatcher(map[string]WebhookHandler{
		DocumentTypeTeams: func(context.Context, WebhookDocument) error { return boom },
	}, nil, nil)

	err := dispatcher.DispatchUpsert(t.Context(), WebhookDocument{Type: DocumentTypeTeams, ID: "team-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
}
