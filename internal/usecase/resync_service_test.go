package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeDocumentLister serves canned documents per kind and records the order
// kinds were requested in.
type fakeDocumentLister struct {
	mu    sync.Mutex
	docs  map[string][]WebhookDocument
	order []string
	err   error
}

func (f *fakeDocumentLister) ListDocuments(_ context.Context, docType string) ([]WebhookDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.order = append(f.order, docType)
	return f.docs[docType], nil
}

func recordingDispatcher(processed *sync.Map, failIDs map[string]bool) *WebhookDispatcher {
	handler := func(_ context.Context, doc WebhookDocument) error {
		if failIDs[doc.ID] {
			return errors.New("simulated handler failure")
		}
		processed.Store(doc.ID, doc.Type)
		return nil
	}

	return NewWebhookDispatcher(map[string]WebhookHandler{
		DocumentTypeTeams:    handler,
		DocumentTypePlayers:  handler,
		DocumentTypeSeasons:  handler,
		DocumentTypeFixtures: handler,
	}, nil, nil)
}

func TestResyncService_ReplaysAllKindsInDependencyOrder(t *testing.T) {
	lister := &fakeDocumentLister{docs: map[string][]WebhookDocument{
		DocumentTypeSeasons:  {{Type: DocumentTypeSeasons, ID: "season-1"}},
		DocumentTypeTeams:    {{Type: DocumentTypeTeams, ID: "team-1"}, {Type: DocumentTypeTeams, ID: "team-2"}},
		DocumentTypePlayers:  {{Type: DocumentTypePlayers, ID: "player-1"}},
		DocumentTypeFixtures: {{Type: DocumentTypeFixtures, ID: "match-1"}},
	}}

	var processed sync.Map
	svc := NewResyncService(lister, recordingDispatcher(&processed, nil), 4, nil)

	result, err := svc.Resync(t.Context(), ResyncInput{})
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}

	wantOrder := []string{DocumentTypeSeasons, DocumentTypeTeams, DocumentTypePlayers, DocumentTypeFixtures}
	if len(lister.order) != len(wantOrder) {
		t.Fatalf("expected %d kinds listed, got %v", len(wantOrder), lister.order)
	}
	for i, kind := range wantOrder {
		if lister.order[i] != kind {
			t.Fatalf("kind %d: expected %s, got %s", i, kind, lister.order[i])
		}
	}

	if result.KindCount != 4 || result.DocumentCount != 5 || result.SuccessCount != 5 || result.FailedCount != 0 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if _, ok := processed.Load("match-1"); !ok {
		t.Fatal("expected match-1 to be replayed")
	}
}

func TestResyncService_KindFilter(t *testing.T) {
	lister := &fakeDocumentLister{docs: map[string][]WebhookDocument{
		DocumentTypeTeams:   {{Type: DocumentTypeTeams, ID: "team-1"}},
		DocumentTypeSeasons: {{Type: DocumentTypeSeasons, ID: "season-1"}},
	}}

	var processed sync.Map
	svc := NewResyncService(lister, recordingDispatcher(&processed, nil), 4, nil)

	// Requested out of order; the replay still runs seasons before teams.
	result, err := svc.Resync(t.Context(), ResyncInput{Kinds: []string{"Teams", "seasons"}})
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}

	if len(lister.order) != 2 || lister.order[0] != DocumentTypeSeasons || lister.order[1] != DocumentTypeTeams {
		t.Fatalf("unexpected kind order: %v", lister.order)
	}
	if result.KindCount != 2 || result.DocumentCount != 2 {
		t.Fatalf("unexpected totals: %+v", result)
	}
}

func TestResyncService_UnknownKind(t *testing.T) {
	var processed sync.Map
	svc := NewResyncService(&fakeDocumentLister{}, recordingDispatcher(&processed, nil), 4, nil)

	_, err := svc.Resync(t.Context(), ResyncInput{Kinds: []string{"standings"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestResyncService_CollectsFailuresSorted(t *testing.T) {
	lister := &fakeDocumentLister{docs: map[string][]WebhookDocument{
		DocumentTypeTeams: {
			{Type: DocumentTypeTeams, ID: "team-b"},
			{Type: DocumentTypeTeams, ID: "team-a"},
			{Type: DocumentTypeTeams, ID: "team-c"},
		},
	}}

	var processed sync.Map
	svc := NewResyncService(lister, recordingDispatcher(&processed, map[string]bool{"team-b": true, "team-a": true}), 4, nil)

	result, err := svc.Resync(t.Context(), ResyncInput{Kinds: []string{DocumentTypeTeams}})
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}

	if result.SuccessCount != 1 || result.FailedCount != 2 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	failures := result.Kinds[0].Failures
	if len(failures) != 2 || failures[0].DocumentID != "team-a" || failures[1].DocumentID != "team-b" {
		t.Fatalf("expected failures sorted by document id, got %+v", failures)
	}
}

func TestResyncService_ListerUnavailable(t *testing.T) {
	var processed sync.Map
	svc := NewResyncService(&fakeDocumentLister{err: errors.New("cms down")}, recordingDispatcher(&processed, nil), 4, nil)

	_, err := svc.Resync(t.Context(), ResyncInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestResyncService_NoLister(t *testing.T) {
	var processed sync.Map
	svc := NewResyncService(nil, recordingDispatcher(&processed, nil), 4, nil)

	_, err := svc.Resync(t.Context(), ResyncInput{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestResyncService_WorkerCapRespected(t *testing.T) {
	lister := &fakeDocumentLister{docs: map[string][]WebhookDocument{
		DocumentTypeTeams: {{Type: DocumentTypeTeams, ID: "team-1"}},
	}}

	var processed sync.Map
	svc := NewResyncService(lister, recordingDispatcher(&processed, nil), 2, nil)

	result, err := svc.Resync(t.Context(), ResyncInput{Kinds: []string{DocumentTypeTeams}, MaxWorkers: 64})
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected worker count capped at 2, got %d", result.WorkerCount)
	}
}
