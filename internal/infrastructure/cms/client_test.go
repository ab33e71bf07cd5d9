package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/acitysports/sports-backend/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Dataset:    "production",
		APIVersion: "2025-02-06",
		Token:      "cms-token",
		Logger:     logging.NewNop(),
	})
}

func TestClientGetSeason_ParsesDocument(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v2025-02-06/data/query/production" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer cms-token" {
			t.Fatalf("unexpected authorization header: %s", got)
		}
		if got := r.URL.Query().Get("$id"); got != `"season-1"` {
			t.Fatalf("unexpected $id param: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"_id":       "season-1",
				"title":     "2025/26",
				"startDate": "2025-08-01",
				"endDate":   "2026-05-31",
			},
		})
	})

	item, exists, err := client.GetSeason(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("get season failed: %v", err)
	}
	if !exists {
		t.Fatal("expected season to exist")
	}
	if item.ID != "season-1" || item.Title != "2025/26" {
		t.Fatalf("unexpected season: %+v", item)
	}
	if item.StartDate == nil || !item.StartDate.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start date: %v", item.StartDate)
	}
}

func TestClientGetSeason_MissingDocument(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": null}`))
	})

	_, exists, err := client.GetSeason(context.Background(), "season-missing")
	if err != nil {
		t.Fatalf("get season failed: %v", err)
	}
	if exists {
		t.Fatal("expected season to be absent")
	}
}

func TestClientListDocuments_DecodesWebhookShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("$type"); got != `"teams"` {
			t.Fatalf("unexpected $type param: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": [
			{"_id": "team-1", "_type": "teams", "name": "Lions", "sport": "Soccer", "division": "women",
			 "logo": {"asset": {"url": "https://cdn.example/lions.png"}}}
		]}`))
	})

	docs, err := client.ListDocuments(context.Background(), "teams")
	if err != nil {
		t.Fatalf("list documents failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ID != "team-1" || docs[0].Name != "Lions" {
		t.Fatalf("unexpected document: %+v", docs[0])
	}
	if docs[0].Logo.Asset.URL != "https://cdn.example/lions.png" {
		t.Fatalf("unexpected logo url: %s", docs[0].Logo.Asset.URL)
	}
}

func TestClientQuery_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "unauthorized"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	_, _, err := client.GetSeason(context.Background(), "season-1")
	if err == nil {
		t.Fatal("expected error for unauthorized response")
	}
	if calls != 1 {
		t.Fatalf("expected no retries on 401, got %d calls", calls)
	}
}
