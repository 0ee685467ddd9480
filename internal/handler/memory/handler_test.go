package memory

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/godbotdev/godbot/internal/model/chat"
	"github.com/godbotdev/godbot/internal/store"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	r := chi.NewRouter()
	New(st).RegisterRoutes(r)
	return r
}

func postMemory(t *testing.T, r *chi.Mux, payload map[string]any) chat.MemoryItem {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/memory", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var item chat.MemoryItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return item
}

func TestAddMemoryDefaults(t *testing.T) {
	r := setupRouter(t)

	item := postMemory(t, r, map[string]any{
		"session_id": "sess-1",
		"content":    "user prefers terse replies",
	})

	if item.ID == "" {
		t.Fatal("expected a generated identifier")
	}
	if item.Importance != 0.5 {
		t.Fatalf("expected default importance 0.5, got %v", item.Importance)
	}
}

func TestListMemoryImportanceDescending(t *testing.T) {
	r := setupRouter(t)

	postMemory(t, r, map[string]any{"session_id": "sess-1", "content": "low", "importance": 0.1})
	postMemory(t, r, map[string]any{"session_id": "sess-1", "content": "high", "importance": 0.9})

	req := httptest.NewRequest(http.MethodGet, "/memory/sess-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var items []chat.MemoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Content != "high" {
		t.Fatalf("expected highest importance first, got %q", items[0].Content)
	}
}

func TestAddMemoryMissingFields(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/memory", bytes.NewReader([]byte(`{"content":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
