package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godbotdev/godbot/internal/model/chat"
	"github.com/godbotdev/godbot/internal/store"
)

func setupRouter(t *testing.T) (*chi.Mux, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	r := chi.NewRouter()
	New(st).RegisterRoutes(r)
	return r, st
}

func seedSession(t *testing.T, st *store.Store, id string, messages int) {
	t.Helper()
	ctx := context.Background()
	if err := st.InsertSession(ctx, chat.NewSession(id, "")); err != nil {
		t.Fatalf("InsertSession err: %v", err)
	}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < messages; i++ {
		err := st.InsertMessage(ctx, chat.Message{
			ID:        id + "-msg-" + string(rune('a'+i)),
			SessionID: id,
			Role:      chat.RoleUser,
			Content:   "hi",
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Metadata:  map[string]any{},
		})
		if err != nil {
			t.Fatalf("InsertMessage err: %v", err)
		}
	}
}

func TestGetSessionNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListSessionMessages(t *testing.T) {
	r, st := setupRouter(t)
	seedSession(t, st, "sess-1", 3)

	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/messages", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var messages []chat.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if !messages[0].Timestamp.Before(messages[1].Timestamp) {
		t.Fatal("messages should be in ascending order")
	}
}

func TestListSessionMessagesInvalidLimit(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/messages?limit=zero", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	r, st := setupRouter(t)
	seedSession(t, st, "sess-1", 2)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/sess-1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/sessions/sess-1/messages", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var messages []chat.Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages after delete, got %d", len(messages))
	}
}
