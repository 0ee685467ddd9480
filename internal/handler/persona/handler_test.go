package persona

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/godbotdev/godbot/internal/model/persona"
	"github.com/godbotdev/godbot/internal/store"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	registry := personaModel.NewRegistry(personaModel.Seed(), st)

	r := chi.NewRouter()
	New(registry).RegisterRoutes(r)
	return r
}

func TestListPersonas(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var personas []personaModel.Persona
	if err := json.NewDecoder(resp.Body).Decode(&personas); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(personas) != 4 {
		t.Fatalf("expected the 4 built-ins, got %d", len(personas))
	}
}

func TestGetBuiltinPersona(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/personas/godmind-default", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestGetUnknownPersona(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/personas/does-not-exist", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCreateAndResolvePersona(t *testing.T) {
	r := setupRouter(t)

	payload, _ := json.Marshal(map[string]any{
		"name":          "ORACLE",
		"description":   "sees all",
		"system_prompt": "You are ORACLE.",
		"traits":        []string{"wise"},
	})
	req := httptest.NewRequest(http.MethodPost, "/personas", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var created personaModel.Persona
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated identifier")
	}
	if created.EmotionalState != "neutral" {
		t.Fatalf("expected default emotional_state, got %s", created.EmotionalState)
	}
	if created.Icon != "Bot" {
		t.Fatalf("expected default icon, got %s", created.Icon)
	}

	req = httptest.NewRequest(http.MethodGet, "/personas/"+created.ID, nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for created persona, got %d", resp.Code)
	}
}

func TestCreatePersonaMissingFields(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/personas", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
