package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/godbotdev/godbot/internal/config"
)

func TestProxyCompleterAssemblesMessageList(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "generated reply"}},
			},
		})
	}))
	defer server.Close()

	completer := newProxyCompleter(config.AIConfig{
		Mode:    config.ModeProxy,
		BaseURL: server.URL,
		Model:   "test-model",
	})

	history := []*schema.Message{
		schema.UserMessage("earlier question"),
		schema.AssistantMessage("earlier answer", nil),
	}
	got, err := completer.Complete(context.Background(), "system prompt", history, "new question")
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if got != "generated reply" {
		t.Fatalf("unexpected reply: %q", got)
	}

	if len(captured.Messages) != 4 {
		t.Fatalf("expected 4 wire messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "system prompt" {
		t.Fatalf("system entry must come first, got %+v", captured.Messages[0])
	}
	if captured.Messages[3].Role != "user" || captured.Messages[3].Content != "new question" {
		t.Fatalf("new user message must come last, got %+v", captured.Messages[3])
	}
	if captured.Temperature != samplingTemperature {
		t.Fatalf("unexpected temperature: %v", captured.Temperature)
	}
	if captured.Model != "test-model" {
		t.Fatalf("unexpected model: %q", captured.Model)
	}
}

func TestProxyCompleterNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	completer := newProxyCompleter(config.AIConfig{
		Mode:    config.ModeProxy,
		BaseURL: server.URL,
		Model:   "test-model",
	})

	if _, err := completer.Complete(context.Background(), "s", nil, "q"); err == nil {
		t.Fatal("expected error for non-success status")
	}
}
