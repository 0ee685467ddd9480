package ai

import (
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/godbotdev/godbot/internal/model/chat"
)

func makeMessages(n int) []chat.Message {
	messages := make([]chat.Message, 0, n)
	for i := 0; i < n; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		messages = append(messages, chat.Message{
			Role:    role,
			Content: fmt.Sprintf("message %d", i),
		})
	}
	return messages
}

func TestWindowHistoryKeepsLastTen(t *testing.T) {
	got := windowHistory(makeMessages(15))

	if len(got) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(got))
	}
	if got[0].Content != "message 5" {
		t.Fatalf("window should start at the 6th message, got %q", got[0].Content)
	}
	if got[9].Content != "message 14" {
		t.Fatalf("window should end at the newest message, got %q", got[9].Content)
	}
}

func TestWindowHistoryShortSession(t *testing.T) {
	got := windowHistory(makeMessages(3))
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
}

func TestWindowHistoryEmpty(t *testing.T) {
	if got := windowHistory(nil); got != nil {
		t.Fatalf("expected nil window, got %v", got)
	}
}

func TestWindowHistoryRoleMapping(t *testing.T) {
	messages := []chat.Message{
		{Role: chat.RoleUser, Content: "u"},
		{Role: chat.RoleAssistant, Content: "a"},
		{Role: chat.RoleSystem, Content: "s"},
	}

	got := windowHistory(messages)
	if got[0].Role != schema.User {
		t.Fatalf("user role should map to user, got %s", got[0].Role)
	}
	if got[1].Role != schema.Assistant {
		t.Fatalf("assistant role should map to assistant, got %s", got[1].Role)
	}
	// Non-user roles, system included, map to the assistant role.
	if got[2].Role != schema.Assistant {
		t.Fatalf("system role should map to assistant, got %s", got[2].Role)
	}
}
