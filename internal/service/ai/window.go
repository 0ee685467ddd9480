package ai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/godbotdev/godbot/internal/model/chat"
)

// historyWindow bounds the trailing context supplied to the model,
// independent of how many messages the store returned.
const historyWindow = 10

// windowHistory converts the most recent stored messages into model context.
// A stored user role maps to the model's user role; every other role,
// assistant included, maps to the assistant role. The system prompt travels
// separately and never enters the window.
func windowHistory(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyWindow {
		startIdx = len(messages) - historyWindow
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		if msg.Role == chat.RoleUser {
			history = append(history, schema.UserMessage(msg.Content))
		} else {
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
