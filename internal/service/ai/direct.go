package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/godbotdev/godbot/internal/config"
)

// arkCompleter is the direct-call strategy: a compiled eino chain over the
// Ark chat model SDK.
type arkCompleter struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

func newArkCompleter(ctx context.Context, cfg config.AIConfig) (*arkCompleter, error) {
	temp := float32(samplingTemperature)
	maxTokens := maxOutputTokens

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		Region:      cfg.Region,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &arkCompleter{chain: runnable}, nil
}

// Complete runs the chain with the system prompt, windowed history, and the
// new user message.
func (c *arkCompleter) Complete(ctx context.Context, systemPrompt string, history []*schema.Message, userMessage string) (string, error) {
	response, err := c.chain.Invoke(ctx, map[string]any{
		"system":  systemPrompt,
		"history": history,
		"query":   userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run completion chain: %w", err)
	}
	return response.Content, nil
}
