// Package ai implements the completion client: strategy selection between a
// direct model-SDK call and a proxied HTTP call, trailing-history windowing,
// and the deterministic fallback used when the upstream fails.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/godbotdev/godbot/internal/config"
	"github.com/godbotdev/godbot/internal/model/chat"
	"github.com/godbotdev/godbot/internal/model/persona"
)

// Fixed completion parameters. A single failed attempt goes straight to the
// fallback path; there are no retries.
const (
	completionTimeout   = 60 * time.Second
	samplingTemperature = 0.7
	maxOutputTokens     = 1024
)

// ErrUpstream reports a completion failure when the fallback is disabled.
var ErrUpstream = errors.New("completion upstream failed")

// Completer sends one assembled completion request upstream.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []*schema.Message, userMessage string) (string, error)
}

// Service generates assistant replies for the chat pipeline.
type Service struct {
	completer       Completer
	fallbackEnabled bool
	log             *zap.Logger
}

// NewService selects the completion strategy from configuration. When no
// upstream credentials are present, every request takes the fallback path;
// that combination is rejected if the fallback is also disabled.
func NewService(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*Service, error) {
	svc := &Service{fallbackEnabled: cfg.FallbackEnabled, log: log}

	if !cfg.Enabled() {
		if !cfg.FallbackEnabled {
			return nil, fmt.Errorf("completion credentials missing and fallback disabled")
		}
		log.Warn("completion credentials missing, every reply will use fallback templates")
		return svc, nil
	}

	switch cfg.Mode {
	case config.ModeProxy:
		svc.completer = newProxyCompleter(cfg)
	default:
		completer, err := newArkCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc.completer = completer
	}
	return svc, nil
}

// NewServiceWithCompleter wires an explicit strategy, used by tests.
func NewServiceWithCompleter(completer Completer, fallbackEnabled bool, log *zap.Logger) *Service {
	return &Service{completer: completer, fallbackEnabled: fallbackEnabled, log: log}
}

// Connected reports whether an upstream strategy is configured.
func (s *Service) Connected() bool {
	return s.completer != nil
}

// Generate produces the assistant reply for one exchange. On upstream failure
// it returns the persona's fallback template unless the fallback is disabled,
// in which case the error is surfaced wrapped in ErrUpstream.
func (s *Service) Generate(ctx context.Context, p persona.Persona, history []chat.Message, userMessage string) (string, error) {
	windowed := windowHistory(history)

	if s.completer != nil {
		callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
		defer cancel()

		text, err := s.completer.Complete(callCtx, p.SystemPrompt, windowed, userMessage)
		if err == nil {
			return text, nil
		}
		s.log.Warn("completion failed",
			zap.String("persona", p.ID),
			zap.Error(err))
		if !s.fallbackEnabled {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	} else if !s.fallbackEnabled {
		return "", ErrUpstream
	}

	return Fallback(userMessage, p.Name), nil
}
