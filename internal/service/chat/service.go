// Package chat implements the request-handling pipeline: session creation,
// persona resolution, message persistence, completion, and response assembly.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/godbotdev/godbot/internal/model/chat"
	"github.com/godbotdev/godbot/internal/model/persona"
	"github.com/godbotdev/godbot/internal/store"
)

// historyFetchLimit bounds the store read backing the context window. The
// completion client re-truncates to its own, smaller window afterwards.
const historyFetchLimit = 20

// Generator produces the assistant reply for one exchange.
type Generator interface {
	Generate(ctx context.Context, p persona.Persona, history []chat.Message, userMessage string) (string, error)
}

// Request carries one inbound chat call.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	PersonaID string `json:"persona_id,omitempty"`
	Action    string `json:"action,omitempty"`
}

// Response references the assistant message produced for a Request.
type Response struct {
	ID           string         `json:"id"`
	SessionID    string         `json:"session_id"`
	Content      string         `json:"content"`
	PersonaID    string         `json:"persona_id,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	ActionResult map[string]any `json:"action_result,omitempty"`
}

// Service orchestrates one chat exchange per call. It holds no per-request
// state; concurrent calls against the same session are not serialized.
type Service struct {
	store     *store.Store
	personas  *persona.Registry
	generator Generator
	log       *zap.Logger
}

// NewService wires the orchestrator's collaborators.
func NewService(st *store.Store, personas *persona.Registry, generator Generator, log *zap.Logger) *Service {
	return &Service{
		store:     st,
		personas:  personas,
		generator: generator,
		log:       log,
	}
}

// Chat runs one exchange: ensure the session exists, resolve the persona,
// persist the user message, window history, generate the reply, persist it,
// and bump the session counters. Each step is independently durable; there is
// no rollback across steps.
func (s *Service) Chat(ctx context.Context, req Request) (Response, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Response{}, err
		}
		if err := s.store.InsertSession(ctx, chat.NewSession(sessionID, req.PersonaID)); err != nil {
			return Response{}, err
		}
	}

	personaID := req.PersonaID
	if personaID == "" {
		personaID = persona.DefaultID
	}
	resolved, err := s.personas.Resolve(ctx, personaID)
	if err != nil {
		// Unresolvable persona identifiers fall back to the command core
		// rather than failing the exchange.
		resolved = s.personas.Default()
	}

	userMessage := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   req.Message,
		PersonaID: personaID,
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]any{},
	}
	if err := s.store.InsertMessage(ctx, userMessage); err != nil {
		return Response{}, err
	}

	// Fetched after the user message is saved, so the window includes it.
	history, err := s.store.RecentMessages(ctx, sessionID, historyFetchLimit)
	if err != nil {
		return Response{}, err
	}

	content, err := s.generator.Generate(ctx, resolved, history, req.Message)
	if err != nil {
		return Response{}, err
	}

	assistantMessage := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   content,
		PersonaID: personaID,
		Timestamp: time.Now().UTC(),
		Metadata:  map[string]any{},
	}
	if err := s.store.InsertMessage(ctx, assistantMessage); err != nil {
		return Response{}, err
	}

	if err := s.store.TouchSession(ctx, sessionID, assistantMessage.Timestamp); err != nil {
		return Response{}, fmt.Errorf("failed to update session counters: %w", err)
	}

	s.log.Info("chat exchange completed",
		zap.String("session", sessionID),
		zap.String("persona", resolved.ID))

	return Response{
		ID:        assistantMessage.ID,
		SessionID: sessionID,
		Content:   content,
		PersonaID: personaID,
		Timestamp: assistantMessage.Timestamp,
	}, nil
}
