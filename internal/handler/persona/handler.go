package persona

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/godbotdev/godbot/internal/model/persona"
	"github.com/godbotdev/godbot/pkg/utils"
)

// Handler serves persona listing, lookup, and creation.
type Handler struct {
	registry *persona.Registry
}

// New creates the persona handler.
func New(registry *persona.Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts the persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleList)
	r.Post("/personas", h.handleCreate)
	r.Get("/personas/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	personas, err := h.registry.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list personas")
		return
	}
	utils.RespondJSON(w, http.StatusOK, personas)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name           string   `json:"name"`
		Description    string   `json:"description"`
		SystemPrompt   string   `json:"system_prompt"`
		EmotionalState string   `json:"emotional_state"`
		Traits         []string `json:"traits"`
		Icon           string   `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.SystemPrompt == "" {
		utils.RespondError(w, http.StatusBadRequest, "name and system_prompt are required")
		return
	}
	if payload.EmotionalState == "" {
		payload.EmotionalState = "neutral"
	}
	if payload.Traits == nil {
		payload.Traits = []string{}
	}
	if payload.Icon == "" {
		payload.Icon = "Bot"
	}

	created, err := h.registry.Create(r.Context(), persona.Persona{
		Name:           payload.Name,
		Description:    payload.Description,
		SystemPrompt:   payload.SystemPrompt,
		EmotionalState: payload.EmotionalState,
		Traits:         payload.Traits,
		Icon:           payload.Icon,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create persona")
		return
	}

	utils.RespondJSON(w, http.StatusOK, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.registry.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "persona not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to resolve persona")
		return
	}

	utils.RespondJSON(w, http.StatusOK, p)
}
