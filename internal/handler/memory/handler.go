package memory

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/godbotdev/godbot/internal/model/chat"
	"github.com/godbotdev/godbot/internal/store"
	"github.com/godbotdev/godbot/pkg/utils"
)

const (
	memoryListLimit   = 100
	defaultImportance = 0.5
)

// Handler serves the memory side ledger. Items are created only through this
// surface; the chat pipeline never writes here.
type Handler struct {
	store *store.Store
}

// New creates the memory handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the memory routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/memory/{sessionID}", h.handleList)
	r.Post("/memory", h.handleAdd)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	items, err := h.store.MemoryBySession(r.Context(), sessionID, memoryListLimit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list memory items")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID         string   `json:"id"`
		SessionID  string   `json:"session_id"`
		Content    string   `json:"content"`
		Importance *float64 `json:"importance"`
		Tags       []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id and content are required")
		return
	}

	item := chat.MemoryItem{
		ID:         payload.ID,
		SessionID:  payload.SessionID,
		Content:    payload.Content,
		Importance: defaultImportance,
		Tags:       payload.Tags,
		CreatedAt:  time.Now().UTC(),
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if payload.Importance != nil {
		item.Importance = *payload.Importance
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := h.store.InsertMemory(r.Context(), item); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to store memory item")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
