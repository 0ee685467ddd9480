package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/godbotdev/godbot/internal/service/ai"
	chatService "github.com/godbotdev/godbot/internal/service/chat"
	"github.com/godbotdev/godbot/pkg/utils"
)

// Handler serves the chat endpoint.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatService.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := h.chatSvc.Chat(r.Context(), req)
	if err != nil {
		if errors.Is(err, ai.ErrUpstream) {
			utils.RespondError(w, http.StatusBadGateway, "completion upstream failed")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "chat exchange failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
