package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/godbotdev/godbot/internal/model/persona"
	"github.com/godbotdev/godbot/internal/store"
	"github.com/godbotdev/godbot/pkg/utils"
)

// SystemStatus is the health snapshot returned by the status endpoint.
type SystemStatus struct {
	Status         string `json:"status"`
	LLMConnected   bool   `json:"llm_connected"`
	DBConnected    bool   `json:"db_connected"`
	ActiveSessions int    `json:"active_sessions"`
	TotalMessages  int    `json:"total_messages"`
	PersonasCount  int    `json:"personas_count"`
}

// Handler serves the banner and health endpoints.
type Handler struct {
	store        *store.Store
	registry     *persona.Registry
	llmConnected bool
}

// New creates the status handler.
func New(st *store.Store, registry *persona.Registry, llmConnected bool) *Handler {
	return &Handler{store: st, registry: registry, llmConnected: llmConnected}
}

// RegisterRoutes mounts the banner and status routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleBanner)
	r.Get("/status", h.handleStatus)
}

func (h *Handler) handleBanner(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "GodBot API v1.0 - Command Core Online",
	})
}

// handleStatus reports storage failures as a health flag instead of failing
// the request.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbConnected := h.store.Ping(ctx) == nil

	var sessions, messages, customPersonas int
	if dbConnected {
		var err error
		if sessions, err = h.store.CountSessions(ctx); err != nil {
			dbConnected = false
		}
		if messages, err = h.store.CountMessages(ctx); err != nil {
			dbConnected = false
		}
		if customPersonas, err = h.store.CountPersonas(ctx); err != nil {
			dbConnected = false
		}
	}

	status := "operational"
	if !dbConnected || !h.llmConnected {
		status = "degraded"
	}

	utils.RespondJSON(w, http.StatusOK, SystemStatus{
		Status:         status,
		LLMConnected:   h.llmConnected,
		DBConnected:    dbConnected,
		ActiveSessions: sessions,
		TotalMessages:  messages,
		PersonasCount:  customPersonas + len(h.registry.Builtins()),
	})
}
