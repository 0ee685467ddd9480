package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/godbotdev/godbot/internal/handler/chat"
	memoryHandler "github.com/godbotdev/godbot/internal/handler/memory"
	personaHandler "github.com/godbotdev/godbot/internal/handler/persona"
	sessionHandler "github.com/godbotdev/godbot/internal/handler/session"
	statusHandler "github.com/godbotdev/godbot/internal/handler/status"
	middlewarePkg "github.com/godbotdev/godbot/internal/middleware"
	personaModel "github.com/godbotdev/godbot/internal/model/persona"
	chatService "github.com/godbotdev/godbot/internal/service/chat"
	"github.com/godbotdev/godbot/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(st *store.Store, registry *personaModel.Registry, chatSvc *chatService.Service, llmConnected bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		statusHandler.New(st, registry, llmConnected).RegisterRoutes(api)
		chatHandler.New(chatSvc).RegisterRoutes(api)
		personaHandler.New(registry).RegisterRoutes(api)
		sessionHandler.New(st).RegisterRoutes(api)
		memoryHandler.New(st).RegisterRoutes(api)
	})

	return r
}
