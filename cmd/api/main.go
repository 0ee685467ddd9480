package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/godbotdev/godbot/internal/config"
	"github.com/godbotdev/godbot/internal/handler"
	"github.com/godbotdev/godbot/internal/model/persona"
	aiService "github.com/godbotdev/godbot/internal/service/ai"
	chatService "github.com/godbotdev/godbot/internal/service/chat"
	"github.com/godbotdev/godbot/internal/store"
	"github.com/godbotdev/godbot/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded, using system environment only", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	registry := persona.NewRegistry(persona.Seed(), st)

	aiSvc, err := aiService.NewService(ctx, cfg.AI, log)
	if err != nil {
		log.Fatal("failed to initialize completion client", zap.Error(err))
	}
	if aiSvc.Connected() {
		log.Info("completion client initialized",
			zap.String("mode", cfg.AI.Mode),
			zap.String("model", cfg.AI.Model))
	}

	chatSvc := chatService.NewService(st, registry, aiSvc, log)

	router := handler.NewRouter(st, registry, chatSvc, aiSvc.Connected())

	startServer(ctx, cfg.Server, router, log)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log *zap.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("GodBot backend listening", zap.String("addr", serverCfg.Addr))
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
