package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cardscan/internal/config"
	"cardscan/internal/export"
	"cardscan/internal/history"
	"cardscan/internal/logging"
	"cardscan/internal/notifications"
	"cardscan/internal/pipeline"
	"cardscan/internal/reconcile"
)

// Server wires the pipeline, history, and exporter into a gin engine.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipe     *pipeline.Pipeline
	store    *history.Store
	gate     *reconcile.Gate
	exporter *export.Exporter
	notifier notifications.Service
	hub      *Hub
	engine   *gin.Engine
}

// New builds a server and registers all routes.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	pipe *pipeline.Pipeline,
	store *history.Store,
	gate *reconcile.Gate,
	exporter *export.Exporter,
	notifier notifications.Service,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "server"),
		pipe:     pipe,
		store:    store,
		gate:     gate,
		exporter: exporter,
		notifier: notifier,
		hub:      NewHub(),
		engine:   engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/ws", bearerAuth(s.cfg.Paths.APIToken), s.handleWebsocket)

	api := s.engine.Group("/api", bearerAuth(s.cfg.Paths.APIToken))
	{
		api.POST("/scans", s.handleStartScan)
		api.GET("/scans/current", s.handleCurrentScan)
		api.POST("/scans/current/confirm", s.handleConfirmScan)
		api.POST("/scans/current/ack", s.handleAcknowledge)
		api.DELETE("/scans/current", s.handleDismissScan)

		api.GET("/cards", s.handleListCards)
		api.GET("/cards/:id", s.handleGetCard)
		api.PUT("/cards/:id", s.handleEditCard)
		api.DELETE("/cards/:id", s.handleDeleteCard)
		api.DELETE("/cards", s.handleClearCards)

		api.GET("/export.csv", s.handleExport)
	}
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully. The event
// pump forwarding pipeline events to websocket clients runs for the same
// lifetime.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Paths.APIBind,
		Handler: s.engine,
	}

	go s.pumpEvents(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("api listening", logging.String("bind", s.cfg.Paths.APIBind))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-errCh:
		return err
	}
}

func (s *Server) pumpEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.pipe.Events():
			if !ok {
				return
			}
			s.hub.BroadcastJSON(event)
		}
	}
}
