// Package server provides the HTTP API for Annai.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/annai/internal/config"
	"github.com/hyperjump/annai/internal/history"
	"github.com/hyperjump/annai/internal/keyword"
	"github.com/hyperjump/annai/internal/router"
)

// Server is the HTTP server for the Annai API.
type Server struct {
	engine  *router.Engine
	histLog *history.Log
	keyword *keyword.Index
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. histLog and kw may
// be nil; the corresponding endpoints then report that the feature is
// disabled.
func NewServer(
	engine *router.Engine,
	histLog *history.Log,
	kw *keyword.Index,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  engine,
		histLog: histLog,
		keyword: kw,
		config:  cfg,
		logger:  logger,
	}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/route", s.handleRoute)
	r.Post("/api/v1/execute", s.handleExecute)
	r.Get("/api/v1/models", s.handleModels)
	r.Get("/api/v1/history", s.handleHistory)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
