// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	POST /v1/render   render an input document (query: format, scale, title, class, input)
//	GET  /v1/types    registered chart types with their default pad and size
//	GET  /healthz     liveness probe
//
// The request body of /v1/render is an input document as read by package io.
// Its encoding comes from the "input" query parameter, else from the
// Content-Type (application/toml, application/yaml), else JSON.
//
// Successful renders answer with the artifact bytes and these headers:
//
//	X-Request-ID          echoed or generated request id
//	X-Microviz-Warnings   number of diagnostics on the model
//	X-Microviz-Cache      "hit" when the artifact came from cache, else "miss"
//
// Errors answer with {"error": "...", "code": "..."} and the status from
// errors.HTTPStatus.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microviz/pkg/pipeline"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// MaxBodyBytes bounds a render request body.
const MaxBodyBytes = 1 << 20

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger
	// RequestTimeout bounds each request. Zero means 30s.
	RequestTimeout time.Duration
}

// Server is an HTTP server for the render pipeline.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a server. A nil runner gets an uncached one.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewHandler(cfg.Runner, cfg.Logger, cfg.RequestTimeout),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
