package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/microviz/pkg/pipeline"
)

// NewHandler returns the routed handler with its middleware stack.
func NewHandler(runner *pipeline.Runner, logger *log.Logger, timeout time.Duration) http.Handler {
	h := &handler{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/types", h.types)
		r.Post("/render", h.render)
	})
	return r
}
