// Package api exposes the memory service over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sandevgo/tuskmem/internal/core"
)

const requestTimeout = 60 * time.Second

// MemoryService is the part of memory.Consolidator the HTTP layer needs.
type MemoryService interface {
	Memory(ctx context.Context, userID string) (core.MemorySet, error)
	Prompt(ctx context.Context, userID string) (string, error)
	Summarize(ctx context.Context, userID string, transcript []core.Message) (core.MemorySet, error)
	Overwrite(ctx context.Context, userID string, facts []core.MemoryFact) error
}

type Handler struct {
	memory MemoryService
	recap  core.Summarizer
}

// NewHandler wires the memory routes. A nil summarizer leaves /api/summarize
// unregistered.
func NewHandler(memory MemoryService, recap core.Summarizer) *Handler {
	return &Handler{memory: memory, recap: recap}
}

// Router builds the chi router. Every request gets an X-Request-ID and a
// request-scoped logger derived from base.
func (h *Handler) Router(base context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(base))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/memory", h.getMemory)
		r.Post("/memory", h.putMemory)
		r.Get("/memory/prompt", h.getPrompt)
		r.Post("/memory/summarize", h.summarizeMemory)
		if h.recap != nil {
			r.Post("/summarize", h.summarize)
		}
	})

	return r
}
