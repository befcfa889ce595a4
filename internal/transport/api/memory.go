package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/service/memory"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

type overwriteRequest struct {
	UserID   string            `json:"userId"`
	Memories []core.MemoryFact `json:"memories"`
}

type summarizeMemoryRequest struct {
	UserID   string         `json:"userId"`
	Messages []core.Message `json:"messages"`
}

type summarizeMemoryResponse struct {
	Success  bool              `json:"success"`
	Memories []core.MemoryFact `json:"memories"`
	Rejected int               `json:"rejected,omitempty"`
}

type summarizeRequest struct {
	Messages []core.Message `json:"messages"`
}

type summarizeResponse struct {
	Summary core.Recap `json:"summary"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func userIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("userId"))
	if id == "" {
		return "", badRequest("userId is required")
	}
	return id, nil
}

func (h *Handler) getMemory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	set, err := h.memory.Memory(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) getPrompt(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	prompt, err := h.memory.Prompt(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{Prompt: prompt})
}

func (h *Handler) putMemory(w http.ResponseWriter, r *http.Request) {
	var req overwriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, r, badRequest("userId is required"))
		return
	}
	if req.Memories == nil {
		writeError(w, r, badRequest("memories array is required"))
		return
	}

	if err := h.memory.Overwrite(r.Context(), req.UserID, req.Memories); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) summarizeMemory(w http.ResponseWriter, r *http.Request) {
	var req summarizeMemoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, r, badRequest("userId is required"))
		return
	}
	if req.Messages == nil {
		writeError(w, r, badRequest("messages array is required"))
		return
	}

	set, err := h.memory.Summarize(r.Context(), req.UserID, req.Messages)
	resp := summarizeMemoryResponse{Success: true, Memories: set.Facts}

	var invalid *memory.InvalidCandidateError
	switch {
	case errors.As(err, &invalid):
		resp.Rejected = len(invalid.Rejected)
	case err != nil:
		writeError(w, r, err)
		return
	}

	if resp.Memories == nil {
		resp.Memories = []core.MemoryFact{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Messages == nil {
		writeError(w, r, badRequest("messages array is required"))
		return
	}

	recap, err := h.recap.Recap(r.Context(), req.Messages)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarizeResponse{Summary: recap})
}
