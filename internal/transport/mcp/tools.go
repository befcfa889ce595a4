package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/service/memory"
	"github.com/sandevgo/tuskmem/pkg/log"
)

const (
	getToolName      = "memory_get"
	promptToolName   = "memory_prompt"
	rememberToolName = "memory_remember"
)

var (
	getTool = mcp.NewTool(getToolName,
		mcp.WithDescription("Return the long-term memories stored for a user as JSON."),
		mcp.WithString("userId", mcp.Required(), mcp.Description("User whose memories to read")),
	)

	promptTool = mcp.NewTool(promptToolName,
		mcp.WithDescription("Render a user's memories as a system prompt fragment. Empty when nothing is remembered."),
		mcp.WithString("userId", mcp.Required(), mcp.Description("User whose memories to render")),
	)

	rememberTool = mcp.NewTool(rememberToolName,
		mcp.WithDescription("Remember one durable fact about a user. Similar facts are reinforced instead of duplicated."),
		mcp.WithString("userId", mcp.Required(), mcp.Description("User the fact is about")),
		mcp.WithString("content", mcp.Required(), mcp.Description("The fact as a natural sentence")),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Kind of fact"),
			mcp.Enum(
				string(core.CategoryEmotion),
				string(core.CategoryInterest),
				string(core.CategoryGoal),
				string(core.CategoryCharacteristic),
			),
		),
	)
)

func (s *Server) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	set, err := s.memory.Memory(ctx, userID)
	if err != nil {
		return toolError(ctx, getToolName, err), nil
	}
	return jsonResult(set)
}

func (s *Server) handlePrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prompt, err := s.memory.Prompt(ctx, userID)
	if err != nil {
		return toolError(ctx, promptToolName, err), nil
	}
	return mcp.NewToolResultText(prompt), nil
}

func (s *Server) handleRemember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	set, err := s.memory.Consolidate(ctx, userID, []core.CandidateFact{
		{Content: content, Category: core.Category(category)},
	})
	var invalid *memory.InvalidCandidateError
	if errors.As(err, &invalid) {
		return mcp.NewToolResultError(invalid.Rejected[0].Err.Error()), nil
	}
	if err != nil {
		return toolError(ctx, rememberToolName, err), nil
	}
	return jsonResult(set)
}

// toolError reports failures in-band so the calling model can see them.
func toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	log.FromCtx(ctx).Error().Err(err).Str("tool", tool).Msg("mcp tool failed")
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", tool, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
