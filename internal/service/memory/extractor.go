package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/pkg/log"
	"github.com/sandevgo/tuskmem/pkg/retry"
)

const (
	defaultMaxCandidates = 3
	defaultTokenBudget   = 3000
	extractTemperature   = 0.3
)

// LLMExtractor asks a chat model for the few facts worth remembering from a
// conversation.
type LLMExtractor struct {
	ai            core.AIProvider
	retrier       *retry.Retrier
	count         TokenCounter
	MaxCandidates int
	TokenBudget   int
}

func NewExtractor(ai core.AIProvider, retrier *retry.Retrier) *LLMExtractor {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &LLMExtractor{
		ai:            ai,
		retrier:       retrier,
		count:         TiktokenCounter(),
		MaxCandidates: defaultMaxCandidates,
		TokenBudget:   defaultTokenBudget,
	}
}

// WithTokenCounter swaps the tokenizer used for the transcript budget.
func (e *LLMExtractor) WithTokenCounter(count TokenCounter) *LLMExtractor {
	e.count = count
	return e
}

func (e *LLMExtractor) Extract(ctx context.Context, transcript []core.Message) ([]core.CandidateFact, error) {
	lines := formatConversation(transcript)
	if len(lines) == 0 {
		return nil, nil
	}
	lines = tailWithinBudget(lines, e.TokenBudget, e.count)

	logger := log.FromCtx(ctx)
	logger.Debug().Int("lines", len(lines)).Msg("extracting memories from conversation")

	const systemPrompt = "You analyse conversations and extract only the important long-term facts about the user. Respond with JSON only."
	history := []core.Message{
		{Role: core.RoleSystem, Content: systemPrompt},
		{Role: core.RoleUser, Content: buildExtractionPrompt(strings.Join(lines, "\n"), e.MaxCandidates)},
	}
	opts := core.ChatOptions{
		Temperature:    extractTemperature,
		ResponseFormat: &core.ResponseFormat{Type: "json_object"},
	}

	var resp core.Message
	err := e.retrier.Do(ctx, func() error {
		var err error
		resp, err = e.ai.Chat(ctx, history, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: llm chat: %w", core.ErrExtraction, err)
	}

	candidates, err := parseExtractionResponse(resp.Content)
	if err != nil {
		logger.Error().Err(err).Str("content", resp.Content).Msg("unparseable extraction response")
		return nil, fmt.Errorf("%w: %w", core.ErrExtraction, err)
	}

	if e.MaxCandidates > 0 && len(candidates) > e.MaxCandidates {
		candidates = candidates[:e.MaxCandidates]
	}
	return candidates, nil
}

func formatConversation(msgs []core.Message) []string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == core.RoleSystem || strings.TrimSpace(m.Content) == "" {
			continue
		}
		lines = append(lines, m.Role+": "+m.Content)
	}
	return lines
}

func buildExtractionPrompt(conversation string, limit int) string {
	return fmt.Sprintf(`Analyse the conversation below and pick only the information worth remembering long term, at most %d items.

Kinds of information:
- emotion: recurring feelings or states (e.g. "often feels anxious")
- interest: lasting interests or hobbies (e.g. "enjoys creative work")
- goal: long-term goals or plans (e.g. "wants to build a daily routine")
- characteristic: traits or preferences (e.g. "prefers learning by small experiments")

Rules:
- Keep only what truly matters.
- Leave out personal details; keep the meaning.
- Write each item as a natural sentence.

Respond with JSON in this shape:
{"memories": [{"content": "...", "category": "emotion" | "interest" | "goal" | "characteristic"}]}

Conversation:
%s`, limit, conversation)
}

func parseExtractionResponse(content string) ([]core.CandidateFact, error) {
	jsonStr := extractJSONObject(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var result struct {
		Memories []core.CandidateFact `json:"memories"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("unmarshal memories: %w", err)
	}

	return result.Memories, nil
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(content[start:], "}")
	if end == -1 {
		return ""
	}

	return content[start : start+end+1]
}
