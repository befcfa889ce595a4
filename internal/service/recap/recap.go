// Package recap turns a day's conversation into a short structured summary.
package recap

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
	recapMaxTokens   = 400
	recapTemperature = 0.5
	fallbackMessage  = "I couldn't put today's conversation into a summary."
)

type Service struct {
	ai      core.AIProvider
	retrier *retry.Retrier
}

func NewService(ai core.AIProvider, retrier *retry.Retrier) *Service {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &Service{ai: ai, retrier: retrier}
}

// Recap asks the model for topic, emotion, message and action. A reply that
// is not JSON is returned whole as the message.
func (s *Service) Recap(ctx context.Context, transcript []core.Message) (core.Recap, error) {
	conversation := formatTranscript(transcript)
	if conversation == "" {
		return core.Recap{}, fmt.Errorf("%w: empty transcript", core.ErrExtraction)
	}

	history := []core.Message{
		{Role: core.RoleSystem, Content: "You summarise conversations for a companion app. Respond with JSON only."},
		{Role: core.RoleUser, Content: buildRecapPrompt(conversation)},
	}
	opts := core.ChatOptions{
		Temperature:    recapTemperature,
		MaxTokens:      recapMaxTokens,
		ResponseFormat: &core.ResponseFormat{Type: "json_object"},
	}

	var resp core.Message
	err := s.retrier.Do(ctx, func() error {
		var err error
		resp, err = s.ai.Chat(ctx, history, opts)
		return err
	})
	if err != nil {
		return core.Recap{}, fmt.Errorf("%w: recap chat: %w", core.ErrExtraction, err)
	}

	recap, err := parseRecap(resp.Content)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("recap reply is not JSON, using raw text")
	}
	return recap, nil
}

func formatTranscript(msgs []core.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		if m.Role == core.RoleSystem || strings.TrimSpace(m.Content) == "" {
			continue
		}
		speaker := "Assistant"
		if m.Role == core.RoleUser {
			speaker = "User"
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
	}
	return sb.String()
}

func buildRecapPrompt(conversation string) string {
	return `Read the conversation below and fill in four fields as JSON.

1) topic: what the user mainly talked about today, in one short sentence
2) emotion: the user's current emotional state, in one sentence
3) message: one sentence the assistant would like to tell the user now
4) action: one very small thing the user could try tomorrow

Answer with JSON only, exactly in this shape:
{"topic": "...", "emotion": "...", "message": "...", "action": "..."}

Conversation:

` + conversation
}

// parseRecap always returns a usable recap; the error only reports that the
// raw content was used as the message.
func parseRecap(raw string) (core.Recap, error) {
	var recap core.Recap
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &recap); err != nil {
		msg := strings.TrimSpace(raw)
		if msg == "" {
			msg = fallbackMessage
		}
		return core.Recap{Message: msg}, fmt.Errorf("unmarshal recap: %w", err)
	}
	return recap, nil
}
