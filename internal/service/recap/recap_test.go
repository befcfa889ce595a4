package recap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/pkg/retry"
)

type fakeAI struct {
	reply   string
	err     error
	history []core.Message
	opts    core.ChatOptions
}

func (f *fakeAI) Chat(_ context.Context, history []core.Message, opts core.ChatOptions) (core.Message, error) {
	f.history = history
	f.opts = opts
	if f.err != nil {
		return core.Message{}, f.err
	}
	return core.Message{Role: core.RoleAssistant, Content: f.reply}, nil
}

var transcript = []core.Message{
	{Role: core.RoleUser, Content: "I couldn't sleep again"},
	{Role: core.RoleAssistant, Content: "That sounds tiring."},
}

func newService(ai core.AIProvider) *Service {
	return NewService(ai, retry.NewRetrier(&retry.Config{MaxRetries: 0}))
}

func TestRecap(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{reply: `{"topic":"sleep","emotion":"tired","message":"rest well","action":"go to bed early"}`}
	got, err := newService(ai).Recap(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, core.Recap{Topic: "sleep", Emotion: "tired", Message: "rest well", Action: "go to bed early"}, got)

	require.Len(t, ai.history, 2)
	assert.Contains(t, ai.history[1].Content, "User: I couldn't sleep again\nAssistant: That sounds tiring.")
	assert.Equal(t, recapMaxTokens, ai.opts.MaxTokens)
	assert.InDelta(t, recapTemperature, ai.opts.Temperature, 1e-9)
	require.NotNil(t, ai.opts.ResponseFormat)
	assert.Equal(t, "json_object", ai.opts.ResponseFormat.Type)
}

func TestRecap_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  core.Recap
	}{
		{name: "partial", reply: `{"topic":"sleep"}`, want: core.Recap{Topic: "sleep"}},
		{name: "plain text", reply: "You had a long day.", want: core.Recap{Message: "You had a long day."}},
		{name: "empty", reply: "", want: core.Recap{Message: fallbackMessage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newService(&fakeAI{reply: tt.reply}).Recap(context.Background(), transcript)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecap_Errors(t *testing.T) {
	t.Parallel()

	_, err := newService(&fakeAI{err: errors.New("http 500")}).Recap(context.Background(), transcript)
	require.ErrorIs(t, err, core.ErrExtraction)

	ai := &fakeAI{}
	_, err = newService(ai).Recap(context.Background(), []core.Message{{Role: core.RoleSystem, Content: "x"}})
	require.ErrorIs(t, err, core.ErrExtraction)
	assert.Nil(t, ai.history)
}
