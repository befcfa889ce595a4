package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/pkg/retry"
)

type fakeAI struct {
	replies []string
	errs    []error
	calls   int
	history []core.Message
	opts    core.ChatOptions
}

func (f *fakeAI) Chat(_ context.Context, history []core.Message, opts core.ChatOptions) (core.Message, error) {
	i := f.calls
	f.calls++
	f.history = history
	f.opts = opts
	if i < len(f.errs) && f.errs[i] != nil {
		return core.Message{}, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return core.Message{Role: core.RoleAssistant, Content: reply}, nil
}

func noRetry() *retry.Retrier {
	return retry.NewRetrier(&retry.Config{MaxRetries: 0})
}

func TestLLMExtractor_Extract(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{replies: []string{`{"memories":[{"content":"likes coding","category":"interest"},{"content":"wants a routine","category":"goal"}]}`}}
	ex := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter)

	got, err := ex.Extract(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "you are a friend"},
		{Role: core.RoleUser, Content: "I code every day"},
		{Role: core.RoleAssistant, Content: "That's great!"},
	})
	require.NoError(t, err)
	assert.Equal(t, []core.CandidateFact{
		{Content: "likes coding", Category: core.CategoryInterest},
		{Content: "wants a routine", Category: core.CategoryGoal},
	}, got)

	require.Len(t, ai.history, 2)
	prompt := ai.history[1].Content
	assert.Contains(t, prompt, "user: I code every day\nassistant: That's great!")
	assert.NotContains(t, prompt, "you are a friend")
	require.NotNil(t, ai.opts.ResponseFormat)
	assert.Equal(t, "json_object", ai.opts.ResponseFormat.Type)
}

func TestLLMExtractor_LimitsCandidates(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{replies: []string{`{"memories":[
		{"content":"a","category":"goal"},{"content":"b","category":"goal"},
		{"content":"c","category":"goal"},{"content":"d","category":"goal"}]}`}}
	ex := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter)

	got, err := ex.Extract(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Len(t, got, defaultMaxCandidates)
}

func TestLLMExtractor_EmptyTranscript(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{}
	got, err := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter).Extract(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "   "},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, ai.calls)
}

func TestLLMExtractor_Errors(t *testing.T) {
	t.Parallel()
	msgs := []core.Message{{Role: core.RoleUser, Content: "hi"}}

	t.Run("chat failure", func(t *testing.T) {
		ai := &fakeAI{errs: []error{errors.New("http 500")}}
		_, err := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter).Extract(context.Background(), msgs)
		require.ErrorIs(t, err, core.ErrExtraction)
	})

	t.Run("retried then succeeds", func(t *testing.T) {
		ai := &fakeAI{
			errs:    []error{errors.New("http 502"), nil},
			replies: []string{"", `{"memories":[]}`},
		}
		r := retry.NewRetrier(&retry.Config{MaxRetries: 2, BackoffFactor: 1, MaxDelay: 1})
		got, err := NewExtractor(ai, r).WithTokenCounter(WordCounter).Extract(context.Background(), msgs)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 2, ai.calls)
	})

	t.Run("not json", func(t *testing.T) {
		ai := &fakeAI{replies: []string{"I could not find anything"}}
		_, err := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter).Extract(context.Background(), msgs)
		require.ErrorIs(t, err, core.ErrExtraction)
	})
}

func TestParseExtractionResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "plain", content: `{"memories":[{"content":"x","category":"goal"}]}`, want: 1},
		{name: "fenced", content: "```json\n{\"memories\":[{\"content\":\"x\",\"category\":\"goal\"}]}\n```", want: 1},
		{name: "missing key", content: `{}`, want: 0},
		{name: "no object", content: `none`, wantErr: true},
		{name: "broken", content: `{"memories":[}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExtractionResponse(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestTailWithinBudget(t *testing.T) {
	t.Parallel()

	lines := []string{"one two three", "four five", "six", "seven eight nine ten"}

	tests := []struct {
		name   string
		budget int
		want   []string
	}{
		{name: "unlimited", budget: 0, want: lines},
		{name: "everything fits", budget: 100, want: lines},
		{name: "tail only", budget: 5, want: []string{"six", "seven eight nine ten"}},
		{name: "last line always kept", budget: 1, want: []string{"seven eight nine ten"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tailWithinBudget(lines, tt.budget, WordCounter)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLLMExtractor_TrimsLongTranscript(t *testing.T) {
	t.Parallel()

	ai := &fakeAI{replies: []string{`{"memories":[]}`}}
	ex := NewExtractor(ai, noRetry()).WithTokenCounter(WordCounter)
	ex.TokenBudget = 4

	_, err := ex.Extract(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "an early message nobody needs"},
		{Role: core.RoleUser, Content: "latest"},
	})
	require.NoError(t, err)

	prompt := ai.history[1].Content
	assert.True(t, strings.HasSuffix(prompt, "user: latest"), prompt)
	assert.NotContains(t, prompt, "early message")
}
