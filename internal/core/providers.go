package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message, opts ChatOptions) (Message, error)
}

// Extractor turns a conversation transcript into candidate facts.
type Extractor interface {
	Extract(ctx context.Context, transcript []Message) ([]CandidateFact, error)
}

// Summarizer produces a daily recap of a conversation.
type Summarizer interface {
	Recap(ctx context.Context, transcript []Message) (Recap, error)
}
