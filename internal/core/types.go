package core

const (
	TuskName          = "TuskMem"
	TuskUserAgent     = "TuskMem-Agent/0.1"
	TuskRepositoryURL = "https://github.com/sandevgo/tuskmem"
	TuskVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single transcript entry as sent by the chat host.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks an OpenAI compatible endpoint for a constrained reply.
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatOptions tune a single completion request.
type ChatOptions struct {
	Temperature    float64
	MaxTokens      int
	ResponseFormat *ResponseFormat
}

// Recap is the short daily summary of a conversation.
type Recap struct {
	Topic   string `json:"topic"`
	Emotion string `json:"emotion"`
	Message string `json:"message"`
	Action  string `json:"action"`
}
