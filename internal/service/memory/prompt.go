package memory

import (
	"strings"

	"github.com/sandevgo/tuskmem/internal/core"
)

// PromptTemplate frames the fact bullets injected into a system prompt.
type PromptTemplate struct {
	Header string
	Footer string
}

var DefaultPromptTemplate = PromptTemplate{
	Header: "[What I remember about you]",
	Footer: "Weave these memories into the conversation naturally, but do not bring them up too often. " +
		"Only mention one when the user talks about something related.",
}

// Render returns "" for an empty set, otherwise the header, one "- " bullet
// per fact and the footer.
func (t PromptTemplate) Render(set core.MemorySet) string {
	if len(set.Facts) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(t.Header)
	sb.WriteString("\n")
	for i, f := range set.Facts {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(f.Content)
	}
	sb.WriteString("\n\n")
	sb.WriteString(t.Footer)
	return sb.String()
}

func RenderMemoryPrompt(set core.MemorySet) string {
	return DefaultPromptTemplate.Render(set)
}
