package memory

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports how many model tokens a text costs.
type TokenCounter func(text string) int

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

// TiktokenCounter counts cl100k_base tokens. When the encoding cannot be
// loaded it falls back to counting whitespace separated words.
func TiktokenCounter() TokenCounter {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	if tkErr != nil {
		return WordCounter
	}
	return func(text string) int {
		if text == "" {
			return 0
		}
		return len(tk.Encode(text, nil, nil))
	}
}

func WordCounter(text string) int {
	return len(strings.Fields(text))
}

// tailWithinBudget keeps the most recent lines whose total cost fits budget.
// The last line is always kept. A non-positive budget keeps everything.
func tailWithinBudget(lines []string, budget int, count TokenCounter) []string {
	if budget <= 0 || len(lines) == 0 {
		return lines
	}

	total := 0
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		total += count(lines[i])
		if total > budget && i < len(lines)-1 {
			break
		}
		start = i
	}
	return lines[start:]
}
