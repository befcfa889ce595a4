// Package cli renders memory sets and recaps for the terminal.
package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/tuskmem/internal/core"
)

const maxBar = 5

// WriteMemorySet prints one line per fact: a weight bar, the category and
// the content, followed by how long ago the fact was reinforced.
func WriteMemorySet(w io.Writer, set core.MemorySet, now time.Time) error {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("MEMORIES OF " + set.UserID))
	sb.WriteString("\n")

	if len(set.Facts) == 0 {
		sb.WriteString(DescStyle.Render("  nothing remembered yet"))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for _, f := range set.Facts {
		style, ok := categoryStyles[string(f.Category)]
		if !ok {
			style = lipgloss.NewStyle()
		}
		fmt.Fprintf(&sb, "  %s %s %s %s\n",
			weightBar(f.Weight),
			style.Render(fmt.Sprintf("%-14s", f.Category)),
			f.Content,
			DescStyle.Render("("+ago(now.Sub(f.LastReinforced))+")"),
		)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRecap prints the four recap fields under their titles.
func WriteRecap(w io.Writer, r core.Recap) error {
	var sb strings.Builder
	for _, field := range []struct{ title, value string }{
		{"TOPIC", r.Topic},
		{"EMOTION", r.Emotion},
		{"MESSAGE", r.Message},
		{"ACTION", r.Action},
	} {
		if field.value == "" {
			continue
		}
		sb.WriteString(UsageStyle.Render(field.title))
		sb.WriteString("  ")
		sb.WriteString(field.value)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func weightBar(weight float64) string {
	filled := int(math.Round(weight))
	if filled > maxBar {
		filled = maxBar
	}
	if filled < 0 {
		filled = 0
	}
	return FlagStyle.Render(strings.Repeat("■", filled)+strings.Repeat("·", maxBar-filled)) +
		fmt.Sprintf(" %.1f", weight)
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
