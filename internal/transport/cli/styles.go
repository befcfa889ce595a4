package cli

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (cyan) reads well on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (bright black) keeps descriptions dim.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	categoryStyles = map[string]lipgloss.Style{
		"emotion":        lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		"interest":       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"goal":           lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"characteristic": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)
