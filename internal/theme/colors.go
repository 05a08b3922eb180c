package theme

import "github.com/charmbracelet/lipgloss"

// Match highlighting is spliced into display labels byte-by-byte, so it uses
// plain escape constants rather than lipgloss styles. Everything that wraps a
// whole line goes through lipgloss below.
const (
	MatchColor  = "\x1b[38;5;12m" // basename substring hits
	ColorReset  = "\x1b[39m"
	SelectedTag = "\x1b[38;5;9m>\x1b[39m" // marker for selected entries
)

// Accent colors for line-level styling.
var (
	PromptBlue = lipgloss.Color("12")
	InfoGreen  = lipgloss.Color("10")
	CursorGray = lipgloss.Color("236")
)
