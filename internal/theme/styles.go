package theme

import "github.com/charmbracelet/lipgloss"

// Tree glyphs. Connector strings are all four cells wide so ancestor
// prefixes line up column-for-column.
const (
	DirOpen   = "▾ "
	DirClosed = "▸ "

	BranchMid  = "├── "
	BranchLast = "└── "
	PipeCont   = "│   "
	PipeEnd    = "    "
)

// Query prompt shown before the editable filter text.
const Prompt = "> "

var (
	// PromptStyle colors the query prompt.
	PromptStyle = lipgloss.NewStyle().Foreground(PromptBlue)

	// InfoStyle colors the "(selected: …, shown: …, total: …)" line.
	InfoStyle = lipgloss.NewStyle().Foreground(InfoGreen)

	// CursorLineStyle marks the highlighted row in the tree viewport.
	CursorLineStyle = lipgloss.NewStyle().Background(CursorGray)

	// QueryCursorStyle renders the cell under the query cursor.
	QueryCursorStyle = lipgloss.NewStyle().Reverse(true)
)
