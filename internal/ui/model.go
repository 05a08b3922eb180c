package ui

import (
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"fuzzytree/internal/theme"
	"fuzzytree/internal/tree"
)

// Outcome describes how the session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAccept
	OutcomeAbort
	OutcomeInterrupt
)

// Config carries the viewport settings decided at startup.
type Config struct {
	// Lines is the total window height budget: the query line, the info
	// line and Lines-2 tree rows.
	Lines int
	// Debug enables per-transition diagnostics on the session logger.
	Debug bool
}

// Model is the session state machine. One key event drives exactly one
// state transition and one render; all mutation happens inside Update.
type Model struct {
	tree *tree.Tree
	keys KeyMap
	cfg  Config
	log  *slog.Logger

	query queryLine

	// offset is the first visible display line, linePos the highlighted
	// row within the window (0 <= linePos < height-2).
	offset  int
	linePos int

	// currentLines is the last-known visible-line count, refreshed after
	// every mutation of the tree or the filter.
	currentLines int

	height int // effective window height, <= cfg.Lines
	width  int

	outcome Outcome
}

// New builds the session model around an already-linked tree.
func New(t *tree.Tree, cfg Config, log *slog.Logger) Model {
	if cfg.Lines < 3 {
		cfg.Lines = 3
	}
	return Model{
		tree:         t,
		keys:         DefaultKeyMap(),
		cfg:          cfg,
		log:          log,
		currentLines: len(t.Lines()),
		height:       cfg.Lines,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Outcome reports how the loop terminated.
func (m Model) Outcome() Outcome { return m.outcome }

// CommitPaths returns the paths to emit on accept.
func (m Model) CommitPaths() []string { return m.tree.SelectedPaths() }

// Index is the canonical current-selection display index.
func (m Model) Index() int { return m.linePos + m.offset }

// rows is the number of tree lines the window can show.
func (m Model) rows() int { return m.height - 2 }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = m.cfg.Lines
		if msg.Height > 0 && msg.Height < m.height {
			m.height = msg.Height
		}
		if m.height < 3 {
			m.height = 3
		}
		if m.linePos > m.rows()-1 {
			m.offset += m.linePos - (m.rows() - 1)
			m.linePos = m.rows() - 1
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		m.outcome = OutcomeInterrupt
		return m, tea.Quit

	case key.Matches(msg, m.keys.Abort):
		m.outcome = OutcomeAbort
		return m, tea.Quit

	case key.Matches(msg, m.keys.Accept):
		if m.tree.NSelected() == 0 {
			m.tree.FlipSelected(m.Index())
		}
		m.outcome = OutcomeAccept
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		m.tree.FlipSelected(m.Index())

	case key.Matches(msg, m.keys.Open):
		m.tree.FlipOpen(m.Index())
		m.reclamp(len(m.tree.Lines()))

	case key.Matches(msg, m.keys.Yank):
		m.yank()

	case key.Matches(msg, m.keys.Up):
		m.moveUp()

	case key.Matches(msg, m.keys.Down):
		m.moveDown()

	case key.Matches(msg, m.keys.PageUp):
		m.pageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.pageDown()

	default:
		if m.editQuery(msg) {
			m.refilter()
		}
	}

	return m, nil
}

// editQuery applies a single editing key to the query line and reports
// whether the buffer content changed.
func (m *Model) editQuery(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.query.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.query.MoveRight()
	case key.Matches(msg, m.keys.Home):
		m.query.Home()
	case key.Matches(msg, m.keys.End):
		m.query.End()
	case key.Matches(msg, m.keys.Backspace):
		return m.query.Backspace()
	case key.Matches(msg, m.keys.Delete):
		return m.query.Delete()
	case key.Matches(msg, m.keys.Stash):
		return m.query.Stash()
	case key.Matches(msg, m.keys.WordStash):
		return m.query.WordStash()
	case key.Matches(msg, m.keys.Pop):
		return m.query.Pop()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			return m.query.Insert(msg.Runes)
		case tea.KeySpace:
			return m.query.Insert([]rune{' '})
		}
	}
	return false
}

func (m *Model) refilter() {
	m.tree.Filter(m.query.String())
	if m.cfg.Debug {
		m.log.Debug("filter", "query", m.query.String(), "shown", m.tree.NMatches())
	}
	m.reclamp(len(m.tree.Lines()))
}

// reclamp pulls offset and linePos back into range after the visible line
// count changed under the viewport, then adopts the new count.
func (m *Model) reclamp(newLen int) {
	if m.Index() >= newLen {
		shrink := m.currentLines - newLen
		if shrink < 0 {
			shrink = 0
		}
		m.offset -= min(m.offset, shrink)
		m.linePos = min(m.linePos, max(1, newLen)-1)
	}
	m.currentLines = newLen
}

func (m *Model) moveUp() {
	switch {
	case m.linePos+m.offset == 0:
		// already at the very first row
	case m.linePos == 0 && m.offset > 0:
		m.offset--
	default:
		m.linePos--
	}
}

func (m *Model) moveDown() {
	switch {
	case m.currentLines == 0:
	case m.linePos+m.offset == m.currentLines-1:
		// already at the last row
	case m.linePos == m.rows()-1:
		m.offset++
	default:
		m.linePos++
	}
}

func (m *Model) pageUp() {
	if m.offset == 0 {
		m.linePos = 0
		return
	}
	m.offset = max(0, m.offset-m.rows())
}

func (m *Model) pageDown() {
	if m.currentLines == 0 {
		return
	}
	maxOffset := max(0, m.currentLines-m.rows())
	if target := m.offset + m.rows(); target > maxOffset {
		// Overshot: show the last page and snap to the last line.
		m.offset = maxOffset
		m.linePos = m.currentLines - 1 - m.offset
	} else {
		m.offset = target
	}
}

// yank copies the would-be commit output to the system clipboard: the
// selected paths, or the highlighted one when nothing is selected yet.
func (m *Model) yank() {
	paths := m.tree.SelectedPaths()
	if len(paths) == 0 {
		if n := m.tree.NodeAt(m.Index()); n != nil {
			paths = []string{n.Joined}
		}
	}
	if len(paths) == 0 {
		return
	}
	if err := clipboard.WriteAll(strings.Join(paths, " ")); err != nil && m.cfg.Debug {
		m.log.Debug("clipboard write failed", "err", err)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderQuery())
	b.WriteByte('\n')
	b.WriteString(theme.InfoStyle.Render(m.tree.InfoLine()))
	b.WriteByte('\n')

	lines := m.tree.Lines()
	end := min(m.offset+m.rows(), len(lines))
	for i := m.offset; i < end; i++ {
		line := lines[i]
		if i == m.Index() {
			line = theme.CursorLineStyle.Render(line)
		}
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// renderQuery draws the prompt and the query text with a reverse-video
// cursor cell, scrolling horizontally so the cursor stays visible.
func (m Model) renderQuery() string {
	runes := []rune(m.query.String())
	cur := m.query.Cursor()

	start := 0
	if m.width > 0 {
		avail := m.width - runewidth.StringWidth(theme.Prompt) - 1
		if avail > 0 && cur > avail {
			start = cur - avail
		}
	}

	before := string(runes[start:cur])
	cursorCell := theme.QueryCursorStyle.Render(" ")
	after := ""
	if cur < len(runes) {
		cursorCell = theme.QueryCursorStyle.Render(string(runes[cur]))
		after = string(runes[cur+1:])
	}

	return theme.PromptStyle.Render(theme.Prompt) + before + cursorCell + after
}
