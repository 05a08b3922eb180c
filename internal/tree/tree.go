package tree

import (
	"fmt"
	"strings"

	"fuzzytree/internal/theme"
)

// Tree owns the full node set plus the linked root and exposes the
// filter/collapse/select/render operations the viewport drives.
type Tree struct {
	paths []*Node
	root  *Node

	nPaths    int
	nMatches  int
	nSelected int
}

// New parses listing output, links the tree and returns the aggregate.
func New(output []byte) (*Tree, error) {
	paths, err := ParsePaths(output)
	if err != nil {
		return nil, err
	}
	return FromNodes(paths), nil
}

// FromNodes builds a Tree over an already sorted node set.
func FromNodes(paths []*Node) *Tree {
	return &Tree{
		paths:    paths,
		root:     Link(paths),
		nPaths:   len(paths),
		nMatches: len(paths),
	}
}

func (t *Tree) NPaths() int    { return t.nPaths }
func (t *Tree) NMatches() int  { return t.nMatches }
func (t *Tree) NSelected() int { return t.nSelected }

// CollapseOver closes every directory with more than n immediate children.
// The root stays open. Applied once at load, before the first render.
func (t *Tree) CollapseOver(n int) {
	for _, p := range t.paths[1:] {
		if p.IsDir && len(p.Children) > n {
			p.Open = false
		}
	}
}

func (t *Tree) resetMatched(matched bool) {
	for _, p := range t.paths {
		p.Matched = matched
		p.DisplayLabel = p.Basename()
	}
}

// Filter recomputes matches and display labels for the query text. An empty
// query shows everything with plain labels.
func (t *Tree) Filter(text string) {
	patterns := reducePatterns(strings.Fields(text))
	if len(patterns) == 0 {
		t.resetMatched(true)
		t.nMatches = t.nPaths
		return
	}

	t.resetMatched(false)
	seen := make(map[string]bool, len(t.paths))
	for _, p := range t.paths {
		if !containsAll(p.Joined, patterns) {
			continue
		}
		spans := mergeSpans(matchSpans(patterns, p.Basename()))
		p.DisplayLabel = wrapMatches(p.Basename(), spans)
		markMatched(p, seen)
	}
	t.nMatches = t.countMatches()
}

func (t *Tree) countMatches() int {
	n := 0
	for _, p := range t.paths {
		if p.Matched {
			n++
		}
	}
	return n
}

// NodeAt resolves a display index against the display traversal. Returns
// nil when i is out of range.
func (t *Tree) NodeAt(i int) *Node {
	nodes := t.visibleNodes()
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// FlipOpen toggles the expansion state of the i'th displayed node.
// Out-of-range indices and non-directories are no-ops.
func (t *Tree) FlipOpen(i int) {
	if n := t.NodeAt(i); n != nil && n.IsDir {
		n.Open = !n.Open
	}
}

// FlipSelected toggles selection of the i'th displayed node and recounts
// nSelected with a full re-scan. Out-of-range indices are no-ops.
func (t *Tree) FlipSelected(i int) {
	n := t.NodeAt(i)
	if n == nil {
		return
	}
	n.Selected = !n.Selected

	t.nSelected = 0
	for _, p := range t.paths {
		if p.Selected {
			t.nSelected++
		}
	}
}

// SelectedPaths returns the joined paths of all selected nodes in input
// order.
func (t *Tree) SelectedPaths() []string {
	var out []string
	for _, p := range t.paths {
		if p.Selected {
			out = append(out, p.Joined)
		}
	}
	return out
}

// InfoLine formats the status line shown under the query.
func (t *Tree) InfoLine() string {
	return fmt.Sprintf("(selected: %d, shown: %d, total: %d)", t.nSelected, t.nMatches, t.nPaths)
}

// The display traversal: depth-first preorder from the root, descending
// only into open nodes and visiting only matched children. It defines both
// Lines and display-index resolution.

func matchedChildren(n *Node) []*Node {
	kids := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Matched {
			kids = append(kids, c)
		}
	}
	return kids
}

func (t *Tree) visibleNodes() []*Node {
	nodes := make([]*Node, 0, t.nMatches)
	if t.nMatches > 0 {
		collectVisible(t.root, &nodes)
	}
	return nodes
}

func collectVisible(n *Node, out *[]*Node) {
	*out = append(*out, n)
	if !n.Open {
		return
	}
	for _, c := range matchedChildren(n) {
		collectVisible(c, out)
	}
}

type segment int

const (
	segCont segment = iota // "│   ", "├── " at the parent edge
	segEnd                 // "    ", "└── " at the parent edge
)

func segmentPrefix(segs []segment) string {
	if len(segs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range segs[:len(segs)-1] {
		if s == segCont {
			b.WriteString(theme.PipeCont)
		} else {
			b.WriteString(theme.PipeEnd)
		}
	}
	if segs[len(segs)-1] == segCont {
		b.WriteString(theme.BranchMid)
	} else {
		b.WriteString(theme.BranchLast)
	}
	return b.String()
}

func renderLine(n *Node, segs []segment) string {
	sel := " "
	if n.Selected {
		sel = theme.SelectedTag
	}

	glyph := ""
	if n.IsDir {
		if n.Open {
			glyph = theme.DirOpen
		} else {
			glyph = theme.DirClosed
		}
	}

	return sel + segmentPrefix(segs) + glyph + n.DisplayLabel
}

// Lines renders the display traversal into one string per visible node.
func (t *Tree) Lines() []string {
	lines := make([]string, 0, t.nMatches)
	if t.nMatches > 0 {
		appendLines(t.root, nil, &lines)
	}
	return lines
}

func appendLines(n *Node, segs []segment, lines *[]string) {
	*lines = append(*lines, renderLine(n, segs))
	if !n.Open {
		return
	}
	kids := matchedChildren(n)
	for i, c := range kids {
		s := segCont
		if i == len(kids)-1 {
			s = segEnd
		}
		appendLines(c, append(segs[:len(segs):len(segs)], s), lines)
	}
}
