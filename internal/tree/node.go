package tree

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

var sep = string(filepath.Separator)

// Node is one filesystem entry. The node set is built once from the listing
// output and its topology never changes afterwards; Open, Matched, Selected
// and DisplayLabel mutate over the session.
type Node struct {
	Segments []string
	Joined   string
	IsDir    bool

	Open     bool
	Matched  bool
	Selected bool

	// DisplayLabel is the basename, possibly annotated with match
	// highlighting. Recomputed on every filter.
	DisplayLabel string

	Parent   *Node
	Children []*Node
}

func newNode(segments []string) *Node {
	return &Node{
		Segments:     segments,
		Joined:       strings.Join(segments, sep),
		Open:         true,
		Matched:      true,
		DisplayLabel: segments[len(segments)-1],
	}
}

// Basename returns the last path component.
func (n *Node) Basename() string {
	return n.Segments[len(n.Segments)-1]
}

// IsChildOf reports whether other is a proper prefix-ancestor of n.
func (n *Node) IsChildOf(other *Node) bool {
	if len(other.Segments) >= len(n.Segments) {
		return false
	}
	return slices.Equal(n.Segments[:len(other.Segments)], other.Segments)
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// NDescendants counts all nodes below n.
func (n *Node) NDescendants() int {
	total := len(n.Children)
	for _, c := range n.Children {
		total += c.NDescendants()
	}
	return total
}

// ParsePaths turns listing-command output into the sorted node set the
// linker expects: one node per non-empty line, a synthetic "." root
// prepended, and a leading "." marker segment on every other path so all
// paths share the root prefix. Non-UTF8 output is rejected outright.
func ParsePaths(output []byte) ([]*Node, error) {
	if !utf8.Valid(output) {
		return nil, fmt.Errorf("listing output is not valid UTF-8")
	}

	var segs [][]string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSuffix(line, "\r")
		// Normalize `find .` style output to match `fd` output.
		line = strings.TrimPrefix(line, "."+sep)
		if line == "" || line == "." {
			continue
		}
		segs = append(segs, append([]string{"."}, strings.Split(line, sep)...))
	}

	slices.SortFunc(segs, slices.Compare)

	nodes := make([]*Node, 0, len(segs)+1)
	nodes = append(nodes, newNode([]string{"."}))
	for _, s := range segs {
		nodes = append(nodes, newNode(s))
	}

	// A node is a directory exactly when its successor in sorted order is
	// its child: children of a path sort immediately after it.
	for i, n := range nodes {
		n.IsDir = i == 0 || (i+1 < len(nodes) && nodes[i+1].IsChildOf(n))
	}

	return nodes, nil
}

// Link builds parent/child edges over the sorted node list and returns the
// root. Each node attaches to the nearest preceding prefix-ancestor,
// tracked with a stack of currently open ancestors. Every node is pushed
// and popped at most once, so the whole pass is O(n).
func Link(nodes []*Node) *Node {
	root := nodes[0]
	stack := []*Node{root}

	for _, n := range nodes[1:] {
		for !n.IsChildOf(stack[len(stack)-1]) {
			stack = stack[:len(stack)-1]
		}
		stack[len(stack)-1].addChild(n)
		stack = append(stack, n)
	}

	return root
}
