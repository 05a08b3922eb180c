package tree

import (
	"slices"
	"strings"

	"fuzzytree/internal/theme"
)

// span is a half-open [Start, End) byte range into a basename.
type span struct {
	Start, End int
}

// reducePatterns reduces the whitespace-split query tokens to a disjoint
// set: any token that is a substring of a different token is redundant (a
// match on the longer implies a match on the shorter). The result is sorted
// and deduplicated, so it is order-independent.
func reducePatterns(patterns []string) []string {
	kept := make([]string, 0, len(patterns))
	for _, p := range patterns {
		redundant := false
		for _, q := range patterns {
			if p != q && strings.Contains(q, p) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, p)
		}
	}

	slices.Sort(kept)
	return slices.Compact(kept)
}

// containsAll reports whether s contains every pattern as a literal,
// case-sensitive substring.
func containsAll(s string, patterns []string) bool {
	for _, p := range patterns {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

// matchSpans collects the byte range of every occurrence of every pattern
// in s.
func matchSpans(patterns []string, s string) []span {
	var spans []span
	for _, p := range patterns {
		for from := 0; ; {
			i := strings.Index(s[from:], p)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, span{Start: start, End: start + len(p)})
			from = start + 1
		}
	}
	return spans
}

// mergeSpans coalesces adjacent or overlapping spans into maximal ones.
func mergeSpans(spans []span) []span {
	if len(spans) < 2 {
		return spans
	}

	slices.SortFunc(spans, func(a, b span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
		} else {
			merged = append(merged, s)
		}
	}
	return merged
}

// wrapMatches builds the display label for basename by wrapping each span
// in the match color. Spans must be merged and sorted.
func wrapMatches(basename string, spans []span) string {
	if len(spans) == 0 {
		return basename
	}

	var b strings.Builder
	b.Grow(len(basename) + len(spans)*(len(theme.MatchColor)+len(theme.ColorReset)))

	prev := 0
	for _, s := range spans {
		b.WriteString(basename[prev:s.Start])
		b.WriteString(theme.MatchColor)
		b.WriteString(basename[s.Start:s.End])
		b.WriteString(theme.ColorReset)
		prev = s.End
	}
	b.WriteString(basename[prev:])

	return b.String()
}

// markMatched marks n and its whole ancestor chain as matched. The seen set
// (keyed by joined path) stops the walk at the first ancestor already
// visited this filter pass, bounding total propagation to the tree's edges.
func markMatched(n *Node, seen map[string]bool) {
	n.Matched = true
	seen[n.Joined] = true
	for p := n.Parent; p != nil && !seen[p.Joined]; p = p.Parent {
		p.Matched = true
		seen[p.Joined] = true
	}
}
