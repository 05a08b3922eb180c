package ui

import "unicode"

// queryLine is the single-line query editor: a rune buffer, a cursor offset
// into it, and a single-slot stash for cut text. Mutators report whether the
// buffer content changed so the caller knows when to re-filter.
type queryLine struct {
	runes  []rune
	cursor int
	stash  []rune
}

func (q *queryLine) String() string { return string(q.runes) }
func (q *queryLine) Len() int       { return len(q.runes) }
func (q *queryLine) Cursor() int    { return q.cursor }

func (q *queryLine) Insert(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	q.runes = append(q.runes[:q.cursor:q.cursor], append(rs, q.runes[q.cursor:]...)...)
	q.cursor += len(rs)
	return true
}

func (q *queryLine) Backspace() bool {
	if q.cursor == 0 {
		return false
	}
	q.runes = append(q.runes[:q.cursor-1], q.runes[q.cursor:]...)
	q.cursor--
	return true
}

func (q *queryLine) Delete() bool {
	if q.cursor >= len(q.runes) {
		return false
	}
	q.runes = append(q.runes[:q.cursor], q.runes[q.cursor+1:]...)
	return true
}

func (q *queryLine) MoveLeft() {
	if q.cursor > 0 {
		q.cursor--
	}
}

func (q *queryLine) MoveRight() {
	if q.cursor < len(q.runes) {
		q.cursor++
	}
}

func (q *queryLine) Home() { q.cursor = 0 }
func (q *queryLine) End()  { q.cursor = len(q.runes) }

// Stash cuts from the cursor to the end of the line, replacing any previous
// stash content.
func (q *queryLine) Stash() bool {
	q.stash = append([]rune(nil), q.runes[q.cursor:]...)
	q.runes = q.runes[:q.cursor]
	return len(q.stash) > 0
}

// WordStash cuts one whitespace-delimited word backward from the cursor,
// replacing any previous stash content.
func (q *queryLine) WordStash() bool {
	i := q.cursor
	for i > 0 && unicode.IsSpace(q.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(q.runes[i-1]) {
		i--
	}

	q.stash = append([]rune(nil), q.runes[i:q.cursor]...)
	q.runes = append(q.runes[:i], q.runes[q.cursor:]...)
	q.cursor = i
	return len(q.stash) > 0
}

// Pop inserts the stash content at the cursor. The stash is kept, so a cut
// can be pasted more than once.
func (q *queryLine) Pop() bool {
	return q.Insert(q.stash)
}
