package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzytree/internal/theme"
)

func testTree(t *testing.T) *Tree {
	t.Helper()
	return FromNodes(testPaths(t))
}

func blue(s string) string {
	return theme.MatchColor + s + theme.ColorReset
}

func TestLines(t *testing.T) {
	tr := testTree(t)

	expected := []string{
		" " + theme.DirOpen + ".",
		" ├── A",
		" ├── B",
		" ├── " + theme.DirOpen + "src",
		" │   ├── " + theme.DirOpen + "bayes",
		" │   │   ├── blend.c",
		" │   │   └── rand.c",
		" │   └── " + theme.DirOpen + "cakes",
		" │       ├── a.c",
		" │       └── b.c",
		" └── x.txt",
	}
	assert.Equal(t, expected, tr.Lines())

	t.Run("hiding a subtree reroutes the connectors", func(t *testing.T) {
		tr := testTree(t)
		tr.paths[4].Matched = false // ./src/bayes

		expected := []string{
			" " + theme.DirOpen + ".",
			" ├── A",
			" ├── B",
			" ├── " + theme.DirOpen + "src",
			" │   └── " + theme.DirOpen + "cakes",
			" │       ├── a.c",
			" │       └── b.c",
			" └── x.txt",
		}
		assert.Equal(t, expected, tr.Lines())
	})
}

func TestFilter(t *testing.T) {
	t.Run("empty query shows everything", func(t *testing.T) {
		tr := testTree(t)
		tr.Filter("b")
		tr.Filter("")

		assert.Equal(t, tr.NPaths(), tr.NMatches())
		assert.Len(t, tr.Lines(), 11)
	})

	t.Run("no match yields no lines", func(t *testing.T) {
		tr := testTree(t)
		tr.Filter("tmp")

		assert.Equal(t, 0, tr.NMatches())
		assert.Empty(t, tr.Lines())
	})

	t.Run("ancestors of matches become visible", func(t *testing.T) {
		tr := testTree(t)
		tr.Filter("src")

		assert.Equal(t, 8, tr.NMatches())

		matched := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true}
		for i, p := range tr.paths {
			assert.Equal(t, matched[i], p.Matched, p.Joined)
		}
	})

	t.Run("matched basenames are highlighted, propagated ones are not", func(t *testing.T) {
		tr := testTree(t)
		tr.Filter("b")

		expected := []string{
			" " + theme.DirOpen + ".",
			" └── " + theme.DirOpen + "src",
			"     ├── " + theme.DirOpen + blue("b") + "ayes",
			"     │   ├── " + blue("b") + "lend.c",
			"     │   └── rand.c",
			"     └── " + theme.DirOpen + "cakes",
			"         └── " + blue("b") + ".c",
		}
		assert.Equal(t, expected, tr.Lines())
		assert.Equal(t, len(expected), tr.NMatches())
	})

	t.Run("all patterns must match the joined path", func(t *testing.T) {
		tr := testTree(t)

		tr.Filter("bayes cakes")
		assert.Equal(t, 0, tr.NMatches())

		tr.Filter("bayes blend")
		assert.Equal(t, 4, tr.NMatches()) // blend.c plus its ancestors bayes, src, root
	})

	t.Run("refiltering clears earlier highlights", func(t *testing.T) {
		tr := testTree(t)
		tr.Filter("blend")
		tr.Filter("rand")

		assert.Equal(t, "blend.c", tr.paths[5].DisplayLabel)
		assert.Equal(t, blue("rand")+".c", tr.paths[6].DisplayLabel)
	})
}

func TestCollapseOver(t *testing.T) {
	tr := testTree(t)
	tr.CollapseOver(1)

	expected := []string{
		" " + theme.DirOpen + ".",
		" ├── A",
		" ├── B",
		" ├── " + theme.DirClosed + "src",
		" └── x.txt",
	}
	assert.Equal(t, expected, tr.Lines(), "descendants of collapsed dirs are hidden")

	t.Run("root never collapses", func(t *testing.T) {
		assert.True(t, tr.paths[0].Open)
	})

	t.Run("flip_open reveals the children again", func(t *testing.T) {
		tr.FlipOpen(3)

		expected := []string{
			" " + theme.DirOpen + ".",
			" ├── A",
			" ├── B",
			" ├── " + theme.DirOpen + "src",
			" │   ├── " + theme.DirClosed + "bayes",
			" │   └── " + theme.DirClosed + "cakes",
			" └── x.txt",
		}
		assert.Equal(t, expected, tr.Lines())
	})

	t.Run("threshold is strict", func(t *testing.T) {
		tr := testTree(t)
		tr.CollapseOver(2)

		// Every directory here has exactly two children.
		assert.Len(t, tr.Lines(), 11)
	})
}

func TestFlipOpen(t *testing.T) {
	tr := testTree(t)

	tr.FlipOpen(3) // ./src
	assert.False(t, tr.paths[3].Open)
	assert.Len(t, tr.Lines(), 5)

	t.Run("display index resolves against the collapsed view", func(t *testing.T) {
		// With src closed, index 4 is now x.txt, a file: no-op.
		tr.FlipOpen(4)
		assert.Len(t, tr.Lines(), 5)
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		tr.FlipOpen(99)
		tr.FlipOpen(-1)
		assert.Len(t, tr.Lines(), 5)
	})
}

func TestFlipSelected(t *testing.T) {
	tr := testTree(t)

	tr.FlipSelected(3)
	assert.Equal(t, 1, tr.NSelected())
	assert.True(t, tr.paths[3].Selected)
	assert.Equal(t, []string{"./src"}, tr.SelectedPaths())

	t.Run("selected entries carry the marker", func(t *testing.T) {
		assert.Equal(t, theme.SelectedTag+"├── "+theme.DirOpen+"src", tr.Lines()[3])
	})

	t.Run("repeated flips toggle and recount exactly", func(t *testing.T) {
		tr.FlipSelected(3)
		assert.Equal(t, 0, tr.NSelected())
		assert.Empty(t, tr.SelectedPaths())

		tr.FlipSelected(3)
		tr.FlipSelected(3)
		assert.Equal(t, 0, tr.NSelected())
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		tr.FlipSelected(42)
		tr.FlipSelected(-1)
		assert.Equal(t, 0, tr.NSelected())
	})

	t.Run("selection survives filtering", func(t *testing.T) {
		tr.FlipSelected(10) // x.txt
		tr.Filter("src")
		require.Equal(t, 1, tr.NSelected())
		assert.Equal(t, []string{"./x.txt"}, tr.SelectedPaths())
	})
}

func TestNodeAt(t *testing.T) {
	tr := testTree(t)

	require.NotNil(t, tr.NodeAt(0))
	assert.Equal(t, ".", tr.NodeAt(0).Joined)
	assert.Equal(t, "./src/bayes", tr.NodeAt(4).Joined)
	assert.Nil(t, tr.NodeAt(11))
	assert.Nil(t, tr.NodeAt(-1))

	t.Run("skips unmatched and collapsed nodes", func(t *testing.T) {
		tr.Filter("b")
		tr.FlipOpen(2) // close ./src/bayes
		assert.Equal(t, "./src/cakes", tr.NodeAt(3).Joined)
	})
}

func TestInfoLine(t *testing.T) {
	tr := testTree(t)
	assert.Equal(t, "(selected: 0, shown: 11, total: 11)", tr.InfoLine())

	tr.Filter("src")
	tr.FlipSelected(0)
	assert.Equal(t, "(selected: 1, shown: 8, total: 11)", tr.InfoLine())
}

func TestNewFromOutput(t *testing.T) {
	tr, err := New([]byte("src\nsrc/main.go\ntmp\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, tr.NPaths())

	_, err = New([]byte{0xff})
	assert.Error(t, err)
}
