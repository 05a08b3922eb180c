package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		out, err := Run("echo hello world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", string(out))
	})

	t.Run("splits the command line on whitespace", func(t *testing.T) {
		out, err := Run("  echo   a  b  ")
		require.NoError(t, err)
		assert.Equal(t, "a b\n", string(out))
	})

	t.Run("missing program is an error", func(t *testing.T) {
		_, err := Run("definitely-not-a-real-command-xyz")
		assert.Error(t, err)
	})

	t.Run("non-zero exit is an error", func(t *testing.T) {
		_, err := Run("false")
		assert.Error(t, err)
	})

	t.Run("empty command line is an error", func(t *testing.T) {
		_, err := Run("   ")
		assert.Error(t, err)
	})
}

func TestDefaultCommand(t *testing.T) {
	cmd := DefaultCommand()
	assert.Contains(t, []string{"fd", "find ."}, cmd)
}
