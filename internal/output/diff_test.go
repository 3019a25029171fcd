package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffYAML(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		got, err := DiffYAML(nil, nil, false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("identical", func(t *testing.T) {
		doc := []byte("- id: 100\n  Count: 1\n")
		got, err := DiffYAML(doc, doc, false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("changed id", func(t *testing.T) {
		got, err := DiffYAML(
			[]byte("- id: 100\n  Count: 1\n"),
			[]byte("- id: 205\n  Count: 1\n"),
			false,
		)
		require.NoError(t, err)
		assert.Contains(t, got, "100")
		assert.Contains(t, got, "205")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := DiffYAML([]byte("a: [unclosed"), []byte("a: 1"), false)
		assert.Error(t, err)
	})
}
