package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIDFromFilename(t *testing.T) {
	t.Run("numeric stem", func(t *testing.T) {
		id, err := MatchIDFromFilename("/data/events/3788741.json")
		require.NoError(t, err)
		assert.Equal(t, 3788741, id)
	})

	t.Run("bare filename", func(t *testing.T) {
		id, err := MatchIDFromFilename("22912.json")
		require.NoError(t, err)
		assert.Equal(t, 22912, id)
	})

	t.Run("non-numeric stem", func(t *testing.T) {
		_, err := MatchIDFromFilename("/data/events/readme.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "numeric match id")
	})

	t.Run("zero stem", func(t *testing.T) {
		_, err := MatchIDFromFilename("0.json")
		require.Error(t, err)
	})

	t.Run("negative stem", func(t *testing.T) {
		_, err := MatchIDFromFilename("-12.json")
		require.Error(t, err)
	})
}
