package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("plain select passes", func(t *testing.T) {
		assert.Nil(t, Check("SELECT name FROM players WHERE total_goals > 10"))
	})

	t.Run("cte passes", func(t *testing.T) {
		assert.Nil(t, Check("WITH scorers AS (SELECT player_id FROM shots) SELECT * FROM scorers"))
	})

	t.Run("trailing semicolon passes", func(t *testing.T) {
		assert.Nil(t, Check("SELECT 1;"))
	})

	t.Run("delete rejected with keyword named", func(t *testing.T) {
		violation := Check("DELETE FROM players")
		require.NotNil(t, violation)
		assert.Equal(t, RuleMutatingKeyword, violation.Rule)
		assert.Contains(t, violation.Detail, "DELETE")

		violation = Check("SELECT * FROM players -- delete from players")
		require.NotNil(t, violation)
		assert.Equal(t, RuleMutatingKeyword, violation.Rule)
		assert.Contains(t, violation.Detail, "DELETE")
	})

	t.Run("multiple statements rejected", func(t *testing.T) {
		violation := Check("SELECT 1; SELECT 2")
		require.NotNil(t, violation)
		assert.Equal(t, RuleMultipleStatements, violation.Rule)
	})

	t.Run("lowercase embedded update rejected", func(t *testing.T) {
		violation := Check("SELECT * FROM (select 1) q WHERE 'update x set y=1' = 'update x set y=1'")
		require.NotNil(t, violation)
		assert.Equal(t, RuleMutatingKeyword, violation.Rule)
		assert.Contains(t, violation.Detail, "UPDATE")
	})

	t.Run("keyword as substring of an identifier passes", func(t *testing.T) {
		assert.Nil(t, Check("SELECT updated_at FROM player_updates_view"), "whole-word match only")
	})

	t.Run("empty statement rejected", func(t *testing.T) {
		violation := Check("   ")
		require.NotNil(t, violation)
		assert.Equal(t, RuleEmptyStatement, violation.Rule)
	})

	t.Run("non read-only prefix rejected", func(t *testing.T) {
		violation := Check("EXPLAIN SELECT 1")
		require.NotNil(t, violation)
		assert.Equal(t, RuleReadOnlyPrefix, violation.Rule)
	})
}

func TestHasRowLimit(t *testing.T) {
	assert.True(t, HasRowLimit("SELECT * FROM players LIMIT 10"))
	assert.True(t, HasRowLimit("select * from players limit 10"))
	assert.False(t, HasRowLimit("SELECT * FROM players"))
	assert.False(t, HasRowLimit("SELECT unlimited_column FROM players"), "whole-word match only")
}
