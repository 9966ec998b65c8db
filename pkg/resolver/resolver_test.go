package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySet(t *testing.T) {
	set := NewKeySet()
	set.Add("Spain")
	set.Add("Germany")
	set.Add("Spain")
	set.Add("")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"Germany", "Spain"}, set.Keys())
}

func TestResolve(t *testing.T) {
	m := map[string]int{"Spain": 4, "Germany": 7}

	id, err := Resolve(m, "countries", "Spain")
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	_, err = Resolve(m, "countries", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
}
