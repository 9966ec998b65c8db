package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocumentArray(t *testing.T) {
	dir := t.TempDir()

	t.Run("splits array into raw documents", func(t *testing.T) {
		path := filepath.Join(dir, "11.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"a":1},{"b":2}]`), 0o644))

		docs, err := ReadDocumentArray(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.JSONEq(t, `{"a":1}`, string(docs[0]))
		assert.JSONEq(t, `{"b":2}`, string(docs[1]))
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		path := filepath.Join(dir, "12.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"`), 0o644))

		_, err := ReadDocumentArray(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ReadDocumentArray(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

func TestListJSONFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, err := ListJSONFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "1.json"), files[0])
	assert.Equal(t, filepath.Join(dir, "2.json"), files[1])
}

func TestListMatchFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "11", "90"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "11", "90", "matches.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2", "44.json"), []byte(`[]`), 0o644))

	files, err := ListMatchFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
}
