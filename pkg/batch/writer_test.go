package batch

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/tables"
)

type execCall struct {
	query string
	args  []any
}

// execRecorder records ExecContext calls; the embedded interface panics on
// anything else the writer should never touch.
type execRecorder struct {
	database.DB
	calls []execCall
}

func (r *execRecorder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	r.calls = append(r.calls, execCall{query: query, args: args})
	return nil, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
}

func TestWriterBatchBoundary(t *testing.T) {
	ctx := context.Background()
	table := tables.Descriptor{Name: "things", Columns: []string{"a", "b", "c"}}
	db := &execRecorder{}

	// Budget of 9 parameters and 3 columns gives a threshold of 3 rows.
	w := NewWriter(db, testLogger(), table, 9, nil)

	for i := 0; i < 4; i++ {
		require.NoError(t, w.Add(ctx, []any{i, i, i}))
	}
	require.NoError(t, w.Flush(ctx))

	require.Len(t, db.calls, 2, "one more row than the threshold must produce two batches")
	assert.Len(t, db.calls[0].args, 9)
	assert.Len(t, db.calls[1].args, 3)
	assert.Contains(t, db.calls[0].query, "ON CONFLICT DO NOTHING")
}

func TestWriterExactThreshold(t *testing.T) {
	ctx := context.Background()
	table := tables.Descriptor{Name: "pairs", Columns: []string{"x", "y"}}
	db := &execRecorder{}

	w := NewWriter(db, testLogger(), table, 4, nil)
	require.NoError(t, w.Add(ctx, []any{1, 2}))
	require.NoError(t, w.Add(ctx, []any{3, 4}))
	require.NoError(t, w.Flush(ctx))

	assert.Len(t, db.calls, 1)
}

func TestWriterFlushesParentFirst(t *testing.T) {
	ctx := context.Background()
	db := &execRecorder{}
	logger := testLogger()

	// The child's five-row threshold fills long before the parent's: the
	// parent's buffered rows must reach the database first.
	parent := NewWriter(db, logger, tables.Descriptor{Name: "parents", Columns: []string{"id", "a", "b", "c", "d"}}, 50, nil)
	child := NewWriter(db, logger, tables.Descriptor{Name: "children", Columns: []string{"parent_id"}}, 5, nil).DependsOn(parent)

	for i := 0; i < 5; i++ {
		require.NoError(t, parent.Add(ctx, []any{i, 0, 0, 0, 0}))
		require.NoError(t, child.Add(ctx, []any{i}))
	}

	require.Len(t, db.calls, 2, "the child's auto-flush drains the parent first")
	assert.Contains(t, db.calls[0].query, "INSERT INTO parents")
	assert.Contains(t, db.calls[1].query, "INSERT INTO children")
	assert.Len(t, db.calls[0].args, 25)
	assert.Len(t, db.calls[1].args, 5)
}

func TestWriterArityCheck(t *testing.T) {
	table := tables.Descriptor{Name: "pairs", Columns: []string{"x", "y"}}
	w := NewWriter(&execRecorder{}, testLogger(), table, 100, nil)

	err := w.Add(context.Background(), []any{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 values")
}

func TestWriterFlushEmpty(t *testing.T) {
	table := tables.Descriptor{Name: "pairs", Columns: []string{"x", "y"}}
	db := &execRecorder{}
	w := NewWriter(db, testLogger(), table, 100, nil)

	require.NoError(t, w.Flush(context.Background()))
	assert.Empty(t, db.calls)
}

func TestWriterReportsRows(t *testing.T) {
	ctx := context.Background()
	table := tables.Descriptor{Name: "pairs", Columns: []string{"x", "y"}}
	report := NewRunReport("test")

	w := NewWriter(&execRecorder{}, testLogger(), table, 4, report)
	require.NoError(t, w.Add(ctx, []any{1, 2}))
	require.NoError(t, w.Flush(ctx))

	assert.Equal(t, 1, report.Rows("pairs"))
}
