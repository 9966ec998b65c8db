// Package batch implements the conflict-tolerant batched writer the loaders
// funnel every row through, plus the end-of-run report. Batch sizes are
// derived per table from the bound-parameter ceiling, and duplicate rows are
// discarded by the database rather than erroring, which is what makes load
// runs safely resumable.
package batch

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/metrics"
	"github.com/vukovuko/football-rag/pkg/tables"
)

// Writer accumulates rows for one destination table and flushes them as
// multi-row inserts whenever the batch threshold is reached. Callers must
// Flush once input is exhausted to drain the final partial batch.
type Writer struct {
	db        database.DB
	logger    ectologger.Logger
	table     tables.Descriptor
	threshold int
	rows      [][]any
	report    *RunReport
	parents   []*Writer
}

// NewWriter sizes the batch for the table's width so that rows-per-batch
// times columns stays under paramBudget.
func NewWriter(db database.DB, logger ectologger.Logger, table tables.Descriptor, paramBudget int, report *RunReport) *Writer {
	threshold := table.BatchSize(paramBudget)
	return &Writer{
		db:        db,
		logger:    logger,
		table:     table,
		threshold: threshold,
		rows:      make([][]any, 0, threshold),
		report:    report,
	}
}

// DependsOn registers writers whose rows must reach the database before this
// writer's. Tables narrower than their parent fill the parameter budget
// sooner, so without this an auto-flush could write rows whose referenced
// parent rows are still buffered.
func (w *Writer) DependsOn(parents ...*Writer) *Writer {
	w.parents = append(w.parents, parents...)
	return w
}

// Add buffers one row and flushes when the batch is full.
func (w *Writer) Add(ctx context.Context, values []any) error {
	if len(values) != len(w.table.Columns) {
		return fmt.Errorf("table %s expects %d values per row, got %d", w.table.Name, len(w.table.Columns), len(values))
	}

	w.rows = append(w.rows, values)
	if len(w.rows) >= w.threshold {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered rows as one insert-or-ignore statement. Any
// database error here is fatal to the run: duplicates never surface as
// errors, so whatever does is a modeling bug, not expected input variance.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.rows) == 0 {
		return nil
	}

	for _, parent := range w.parents {
		if err := parent.Flush(ctx); err != nil {
			return err
		}
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(w.table.Name)
	ib.Cols(w.table.Columns...)
	for _, row := range w.rows {
		ib.Values(row...)
	}
	ib.OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := w.db.ExecContext(ctx, query, args...); err != nil {
		w.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"table": w.table.Name, "rows": len(w.rows)}).Error("Failed to flush batch")
		return fmt.Errorf("flush %d rows to %s: %w", len(w.rows), w.table.Name, err)
	}

	w.logger.WithContext(ctx).WithFields(map[string]any{"table": w.table.Name, "rows": len(w.rows)}).Debug("Flushed batch")
	metrics.RowsLoaded.WithLabelValues(w.table.Name).Add(float64(len(w.rows)))
	metrics.BatchFlushes.WithLabelValues(w.table.Name).Inc()
	if w.report != nil {
		w.report.AddRows(w.table.Name, len(w.rows))
	}

	w.rows = w.rows[:0]
	return nil
}
