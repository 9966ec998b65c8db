package sandbox

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/metrics"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

// Result is the outcome of one sandboxed query. Exactly one of Violation and
// Columns/Rows is populated; execution errors surface as the Error field so
// the serving process never crashes on caller SQL.
type Result struct {
	Columns   []string         `json:"columns,omitempty"`
	Rows      []map[string]any `json:"rows,omitempty"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated"`
	Violation *Violation       `json:"violation,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Executor runs guarded statements against the loaded schema.
type Executor struct {
	db       database.DB
	logger   ectologger.Logger
	timeout  time.Duration
	rowLimit int
}

func NewExecutor(db database.DB, logger ectologger.Logger, timeout time.Duration, rowLimit int) *Executor {
	return &Executor{
		db:       db,
		logger:   logger,
		timeout:  timeout,
		rowLimit: rowLimit,
	}
}

// Execute validates and runs one statement. Guard violations and runtime
// failures both come back inside the Result; the returned error is reserved
// for transaction plumbing failures.
func (e *Executor) Execute(ctx context.Context, query string) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "sandbox.Executor.Execute")
	defer span.End()

	if violation := Check(query); violation != nil {
		e.logger.WithContext(ctx).WithFields(map[string]any{"rule": violation.Rule}).Info("Rejected sandboxed query")
		metrics.SandboxRejections.WithLabelValues(violation.Rule).Inc()
		return &Result{Violation: violation}, nil
	}

	statement := strings.TrimRight(strings.TrimSpace(query), ";")
	limited := statement
	if !HasRowLimit(statement) {
		limited = fmt.Sprintf("SELECT * FROM (%s) AS sandboxed LIMIT %d", statement, e.rowLimit+1)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	tx, err := e.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer tx.Rollback()

	timeoutMillis := e.timeout.Milliseconds()
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", timeoutMillis)); err != nil {
		return nil, fmt.Errorf("set statement timeout: %w", err)
	}

	rows, err := tx.QueryxContext(ctx, limited)
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Info("Sandboxed query failed")
		return &Result{Error: err.Error()}, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return &Result{Error: err.Error()}, nil
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		if len(result.Rows) >= e.rowLimit {
			result.Truncated = true
			break
		}
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return &Result{Error: err.Error()}, nil
		}
		for column, value := range row {
			if raw, ok := value.([]byte); ok {
				row[column] = string(raw)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return &Result{Error: err.Error()}, nil
	}

	result.RowCount = len(result.Rows)
	return result, nil
}
