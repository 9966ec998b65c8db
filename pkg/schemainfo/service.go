package schemainfo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

// Column is one column of a described table.
type Column struct {
	Name       string `json:"name" db:"column_name"`
	DataType   string `json:"data_type" db:"data_type"`
	Nullable   bool   `json:"nullable" db:"nullable"`
	PrimaryKey bool   `json:"primary_key" db:"primary_key"`
}

// Table is one described table with its estimated row count.
type Table struct {
	Name     string   `json:"name"`
	Columns  []Column `json:"columns"`
	RowCount int64    `json:"row_count"`
}

// Schema is the full public-schema description.
type Schema struct {
	Tables      []Table   `json:"tables"`
	DescribedAt time.Time `json:"described_at"`
}

// Service describes the loaded schema, caching results for the configured
// TTL.
type Service struct {
	db     database.DB
	logger ectologger.Logger
	cache  *Cache
}

func NewService(db database.DB, logger ectologger.Logger, ttl time.Duration) *Service {
	return &Service{
		db:     db,
		logger: logger,
		cache:  NewCache(ttl, nil),
	}
}

// Invalidate drops the cached description, forcing the next Describe to
// rebuild it. The loader is a separate process, so invalidation is driven by
// the API's own callers.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

const columnQuery = `
	SELECT
		c.table_name,
		c.column_name,
		c.data_type,
		c.is_nullable = 'YES' AS nullable,
		COALESCE(pk.is_primary, false) AS primary_key
	FROM information_schema.columns c
	LEFT JOIN (
		SELECT kcu.table_name, kcu.column_name, true AS is_primary
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = 'public'
	) pk ON pk.table_name = c.table_name AND pk.column_name = c.column_name
	WHERE c.table_schema = 'public'
	ORDER BY c.table_name, c.ordinal_position`

const rowCountQuery = `
	SELECT relname, n_live_tup
	FROM pg_stat_user_tables
	WHERE schemaname = 'public'`

// Describe returns the schema description, rebuilding it when the cache has
// expired. Row counts are planner estimates; exact counts over the event
// tables would be prohibitively slow for a metadata endpoint.
func (s *Service) Describe(ctx context.Context) (*Schema, error) {
	ctx, span := tracing.StartSpan(ctx, "schemainfo.Service.Describe")
	defer span.End()

	if cached := s.cache.Get(); cached != nil {
		return cached, nil
	}

	schema, err := s.describe(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(schema)
	return schema, nil
}

func (s *Service) describe(ctx context.Context) (*Schema, error) {
	type columnRow struct {
		TableName  string `db:"table_name"`
		ColumnName string `db:"column_name"`
		DataType   string `db:"data_type"`
		Nullable   bool   `db:"nullable"`
		PrimaryKey bool   `db:"primary_key"`
	}

	var columns []columnRow
	if err := s.db.SelectContext(ctx, &columns, columnQuery); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to describe schema columns")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to describe schema")
	}

	type countRow struct {
		Name  string `db:"relname"`
		Count int64  `db:"n_live_tup"`
	}
	var counts []countRow
	if err := s.db.SelectContext(ctx, &counts, rowCountQuery); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to read table row counts")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to describe schema")
	}
	countsByTable := make(map[string]int64, len(counts))
	for _, row := range counts {
		countsByTable[row.Name] = row.Count
	}

	schema := &Schema{DescribedAt: time.Now().UTC()}
	byName := make(map[string]int)
	for _, column := range columns {
		index, ok := byName[column.TableName]
		if !ok {
			schema.Tables = append(schema.Tables, Table{
				Name:     column.TableName,
				RowCount: countsByTable[column.TableName],
			})
			index = len(schema.Tables) - 1
			byName[column.TableName] = index
		}
		schema.Tables[index].Columns = append(schema.Tables[index].Columns, Column{
			Name:       column.ColumnName,
			DataType:   column.DataType,
			Nullable:   column.Nullable,
			PrimaryKey: column.PrimaryKey,
		})
	}

	if len(schema.Tables) == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no tables in schema %q; run the loader first", "public"))
	}
	return schema, nil
}
