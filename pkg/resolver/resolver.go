// Package resolver implements the two-phase identity resolution protocol for
// dimension tables: a collect phase gathers every natural key referenced
// anywhere in the corpus, a reconcile phase diffs them against the persisted
// dimension and inserts the missing rows, then re-reads the table to hand
// back a complete key-to-id map. Fact extraction only starts once the map is
// closed, so an unresolvable key later is a load-ordering bug, not bad data.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

// KeySet accumulates distinct natural keys during the collect phase. Empty
// keys are ignored since source records reference dimensions by name and a
// missing name means the reference is simply absent.
type KeySet struct {
	keys map[string]struct{}
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]struct{})}
}

func (s *KeySet) Add(key string) {
	if key == "" {
		return
	}
	s.keys[key] = struct{}{}
}

func (s *KeySet) Len() int {
	return len(s.keys)
}

// Keys returns the collected keys sorted, so reconcile inserts are
// deterministic across runs.
func (s *KeySet) Keys() []string {
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Dimension describes a name-keyed dimension table with a generated
// surrogate id.
type Dimension struct {
	Table      string
	IDColumn   string
	NameColumn string
}

// Resolver reconciles collected natural keys against persisted dimensions.
type Resolver struct {
	db     database.DB
	logger ectologger.Logger
}

func New(db database.DB, logger ectologger.Logger) *Resolver {
	return &Resolver{
		db:     db,
		logger: logger,
	}
}

// Reconcile inserts any collected keys missing from the dimension table,
// then re-reads the table and returns the complete natural-key-to-id map.
// The re-read is required because surrogate ids are generated by the
// database, not the source.
func (r *Resolver) Reconcile(ctx context.Context, dim Dimension, keys *KeySet) (map[string]int, error) {
	ctx, span := tracing.StartSpan(ctx, "resolver.Reconcile")
	defer span.End()

	existing, err := r.fetch(ctx, dim)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range keys.Keys() {
		if _, ok := existing[key]; !ok {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		ib := database.NewInsertBuilder()
		ib.InsertInto(dim.Table)
		ib.Cols(dim.NameColumn)
		for _, key := range missing {
			ib.Values(key)
		}
		ib.OnConflictDoNothing()

		query, args := ib.Build()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"table": dim.Table, "missing": len(missing)}).Error("Failed to insert missing dimension rows")
			return nil, fmt.Errorf("insert missing %s rows: %w", dim.Table, err)
		}
		r.logger.WithContext(ctx).WithFields(map[string]any{"table": dim.Table, "inserted": len(missing)}).Debug("Inserted missing dimension rows")

		existing, err = r.fetch(ctx, dim)
		if err != nil {
			return nil, err
		}
	}

	for _, key := range keys.Keys() {
		if _, ok := existing[key]; !ok {
			return nil, fmt.Errorf("dimension %s is missing key %q after reconcile", dim.Table, key)
		}
	}
	return existing, nil
}

// RequireNonEmpty aborts the caller when a prerequisite dimension that an
// earlier loader should have populated is empty. Proceeding would silently
// null out every foreign key that depends on it.
func (r *Resolver) RequireNonEmpty(ctx context.Context, dim Dimension) error {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(dim.Table)

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return fmt.Errorf("count %s rows: %w", dim.Table, err)
	}
	if count == 0 {
		return fmt.Errorf("dimension table %s is empty; run its loader before this one", dim.Table)
	}
	return nil
}

func (r *Resolver) fetch(ctx context.Context, dim Dimension) (map[string]int, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(dim.IDColumn, dim.NameColumn)
	sb.From(dim.Table)

	query, args := sb.Build()
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"table": dim.Table}).Error("Failed to read dimension table")
		return nil, fmt.Errorf("read %s: %w", dim.Table, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", dim.Table, err)
		}
		result[name] = id
	}
	return result, rows.Err()
}

// Resolve looks a key up in a reconciled map. A miss is a hard failure
// because the collect phase is supposed to have produced a closed key set.
func Resolve(m map[string]int, dimension, key string) (int, error) {
	id, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("unresolvable %s key %q after reconcile", dimension, key)
	}
	return id, nil
}
