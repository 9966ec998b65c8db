// Package loaders orchestrates the domain load runs. Each domain loader is a
// run-to-completion job: it pre-scans its file set to reconcile dimensions,
// then interleaves extraction with batched conflict-tolerant writes. Loaders
// run strictly in sequence because each one depends on the dimension rows
// its predecessors committed.
package loaders

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/vukovuko/football-rag/config"
	"github.com/vukovuko/football-rag/pkg/batch"
	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/extract"
	"github.com/vukovuko/football-rag/pkg/metrics"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/tables"
)

var countriesDimension = resolver.Dimension{Table: "countries", IDColumn: "id", NameColumn: "name"}
var cardTypesDimension = resolver.Dimension{Table: "card_types", IDColumn: "id", NameColumn: "name"}

// errUnknownMatch marks files whose filename-derived match id has no row in
// the match dimension. Tracking and lineup coverage can exceed the match
// corpus, so this is a tolerated defect rather than a failure.
var errUnknownMatch = errors.New("match absent from the match dimension")

// Loader carries the shared dependencies of every domain load.
type Loader struct {
	db       database.DB
	logger   ectologger.Logger
	cfg      *config.Config
	resolver *resolver.Resolver
}

func New(db database.DB, logger ectologger.Logger, cfg *config.Config) *Loader {
	return &Loader{
		db:       db,
		logger:   logger,
		cfg:      cfg,
		resolver: resolver.New(db, logger),
	}
}

// RunAll executes every domain load in dependency order, then the
// aggregation pass.
func (l *Loader) RunAll(ctx context.Context) ([]*batch.RunReport, error) {
	var reports []*batch.RunReport

	steps := []func(context.Context) (*batch.RunReport, error){
		l.LoadMatches,
		l.LoadCompetitions,
		l.LoadLineups,
		l.LoadThreeSixty,
		l.LoadEvents,
	}
	for _, step := range steps {
		report, err := step(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	if err := l.Aggregate(ctx); err != nil {
		return reports, err
	}
	return reports, nil
}

func (l *Loader) dataPath(parts ...string) string {
	return filepath.Join(append([]string{l.cfg.DataDir}, parts...)...)
}

func (l *Loader) newWriter(table tables.Descriptor, report *batch.RunReport) *batch.Writer {
	return batch.NewWriter(l.db, l.logger, table, l.cfg.LoaderParamBudget, report)
}

// writeLookups inserts collected source-id vocabulary rows into their lookup
// table, discarding rows already present.
func (l *Loader) writeLookups(ctx context.Context, table tables.Descriptor, refs extract.LookupRefs, report *batch.RunReport) error {
	if len(refs) == 0 {
		return nil
	}

	w := l.newWriter(table, report)
	for id, name := range refs {
		if err := w.Add(ctx, []any{id, name}); err != nil {
			return err
		}
	}
	return w.Flush(ctx)
}

// progress emits a periodic heartbeat during long file walks.
func (l *Loader) progress(ctx context.Context, domain string, processed, total int) {
	if l.cfg.LoaderProgressEvery <= 0 || processed%l.cfg.LoaderProgressEvery != 0 {
		return
	}
	l.logger.WithContext(ctx).WithFields(map[string]any{"domain": domain, "processed": processed, "total": total}).Info("Load progress")
}

// skipFile logs one tolerated input defect and bumps the skip metric. The
// caller records it on the run report.
func (l *Loader) skipFile(ctx context.Context, domain, file string, err error) {
	l.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"file": file}).Warn("Skipping source file")
	metrics.FilesSkipped.WithLabelValues(domain).Inc()
}

func (l *Loader) skipDocument(ctx context.Context, domain, file string, err error) {
	l.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"file": file}).Warn("Skipping source document")
	metrics.DocumentsSkipped.WithLabelValues(domain).Inc()
}

// matchIDSet reads the committed match ids, used by later domains to detect
// tracking files that reference matches absent from the match dimension.
func (l *Loader) matchIDSet(ctx context.Context) (map[int]struct{}, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("match_id")
	sb.From("matches")

	query, args := sb.Build()
	var ids []int
	if err := l.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("read match ids: %w", err)
	}

	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
