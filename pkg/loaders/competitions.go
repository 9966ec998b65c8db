package loaders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vukovuko/football-rag/pkg/batch"
	"github.com/vukovuko/football-rag/pkg/extract"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
	"github.com/vukovuko/football-rag/pkg/tables"
)

// LoadCompetitions runs the competitions domain from the single index file.
// The index references countries that exist nowhere else in the corpus, so
// it reconciles the countries dimension with its own names. An entirely
// empty countries table means the matches loader never ran, which is a
// load-ordering failure, not something to paper over with nulls.
func (l *Loader) LoadCompetitions(ctx context.Context) (*batch.RunReport, error) {
	report := batch.NewRunReport("competitions")

	if err := l.resolver.RequireNonEmpty(ctx, countriesDimension); err != nil {
		return report, err
	}

	path := l.dataPath(l.cfg.CompetitionsFile)
	raws, err := source.ReadDocumentArray(path)
	if err != nil {
		return report, err
	}

	docs := make([]source.CompetitionDoc, 0, len(raws))
	for _, raw := range raws {
		var doc source.CompetitionDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return report, fmt.Errorf("decode competition document: %w", err)
		}
		docs = append(docs, doc)
	}

	countryKeys := resolver.NewKeySet()
	extract.CollectCompetitionCountries(docs, countryKeys)
	countries, err := l.resolver.Reconcile(ctx, countriesDimension, countryKeys)
	if err != nil {
		return report, err
	}

	competitions := l.newWriter(tables.Competitions, report)
	seasons := l.newWriter(tables.Seasons, report)

	for i, doc := range docs {
		competition, season, err := extract.Competition(doc, raws[i], countries)
		if err != nil {
			return report, err
		}
		if err := competitions.Add(ctx, tables.CompetitionValues(competition)); err != nil {
			return report, err
		}
		if err := seasons.Add(ctx, tables.SeasonValues(season)); err != nil {
			return report, err
		}
	}

	if err := competitions.Flush(ctx); err != nil {
		return report, err
	}
	if err := seasons.Flush(ctx); err != nil {
		return report, err
	}

	report.FileProcessed()
	l.logger.WithContext(ctx).WithFields(map[string]any{"competitions": report.Rows("competitions"), "seasons": report.Rows("seasons")}).Info("Competitions load complete")
	return report, nil
}
