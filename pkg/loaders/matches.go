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

// LoadMatches runs the matches domain: a collect pass gathers every country
// name the match files mention and reconciles the countries dimension, then
// the extraction pass writes teams, managers, stadiums and referees before
// the match facts that reference them.
func (l *Loader) LoadMatches(ctx context.Context) (*batch.RunReport, error) {
	report := batch.NewRunReport("matches")

	files, err := source.ListMatchFiles(l.dataPath(l.cfg.MatchesDir))
	if err != nil {
		return report, err
	}
	l.logger.WithContext(ctx).WithFields(map[string]any{"files": len(files)}).Info("Loading matches")

	countryKeys := resolver.NewKeySet()
	for _, file := range files {
		docs, err := source.ReadDocumentArray(file)
		if err != nil {
			// Collect-phase failures repeat in the extraction pass, which
			// owns the skip accounting.
			continue
		}
		for _, raw := range docs {
			var doc source.MatchDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				continue
			}
			extract.CollectMatchCountries(doc, countryKeys)
		}
	}

	countries, err := l.resolver.Reconcile(ctx, countriesDimension, countryKeys)
	if err != nil {
		return report, err
	}

	teams := l.newWriter(tables.Teams, report)
	managers := l.newWriter(tables.Managers, report)
	stadiums := l.newWriter(tables.Stadiums, report)
	referees := l.newWriter(tables.Referees, report)
	matches := l.newWriter(tables.Matches, report).DependsOn(teams, managers, stadiums, referees)

	for _, file := range files {
		docs, err := source.ReadDocumentArray(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "matches", file, err)
			continue
		}

		for _, raw := range docs {
			var doc source.MatchDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				report.DocumentSkipped(file, fmt.Sprintf("decode match document: %v", err))
				l.skipDocument(ctx, "matches", file, err)
				continue
			}

			rows, err := extract.Match(doc, raw, countries)
			if err != nil {
				return report, err
			}

			for _, team := range rows.Teams {
				if err := teams.Add(ctx, tables.TeamValues(team)); err != nil {
					return report, err
				}
			}
			for _, manager := range rows.Managers {
				if err := managers.Add(ctx, tables.ManagerValues(manager)); err != nil {
					return report, err
				}
			}
			if rows.Stadium != nil {
				if err := stadiums.Add(ctx, tables.StadiumValues(*rows.Stadium)); err != nil {
					return report, err
				}
			}
			if rows.Referee != nil {
				if err := referees.Add(ctx, tables.RefereeValues(*rows.Referee)); err != nil {
					return report, err
				}
			}
			if err := matches.Add(ctx, tables.MatchValues(rows.Match)); err != nil {
				return report, err
			}
		}

		// Dimensions flush before the matches that reference them.
		for _, w := range []*batch.Writer{teams, managers, stadiums, referees, matches} {
			if err := w.Flush(ctx); err != nil {
				return report, err
			}
		}
		report.FileProcessed()
	}

	l.logger.WithContext(ctx).WithFields(map[string]any{"matches": report.Rows("matches")}).Info("Matches load complete")
	return report, nil
}
