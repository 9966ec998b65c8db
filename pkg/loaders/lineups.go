package loaders

import (
	"context"
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/batch"
	"github.com/vukovuko/football-rag/pkg/extract"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
	"github.com/vukovuko/football-rag/pkg/tables"
)

// LoadLineups runs the lineups domain: one file per match keyed by numeric
// filename, two team blocks per file. The collect pass reconciles player
// countries and card types and gathers the positions vocabulary, all of
// which the roster rows reference.
func (l *Loader) LoadLineups(ctx context.Context) (*batch.RunReport, error) {
	report := batch.NewRunReport("lineups")

	files, err := source.ListJSONFiles(l.dataPath(l.cfg.LineupsDir))
	if err != nil {
		return report, err
	}
	l.logger.WithContext(ctx).WithFields(map[string]any{"files": len(files)}).Info("Loading lineups")

	countryKeys := resolver.NewKeySet()
	cardTypeKeys := resolver.NewKeySet()
	positionRefs := make(extract.LookupRefs)
	for _, file := range files {
		teams, err := readLineupFile(file)
		if err != nil {
			continue
		}
		for _, team := range teams {
			if err := extract.CollectLineupKeys(team, countryKeys, cardTypeKeys, positionRefs); err != nil {
				return report, err
			}
		}
	}

	countries, err := l.resolver.Reconcile(ctx, countriesDimension, countryKeys)
	if err != nil {
		return report, err
	}
	cardTypes, err := l.resolver.Reconcile(ctx, cardTypesDimension, cardTypeKeys)
	if err != nil {
		return report, err
	}
	if err := l.writeLookups(ctx, tables.Positions, positionRefs, report); err != nil {
		return report, err
	}

	matchIDs, err := l.matchIDSet(ctx)
	if err != nil {
		return report, err
	}

	players := l.newWriter(tables.Players, report)
	lineups := l.newWriter(tables.Lineups, report).DependsOn(players)
	positions := l.newWriter(tables.PlayerPositions, report).DependsOn(players)
	cards := l.newWriter(tables.Cards, report).DependsOn(players)

	for _, file := range files {
		matchID, err := source.MatchIDFromFilename(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "lineups", file, err)
			continue
		}
		if _, ok := matchIDs[matchID]; !ok {
			report.FileSkipped(file, "match absent from the match dimension")
			l.skipFile(ctx, "lineups", file, errUnknownMatch)
			continue
		}

		teams, err := readLineupFile(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "lineups", file, err)
			continue
		}

		for _, team := range teams {
			rows, err := extract.Lineup(matchID, team, countries, cardTypes, l.cfg.FullMatchMinutes)
			if err != nil {
				return report, err
			}

			for _, player := range rows.Players {
				if err := players.Add(ctx, tables.PlayerValues(player)); err != nil {
					return report, err
				}
			}
			for _, lineup := range rows.Lineups {
				if err := lineups.Add(ctx, tables.LineupValues(lineup)); err != nil {
					return report, err
				}
			}
			for _, position := range rows.Positions {
				if err := positions.Add(ctx, tables.PlayerPositionValues(position)); err != nil {
					return report, err
				}
			}
			for _, card := range rows.Cards {
				if err := cards.Add(ctx, tables.CardValues(card)); err != nil {
					return report, err
				}
			}
		}

		// Players flush ahead of the rows keyed on them.
		for _, w := range []*batch.Writer{players, lineups, positions, cards} {
			if err := w.Flush(ctx); err != nil {
				return report, err
			}
		}

		report.FileProcessed()
		l.progress(ctx, "lineups", report.FilesProcessed, len(files))
	}

	l.logger.WithContext(ctx).WithFields(map[string]any{"players": report.Rows("players"), "lineups": report.Rows("lineups")}).Info("Lineups load complete")
	return report, nil
}

func readLineupFile(path string) ([]source.LineupTeamDoc, error) {
	raws, err := source.ReadDocumentArray(path)
	if err != nil {
		return nil, err
	}

	teams := make([]source.LineupTeamDoc, 0, len(raws))
	for _, raw := range raws {
		var team source.LineupTeamDoc
		if err := json.Unmarshal(raw, &team); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}
