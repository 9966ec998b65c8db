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

// LoadEvents runs the events domain, the highest-volume load. The collect
// pass scans every event file once to close the controlled vocabularies,
// then the extraction pass interleaves parsing with per-file flushes so that
// peak memory stays bounded by one file regardless of corpus size. Within a
// file, events flush ahead of the subtype and relation rows keyed on them.
func (l *Loader) LoadEvents(ctx context.Context) (*batch.RunReport, error) {
	report := batch.NewRunReport("events")

	files, err := source.ListJSONFiles(l.dataPath(l.cfg.EventsDir))
	if err != nil {
		return report, err
	}
	l.logger.WithContext(ctx).WithFields(map[string]any{"files": len(files)}).Info("Loading events")

	lookups := extract.NewEventLookups()
	cardTypeKeys := resolver.NewKeySet()
	for _, file := range files {
		raws, err := source.ReadDocumentArray(file)
		if err != nil {
			continue
		}
		for _, raw := range raws {
			var doc source.EventDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				continue
			}
			extract.CollectEventKeys(doc, lookups, cardTypeKeys)
		}
	}

	lookupWrites := []struct {
		table tables.Descriptor
		refs  extract.LookupRefs
	}{
		{tables.EventTypes, lookups.EventTypes},
		{tables.PlayPatterns, lookups.PlayPatterns},
		{tables.Positions, lookups.Positions},
		{tables.BodyParts, lookups.BodyParts},
		{tables.Outcomes, lookups.Outcomes},
		{tables.Techniques, lookups.Techniques},
		{tables.Heights, lookups.Heights},
		{tables.PassTypes, lookups.PassTypes},
		{tables.ShotTypes, lookups.ShotTypes},
		{tables.DuelTypes, lookups.DuelTypes},
		{tables.GoalkeeperTypes, lookups.GoalkeeperTypes},
	}
	for _, write := range lookupWrites {
		if err := l.writeLookups(ctx, write.table, write.refs, report); err != nil {
			return report, err
		}
	}

	cardTypes, err := l.resolver.Reconcile(ctx, cardTypesDimension, cardTypeKeys)
	if err != nil {
		return report, err
	}

	matchIDs, err := l.matchIDSet(ctx)
	if err != nil {
		return report, err
	}

	events := l.newWriter(tables.Events, report)
	relations := l.newWriter(tables.EventRelations, report).DependsOn(events)
	passes := l.newWriter(tables.Passes, report).DependsOn(events)
	shots := l.newWriter(tables.Shots, report).DependsOn(events)
	duels := l.newWriter(tables.Duels, report).DependsOn(events)
	dribbles := l.newWriter(tables.Dribbles, report).DependsOn(events)
	interceptions := l.newWriter(tables.Interceptions, report).DependsOn(events)
	clearances := l.newWriter(tables.Clearances, report).DependsOn(events)
	goalkeeperEvents := l.newWriter(tables.GoalkeeperEvents, report).DependsOn(events)
	fouls := l.newWriter(tables.Fouls, report).DependsOn(events)
	dependents := []*batch.Writer{relations, passes, shots, duels, dribbles, interceptions, clearances, goalkeeperEvents, fouls}

	for _, file := range files {
		matchID, err := source.MatchIDFromFilename(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "events", file, err)
			continue
		}
		if _, ok := matchIDs[matchID]; !ok {
			report.FileSkipped(file, errUnknownMatch.Error())
			l.skipFile(ctx, "events", file, errUnknownMatch)
			continue
		}

		raws, err := source.ReadDocumentArray(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "events", file, err)
			continue
		}

		for _, raw := range raws {
			var doc source.EventDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				report.DocumentSkipped(file, err.Error())
				l.skipDocument(ctx, "events", file, err)
				continue
			}

			rows, err := extract.Event(matchID, doc, raw, cardTypes)
			if err != nil {
				return report, err
			}
			if err := l.addEventRows(ctx, rows, events, relations, passes, shots, duels, dribbles, interceptions, clearances, goalkeeperEvents, fouls); err != nil {
				return report, err
			}
		}

		if err := events.Flush(ctx); err != nil {
			return report, err
		}
		for _, w := range dependents {
			if err := w.Flush(ctx); err != nil {
				return report, err
			}
		}

		report.FileProcessed()
		l.progress(ctx, "events", report.FilesProcessed, len(files))
	}

	l.logger.WithContext(ctx).WithFields(map[string]any{"events": report.Rows("events"), "passes": report.Rows("passes"), "shots": report.Rows("shots")}).Info("Events load complete")
	return report, nil
}

func (l *Loader) addEventRows(ctx context.Context, rows extract.EventRows, events, relations, passes, shots, duels, dribbles, interceptions, clearances, goalkeeperEvents, fouls *batch.Writer) error {
	if err := events.Add(ctx, tables.EventValues(rows.Event)); err != nil {
		return err
	}
	for _, relation := range rows.Relations {
		if err := relations.Add(ctx, tables.EventRelationValues(relation)); err != nil {
			return err
		}
	}

	switch {
	case rows.Pass != nil:
		return passes.Add(ctx, tables.PassValues(*rows.Pass))
	case rows.Shot != nil:
		return shots.Add(ctx, tables.ShotValues(*rows.Shot))
	case rows.Duel != nil:
		return duels.Add(ctx, tables.DuelValues(*rows.Duel))
	case rows.Dribble != nil:
		return dribbles.Add(ctx, tables.DribbleValues(*rows.Dribble))
	case rows.Interception != nil:
		return interceptions.Add(ctx, tables.InterceptionValues(*rows.Interception))
	case rows.Clearance != nil:
		return clearances.Add(ctx, tables.ClearanceValues(*rows.Clearance))
	case rows.Goalkeeper != nil:
		return goalkeeperEvents.Add(ctx, tables.GoalkeeperEventValues(*rows.Goalkeeper))
	case rows.Foul != nil:
		return fouls.Add(ctx, tables.FoulValues(*rows.Foul))
	}
	return nil
}
