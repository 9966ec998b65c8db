package loaders

import (
	"context"
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/batch"
	"github.com/vukovuko/football-rag/pkg/extract"
	"github.com/vukovuko/football-rag/pkg/source"
	"github.com/vukovuko/football-rag/pkg/tables"
)

// LoadThreeSixty runs the 360 tracking domain: one file per match keyed by
// numeric filename. Tracking coverage is partial and the files come from a
// separate distribution, so corrupt files and files for unknown matches are
// skipped and counted, never fatal.
func (l *Loader) LoadThreeSixty(ctx context.Context) (*batch.RunReport, error) {
	report := batch.NewRunReport("three-sixty")

	files, err := source.ListJSONFiles(l.dataPath(l.cfg.ThreeSixtyDir))
	if err != nil {
		return report, err
	}
	l.logger.WithContext(ctx).WithFields(map[string]any{"files": len(files)}).Info("Loading 360 tracking frames")

	matchIDs, err := l.matchIDSet(ctx)
	if err != nil {
		return report, err
	}

	frames := l.newWriter(tables.Frames, report)
	framePlayers := l.newWriter(tables.FramePlayers, report).DependsOn(frames)

	for _, file := range files {
		matchID, err := source.MatchIDFromFilename(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "three-sixty", file, err)
			continue
		}
		if _, ok := matchIDs[matchID]; !ok {
			report.FileSkipped(file, errUnknownMatch.Error())
			l.skipFile(ctx, "three-sixty", file, errUnknownMatch)
			continue
		}

		raws, err := source.ReadDocumentArray(file)
		if err != nil {
			report.FileSkipped(file, err.Error())
			l.skipFile(ctx, "three-sixty", file, err)
			continue
		}

		for _, raw := range raws {
			var doc source.FrameDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				report.DocumentSkipped(file, err.Error())
				l.skipDocument(ctx, "three-sixty", file, err)
				continue
			}

			frame, players := extract.Frame(matchID, doc, raw)
			if err := frames.Add(ctx, tables.FrameValues(frame)); err != nil {
				return report, err
			}
			for _, player := range players {
				if err := framePlayers.Add(ctx, tables.FramePlayerValues(player)); err != nil {
					return report, err
				}
			}
		}

		// Frames flush before the players keyed on them.
		if err := frames.Flush(ctx); err != nil {
			return report, err
		}
		if err := framePlayers.Flush(ctx); err != nil {
			return report, err
		}

		report.FileProcessed()
		l.progress(ctx, "three-sixty", report.FilesProcessed, len(files))
	}

	l.logger.WithContext(ctx).WithFields(map[string]any{"frames": report.Rows("frames"), "frame_players": report.Rows("frame_players")}).Info("360 tracking load complete")
	return report, nil
}
