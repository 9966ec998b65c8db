package loaders

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/config"
	"github.com/vukovuko/football-rag/pkg/database"
)

// stubDB serves a fixed match id set and swallows writes; everything else
// panics through the embedded interface.
type stubDB struct {
	database.DB
	matchIDs []int
	execs    int
	queries  []string
}

func (s *stubDB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ids, ok := dest.(*[]int)
	if !ok {
		return fmt.Errorf("unexpected dest %T", dest)
	}
	*ids = append(*ids, s.matchIDs...)
	return nil
}

func (s *stubDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	s.execs++
	s.queries = append(s.queries, query)
	return nil, nil
}

const validFrameFile = `[{
	"event_uuid": "aa-bb",
	"visible_area": [0, 0, 100, 0, 100, 80, 0, 80],
	"freeze_frame": [{"teammate": true, "actor": true, "keeper": false, "location": [50, 40]}]
}]`

func TestLoadThreeSixtyToleratesCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	trackingDir := filepath.Join(dir, "three-sixty")
	require.NoError(t, os.Mkdir(trackingDir, 0o755))

	const totalFiles = 326
	corrupt := map[int]bool{17: true, 150: true, 326: true}

	db := &stubDB{}
	for i := 1; i <= totalFiles; i++ {
		content := validFrameFile
		if corrupt[i] {
			content = `[{"event_uuid": "broken"`
		}
		require.NoError(t, os.WriteFile(filepath.Join(trackingDir, fmt.Sprintf("%d.json", i)), []byte(content), 0o644))
		db.matchIDs = append(db.matchIDs, i)
	}

	cfg := &config.Config{
		DataDir:           dir,
		ThreeSixtyDir:     "three-sixty",
		LoaderParamBudget: 60000,
	}
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})

	report, err := New(db, logger, cfg).LoadThreeSixty(context.Background())
	require.NoError(t, err, "corrupt files are skipped, not fatal")

	assert.Equal(t, totalFiles-len(corrupt), report.FilesProcessed)
	assert.Len(t, report.Skipped, len(corrupt))
	assert.Equal(t, totalFiles-len(corrupt), report.Rows("frames"))
	assert.Equal(t, totalFiles-len(corrupt), report.Rows("frame_players"))
}

func TestLoadThreeSixtyFlushesFramesBeforePlayers(t *testing.T) {
	dir := t.TempDir()
	trackingDir := filepath.Join(dir, "three-sixty")
	require.NoError(t, os.Mkdir(trackingDir, 0o755))

	// 500 frames of 15 players each: the frame_players buffer (9 columns)
	// fills its threshold mid-file while frames (5 columns) is nowhere near
	// its own, so the player flush must drain frames first.
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 500; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"event_uuid": "ev-%d", "visible_area": [0, 0, 100, 0, 100, 80, 0, 80], "freeze_frame": [`, i)
		for j := 0; j < 15; j++ {
			if j > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, `{"teammate": true, "actor": %t, "keeper": false, "location": [%d, %d]}`, j == 0, j, j)
		}
		b.WriteString("]}")
	}
	b.WriteString("]")
	require.NoError(t, os.WriteFile(filepath.Join(trackingDir, "1.json"), []byte(b.String()), 0o644))

	cfg := &config.Config{
		DataDir:           dir,
		ThreeSixtyDir:     "three-sixty",
		LoaderParamBudget: 60000,
	}
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	db := &stubDB{matchIDs: []int{1}}

	report, err := New(db, logger, cfg).LoadThreeSixty(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, report.Rows("frames"))
	assert.Equal(t, 7500, report.Rows("frame_players"))

	firstFrames, firstPlayers := -1, -1
	for i, query := range db.queries {
		if firstFrames == -1 && strings.Contains(query, "INSERT INTO frames") {
			firstFrames = i
		}
		if firstPlayers == -1 && strings.Contains(query, "INSERT INTO frame_players") {
			firstPlayers = i
		}
	}
	require.NotEqual(t, -1, firstPlayers)
	require.NotEqual(t, -1, firstFrames)
	assert.Less(t, firstFrames, firstPlayers, "buffered frames must reach the database before the players keyed on them")
}

func TestLoadThreeSixtyCountsBadDocumentsSeparately(t *testing.T) {
	dir := t.TempDir()
	trackingDir := filepath.Join(dir, "three-sixty")
	require.NoError(t, os.Mkdir(trackingDir, 0o755))

	// One undecodable document inside a file that otherwise loads: the file
	// counts as processed and the document lands in its own tally, so the
	// file counts never add up past the file total.
	const mixedFile = `[
		{"event_uuid": "aa-bb", "visible_area": [0, 0], "freeze_frame": [{"teammate": true, "actor": true, "keeper": false, "location": [50, 40]}]},
		{"event_uuid": 12345},
		{"event_uuid": "cc-dd", "visible_area": [0, 0], "freeze_frame": [{"teammate": false, "actor": false, "keeper": true, "location": [5, 40]}]}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(trackingDir, "1.json"), []byte(mixedFile), 0o644))

	cfg := &config.Config{
		DataDir:           dir,
		ThreeSixtyDir:     "three-sixty",
		LoaderParamBudget: 60000,
	}
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	db := &stubDB{matchIDs: []int{1}}

	report, err := New(db, logger, cfg).LoadThreeSixty(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.FilesProcessed)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.SkippedDocs, 1)
	assert.Equal(t, 2, report.Rows("frames"))
	assert.Equal(t, 2, report.Rows("frame_players"))
}

func TestLoadThreeSixtySkipsUnknownMatches(t *testing.T) {
	dir := t.TempDir()
	trackingDir := filepath.Join(dir, "three-sixty")
	require.NoError(t, os.Mkdir(trackingDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(trackingDir, "999.json"), []byte(validFrameFile), 0o644))

	cfg := &config.Config{
		DataDir:           dir,
		ThreeSixtyDir:     "three-sixty",
		LoaderParamBudget: 60000,
	}
	logger := ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
	db := &stubDB{matchIDs: []int{1}}

	report, err := New(db, logger, cfg).LoadThreeSixty(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.FilesProcessed)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "match absent")
}
