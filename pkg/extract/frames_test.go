package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/pkg/source"
)

func decodeFrame(t *testing.T, raw string) (source.FrameDoc, json.RawMessage) {
	t.Helper()
	var doc source.FrameDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, json.RawMessage(raw)
}

func TestFrame(t *testing.T) {
	t.Run("derives area, distances and visibility", func(t *testing.T) {
		doc, raw := decodeFrame(t, `{
			"event_uuid": "aa-bb",
			"visible_area": [0, 0, 100, 0, 100, 80, 0, 80],
			"freeze_frame": [
				{"teammate": true, "actor": true, "keeper": false, "location": [50, 40]},
				{"teammate": false, "actor": false, "keeper": false, "location": [53, 44]},
				{"teammate": false, "actor": false, "keeper": true, "location": [110, 40]}
			]
		}`)

		frame, players := Frame(3788741, doc, raw)

		assert.Equal(t, "aa-bb", frame.EventID)
		assert.Equal(t, 3788741, frame.MatchID)
		require.NotNil(t, frame.VisibleAreaSize)
		assert.InDelta(t, 8000, *frame.VisibleAreaSize, 1e-9)

		require.Len(t, players, 3)

		require.NotNil(t, players[0].DistanceFromActor)
		assert.Zero(t, *players[0].DistanceFromActor, "actor distance to itself")

		require.NotNil(t, players[1].DistanceFromActor)
		assert.InDelta(t, 5, *players[1].DistanceFromActor, 1e-9)

		require.NotNil(t, players[1].InVisibleArea)
		assert.True(t, *players[1].InVisibleArea)
		require.NotNil(t, players[2].InVisibleArea)
		assert.False(t, *players[2].InVisibleArea, "keeper outside the camera polygon")
	})

	t.Run("no actor means nil distances", func(t *testing.T) {
		doc, raw := decodeFrame(t, `{
			"event_uuid": "cc-dd",
			"visible_area": [0, 0, 100, 0, 100, 80, 0, 80],
			"freeze_frame": [
				{"teammate": true, "actor": false, "keeper": false, "location": [10, 10]}
			]
		}`)

		_, players := Frame(3788741, doc, raw)
		require.Len(t, players, 1)
		assert.Nil(t, players[0].DistanceFromActor)
	})

	t.Run("degenerate visible area means nil size and visibility", func(t *testing.T) {
		doc, raw := decodeFrame(t, `{
			"event_uuid": "ee-ff",
			"visible_area": [0, 0, 100, 0],
			"freeze_frame": [
				{"teammate": true, "actor": false, "keeper": false, "location": [10, 10]}
			]
		}`)

		frame, players := Frame(3788741, doc, raw)
		assert.Nil(t, frame.VisibleAreaSize)
		require.Len(t, players, 1)
		assert.Nil(t, players[0].InVisibleArea)
	})

	t.Run("visible area stays raw for the backup column", func(t *testing.T) {
		doc, raw := decodeFrame(t, `{"event_uuid": "gg", "visible_area": [0.5, 1.25, 2, 3, 4, 5]}`)
		frame, _ := Frame(1, doc, raw)
		assert.Equal(t, `[0.5, 1.25, 2, 3, 4, 5]`, string(frame.VisibleArea))
		assert.Equal(t, string(raw), string(frame.SourceData))
	})
}
