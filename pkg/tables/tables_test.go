package tables

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vukovuko/football-rag/pkg/models"
)

func TestBatchSizeStaysUnderBudget(t *testing.T) {
	assert.Equal(t, 2857, Events.BatchSize(60000))
	assert.Equal(t, 30000, Seasons.BatchSize(60000))
	assert.Equal(t, 3750, Matches.BatchSize(60000))

	// A budget narrower than one row still writes one row at a time.
	assert.Equal(t, 1, Events.BatchSize(10))

	for _, d := range []Descriptor{Competitions, Matches, Events, Passes, Frames} {
		size := d.BatchSize(60000)
		assert.LessOrEqual(t, size*len(d.Columns), 60000, d.Name)
	}
}

func TestJSONValue(t *testing.T) {
	assert.Nil(t, jsonValue(nil))
	assert.Nil(t, jsonValue(json.RawMessage{}))
	assert.Equal(t, `{"a": 1}`, jsonValue(json.RawMessage(`{"a": 1}`)))
}

func TestValueMappersMatchColumnWidth(t *testing.T) {
	assert.Len(t, MatchValues(models.Match{}), len(Matches.Columns))
	assert.Len(t, EventValues(models.Event{}), len(Events.Columns))
	assert.Len(t, PassValues(models.Pass{}), len(Passes.Columns))
	assert.Len(t, ShotValues(models.Shot{}), len(Shots.Columns))
	assert.Len(t, LineupValues(models.Lineup{}), len(Lineups.Columns))
	assert.Len(t, PlayerPositionValues(models.PlayerPosition{}), len(PlayerPositions.Columns))
	assert.Len(t, FrameValues(models.Frame{}), len(Frames.Columns))
	assert.Len(t, FramePlayerValues(models.FramePlayer{}), len(FramePlayers.Columns))
}
