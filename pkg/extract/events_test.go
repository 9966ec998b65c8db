package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

func decodeEvent(t *testing.T, raw string) (source.EventDoc, json.RawMessage) {
	t.Helper()
	var doc source.EventDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, json.RawMessage(raw)
}

func subtypeCount(rows EventRows) int {
	count := 0
	for _, present := range []bool{
		rows.Pass != nil, rows.Shot != nil, rows.Duel != nil, rows.Dribble != nil,
		rows.Interception != nil, rows.Clearance != nil, rows.Goalkeeper != nil, rows.Foul != nil,
	} {
		if present {
			count++
		}
	}
	return count
}

func TestEvent(t *testing.T) {
	cardTypes := map[string]int{"Yellow Card": 1, "Red Card": 2}

	t.Run("pass event produces exactly one subtype row", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "a1b2",
			"index": 12,
			"period": 1,
			"timestamp": "00:05:17.250",
			"minute": 5,
			"second": 17,
			"type": {"id": 30, "name": "Pass"},
			"possession": 4,
			"possession_team": {"id": 217, "name": "Barcelona"},
			"play_pattern": {"id": 1, "name": "Regular Play"},
			"team": {"id": 217, "name": "Barcelona"},
			"player": {"id": 5503, "name": "Lionel Messi"},
			"position": {"id": 17, "name": "Right Wing"},
			"location": [61.1, 40.2],
			"duration": 0.85,
			"pass": {
				"recipient": {"id": 4320, "name": "Jordi Alba"},
				"length": 18.5,
				"angle": -1.2,
				"height": {"id": 1, "name": "Ground Pass"},
				"end_location": [75.0, 30.4],
				"body_part": {"id": 40, "name": "Right Foot"},
				"goal_assist": true
			}
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)

		assert.Equal(t, 1, subtypeCount(rows), "exactly one subtype row per event")
		require.NotNil(t, rows.Pass)
		assert.Equal(t, "a1b2", rows.Pass.EventID)
		require.NotNil(t, rows.Pass.RecipientID)
		assert.Equal(t, 4320, *rows.Pass.RecipientID)
		assert.True(t, rows.Pass.IsAssist)
		require.NotNil(t, rows.Pass.EndX)
		assert.InDelta(t, 75.0, *rows.Pass.EndX, 1e-9)

		require.NotNil(t, rows.Event.LocationX)
		assert.InDelta(t, 61.1, *rows.Event.LocationX, 1e-9)
		assert.Equal(t, 30, rows.Event.TypeID)
	})

	t.Run("source record is kept verbatim", func(t *testing.T) {
		raw := `{"id": "x9", "index": 1, "period": 1, "minute": 0, "second": 3, "type": {"id": 42, "name": "Ball Receipt"}}`
		doc, rawMsg := decodeEvent(t, raw)

		rows, err := Event(18245, doc, rawMsg, cardTypes)
		require.NoError(t, err)
		assert.Equal(t, raw, string(rows.Event.SourceData))
	})

	t.Run("type without a subtype table produces only the core row", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "c3",
			"index": 1,
			"period": 1,
			"minute": 0,
			"second": 0,
			"type": {"id": 35, "name": "Starting XI"}
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)
		assert.Zero(t, subtypeCount(rows))
		assert.Nil(t, rows.Event.PlayerID, "administrative events have no player")
	})

	t.Run("subtype type code without the matching payload produces no subtype", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "d4",
			"index": 7,
			"period": 1,
			"minute": 2,
			"second": 9,
			"type": {"id": 16, "name": "Shot"}
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)
		assert.Zero(t, subtypeCount(rows))
	})

	t.Run("shot end location carries the optional z", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "e5",
			"index": 30,
			"period": 2,
			"minute": 67,
			"second": 2,
			"type": {"id": 16, "name": "Shot"},
			"shot": {
				"end_location": [119.2, 41.0, 2.3],
				"statsbomb_xg": 0.34,
				"outcome": {"id": 97, "name": "Goal"},
				"first_time": true
			}
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)
		require.NotNil(t, rows.Shot)
		require.NotNil(t, rows.Shot.EndZ)
		assert.InDelta(t, 2.3, *rows.Shot.EndZ, 1e-9)
		require.NotNil(t, rows.Shot.XG)
		assert.InDelta(t, 0.34, *rows.Shot.XG, 1e-9)
	})

	t.Run("foul card resolves by name", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "f6",
			"index": 40,
			"period": 2,
			"minute": 80,
			"second": 11,
			"type": {"id": 22, "name": "Foul Committed"},
			"foul_committed": {"card": {"id": 7, "name": "Yellow Card"}, "penalty": false}
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)
		require.NotNil(t, rows.Foul)
		require.NotNil(t, rows.Foul.CardTypeID)
		assert.Equal(t, 1, *rows.Foul.CardTypeID)
	})

	t.Run("related events become directed pairs", func(t *testing.T) {
		doc, raw := decodeEvent(t, `{
			"id": "g7",
			"index": 50,
			"period": 2,
			"minute": 88,
			"second": 3,
			"type": {"id": 30, "name": "Pass"},
			"related_events": ["h8", "i9"]
		}`)

		rows, err := Event(18245, doc, raw, cardTypes)
		require.NoError(t, err)
		require.Len(t, rows.Relations, 2)
		assert.Equal(t, "g7", rows.Relations[0].EventID)
		assert.Equal(t, "h8", rows.Relations[0].RelatedEventID)
	})
}

func TestEventRoundTrip(t *testing.T) {
	cardTypes := map[string]int{"Yellow Card": 1, "Red Card": 2}

	doc, raw := decodeEvent(t, `{
		"id": "a1b2",
		"index": 12,
		"period": 1,
		"timestamp": "00:05:17.250",
		"minute": 5,
		"second": 17,
		"type": {"id": 30, "name": "Pass"},
		"possession": 4,
		"possession_team": {"id": 217, "name": "Barcelona"},
		"play_pattern": {"id": 1, "name": "Regular Play"},
		"team": {"id": 217, "name": "Barcelona"},
		"player": {"id": 5503, "name": "Lionel Messi"},
		"position": {"id": 17, "name": "Right Wing"},
		"location": [61.1, 40.2],
		"duration": 0.85,
		"under_pressure": true,
		"related_events": ["h8"],
		"pass": {
			"recipient": {"id": 4320, "name": "Jordi Alba"},
			"length": 18.5,
			"angle": -1.2,
			"height": {"id": 1, "name": "Ground Pass"},
			"end_location": [75.0, 30.4],
			"body_part": {"id": 40, "name": "Right Foot"},
			"goal_assist": true
		}
	}`)

	rows, err := Event(18245, doc, raw, cardTypes)
	require.NoError(t, err)

	// The stored source record must be enough to rebuild every derived row.
	var redecoded source.EventDoc
	require.NoError(t, json.Unmarshal(rows.Event.SourceData, &redecoded))
	rederived, err := Event(18245, redecoded, rows.Event.SourceData, cardTypes)
	require.NoError(t, err)

	assert.Equal(t, rows, rederived)
}

func TestCollectEventKeys(t *testing.T) {
	doc, _ := decodeEvent(t, `{
		"id": "a1",
		"index": 1,
		"period": 1,
		"minute": 0,
		"second": 0,
		"type": {"id": 16, "name": "Shot"},
		"shot": {
			"outcome": {"id": 97, "name": "Goal"},
			"type": {"id": 87, "name": "Open Play"},
			"body_part": {"id": 40, "name": "Right Foot"}
		}
	}`)

	lookups := NewEventLookups()
	cardTypes := resolver.NewKeySet()
	CollectEventKeys(doc, lookups, cardTypes)

	assert.Equal(t, "Shot", lookups.EventTypes[16])
	assert.Equal(t, "Goal", lookups.Outcomes[97])
	assert.Equal(t, "Open Play", lookups.ShotTypes[87])
	assert.Equal(t, "Right Foot", lookups.BodyParts[40])
	assert.Zero(t, cardTypes.Len())
}

func TestLookupRefsKeepsFirstName(t *testing.T) {
	refs := make(LookupRefs)
	refs.Add(&source.Ref{ID: 1, Name: "First"})
	refs.Add(&source.Ref{ID: 1, Name: "Second"})
	refs.Add(nil)

	assert.Equal(t, "First", refs[1])
	assert.Len(t, refs, 1)
}
