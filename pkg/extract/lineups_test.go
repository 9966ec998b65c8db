package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

func lineupTeamDoc(t *testing.T, players ...string) source.LineupTeamDoc {
	t.Helper()
	doc := source.LineupTeamDoc{TeamID: 217, TeamName: "Barcelona"}
	for _, player := range players {
		doc.Lineup = append(doc.Lineup, json.RawMessage(player))
	}
	return doc
}

func TestLineup(t *testing.T) {
	countries := map[string]int{"Spain": 4}
	cardTypes := map[string]int{"Yellow Card": 1}

	t.Run("minutes derivation with open-ended final stint", func(t *testing.T) {
		doc := lineupTeamDoc(t, `{
			"player_id": 5503,
			"player_name": "Lionel Messi",
			"country": {"id": 11, "name": "Spain"},
			"positions": [
				{"position_id": 17, "position": "Right Wing", "from": "00:00", "to": "45:00"},
				{"position_id": 23, "position": "Center Forward", "from": "45:00", "to": null}
			]
		}`)

		rows, err := Lineup(18245, doc, countries, cardTypes, 90)
		require.NoError(t, err)
		require.Len(t, rows.Positions, 2)

		total := rows.Positions[0].DurationSeconds + rows.Positions[1].DurationSeconds
		assert.InDelta(t, 90*60, total, 1e-9, "open-ended final stint defaults to full time")

		assert.Equal(t, 0, rows.Positions[0].StintIndex)
		assert.Equal(t, 1, rows.Positions[1].StintIndex)
		assert.Nil(t, rows.Positions[1].ToTime, "raw null end time is preserved")
	})

	t.Run("empty optional arrays produce no rows", func(t *testing.T) {
		doc := lineupTeamDoc(t, `{
			"player_id": 4320,
			"player_name": "Jordi Alba",
			"cards": [],
			"positions": []
		}`)

		rows, err := Lineup(18245, doc, countries, cardTypes, 90)
		require.NoError(t, err)
		assert.Len(t, rows.Players, 1)
		assert.Len(t, rows.Lineups, 1)
		assert.Empty(t, rows.Positions)
		assert.Empty(t, rows.Cards)
	})

	t.Run("cards resolve by name and keep source order", func(t *testing.T) {
		doc := lineupTeamDoc(t, `{
			"player_id": 5203,
			"player_name": "Sergio Busquets",
			"cards": [
				{"time": "33:12", "card_type": "Yellow Card", "reason": "Foul", "period": 1}
			]
		}`)

		rows, err := Lineup(18245, doc, countries, cardTypes, 90)
		require.NoError(t, err)
		require.Len(t, rows.Cards, 1)
		require.NotNil(t, rows.Cards[0].CardTypeID)
		assert.Equal(t, 1, *rows.Cards[0].CardTypeID)
		assert.Equal(t, 0, rows.Cards[0].CardIndex)
	})

	t.Run("lineup entry keeps its raw record verbatim", func(t *testing.T) {
		raw := `{"player_id": 4320, "player_name": "Jordi Alba", "jersey_number": 18}`
		doc := lineupTeamDoc(t, raw)

		rows, err := Lineup(18245, doc, countries, cardTypes, 90)
		require.NoError(t, err)
		require.Len(t, rows.Lineups, 1)
		assert.Equal(t, raw, string(rows.Lineups[0].SourceData))
	})

	t.Run("unknown card type is a hard failure", func(t *testing.T) {
		doc := lineupTeamDoc(t, `{
			"player_id": 5203,
			"player_name": "Sergio Busquets",
			"cards": [{"time": "12:00", "card_type": "Purple Card"}]
		}`)

		_, err := Lineup(18245, doc, countries, cardTypes, 90)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Purple Card")
	})
}

func TestCollectLineupKeys(t *testing.T) {
	doc := lineupTeamDoc(t, `{
		"player_id": 1,
		"player_name": "A",
		"country": {"id": 9, "name": "Croatia"},
		"cards": [{"time": "10:00", "card_type": "Red Card"}],
		"positions": [{"position_id": 1, "position": "Goalkeeper", "from": "00:00", "to": null}]
	}`)

	countries := resolver.NewKeySet()
	cardTypes := resolver.NewKeySet()
	positions := make(LookupRefs)
	require.NoError(t, CollectLineupKeys(doc, countries, cardTypes, positions))

	assert.Equal(t, []string{"Croatia"}, countries.Keys())
	assert.Equal(t, []string{"Red Card"}, cardTypes.Keys())
	assert.Equal(t, "Goalkeeper", positions[1])
}

func TestStintDuration(t *testing.T) {
	end := "45:00"

	duration, err := stintDuration("00:00", &end, 90)
	require.NoError(t, err)
	assert.InDelta(t, 2700, duration, 1e-9)

	duration, err = stintDuration("45:00", nil, 90)
	require.NoError(t, err)
	assert.InDelta(t, 2700, duration, 1e-9)

	_, err = stintDuration("not a clock", nil, 90)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	seconds, err := parseClock("45:30")
	require.NoError(t, err)
	assert.InDelta(t, 2730, seconds, 1e-9)

	seconds, err = parseClock("01:02:03")
	require.NoError(t, err)
	assert.InDelta(t, 3723, seconds, 1e-9)

	_, err = parseClock("45")
	assert.Error(t, err)
}
