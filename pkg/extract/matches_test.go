package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

const matchJSON = `{
	"match_id": 18245,
	"match_date": "2011-04-02",
	"kick_off": "20:45:00.000",
	"competition": {"competition_id": 11, "country_name": "Spain", "competition_name": "La Liga"},
	"season": {"season_id": 22, "season_name": "2010/2011"},
	"home_team": {
		"home_team_id": 217,
		"home_team_name": "Barcelona",
		"home_team_gender": "male",
		"country": {"id": 214, "name": "Spain"},
		"managers": [{"id": 89, "name": "Josep Guardiola", "nickname": "Pep Guardiola", "dob": "1971-01-18", "country": {"id": 214, "name": "Spain"}}]
	},
	"away_team": {
		"away_team_id": 206,
		"away_team_name": "Villarreal",
		"away_team_gender": "male",
		"country": {"id": 214, "name": "Spain"}
	},
	"home_score": 1,
	"away_score": 0,
	"match_week": 30,
	"competition_stage": {"id": 1, "name": "Regular Season"},
	"stadium": {"id": 342, "name": "Camp Nou", "country": {"id": 214, "name": "Spain"}},
	"referee": {"id": 222, "name": "Muñiz Fernández", "country": {"id": 214, "name": "Spain"}}
}`

func TestMatch(t *testing.T) {
	var doc source.MatchDoc
	require.NoError(t, json.Unmarshal([]byte(matchJSON), &doc))
	countries := map[string]int{"Spain": 4}

	rows, err := Match(doc, json.RawMessage(matchJSON), countries)
	require.NoError(t, err)

	assert.Equal(t, 18245, rows.Match.MatchID)
	require.NotNil(t, rows.Match.CompetitionID)
	assert.Equal(t, 11, *rows.Match.CompetitionID)
	require.NotNil(t, rows.Match.SeasonID)
	assert.Equal(t, 22, *rows.Match.SeasonID)
	require.NotNil(t, rows.Match.CompetitionStage)
	assert.Equal(t, "Regular Season", *rows.Match.CompetitionStage)

	require.Len(t, rows.Teams, 2)
	assert.Equal(t, 217, rows.Teams[0].TeamID)
	require.NotNil(t, rows.Teams[0].CountryID)
	assert.Equal(t, 4, *rows.Teams[0].CountryID)

	require.Len(t, rows.Managers, 1, "away side lists no managers")
	assert.Equal(t, 89, rows.Managers[0].ManagerID)
	require.NotNil(t, rows.Match.HomeManagerID)
	assert.Equal(t, 89, *rows.Match.HomeManagerID)
	assert.Nil(t, rows.Match.AwayManagerID)

	require.NotNil(t, rows.Stadium)
	assert.Equal(t, "Camp Nou", rows.Stadium.Name)
	require.NotNil(t, rows.Referee)
	assert.Equal(t, 222, rows.Referee.RefereeID)

	assert.Equal(t, matchJSON, string(rows.Match.SourceData))
}

func TestMatchRoundTrip(t *testing.T) {
	var doc source.MatchDoc
	require.NoError(t, json.Unmarshal([]byte(matchJSON), &doc))
	countries := map[string]int{"Spain": 4}

	rows, err := Match(doc, json.RawMessage(matchJSON), countries)
	require.NoError(t, err)

	// The stored source record must be enough to rebuild every derived row.
	var redecoded source.MatchDoc
	require.NoError(t, json.Unmarshal(rows.Match.SourceData, &redecoded))
	rederived, err := Match(redecoded, rows.Match.SourceData, countries)
	require.NoError(t, err)

	assert.Equal(t, rows, rederived)
}

func TestMatchUnresolvableCountry(t *testing.T) {
	var doc source.MatchDoc
	require.NoError(t, json.Unmarshal([]byte(matchJSON), &doc))

	_, err := Match(doc, json.RawMessage(matchJSON), map[string]int{})
	require.Error(t, err, "a country missing after reconcile is a load-ordering bug")
	assert.Contains(t, err.Error(), "Spain")
}

func TestCollectMatchCountries(t *testing.T) {
	var doc source.MatchDoc
	require.NoError(t, json.Unmarshal([]byte(matchJSON), &doc))

	keys := resolver.NewKeySet()
	CollectMatchCountries(doc, keys)
	assert.Equal(t, []string{"Spain"}, keys.Keys())
}

func TestCompetition(t *testing.T) {
	raw := `{
		"competition_id": 11,
		"season_id": 22,
		"country_name": "Spain",
		"competition_name": "La Liga",
		"competition_gender": "male",
		"competition_youth": false,
		"competition_international": false,
		"season_name": "2010/2011"
	}`
	var doc source.CompetitionDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	competition, season, err := Competition(doc, json.RawMessage(raw), map[string]int{"Spain": 4})
	require.NoError(t, err)

	assert.Equal(t, 11, competition.CompetitionID)
	assert.Equal(t, "La Liga", competition.Name)
	require.NotNil(t, competition.CountryID)
	assert.Equal(t, 4, *competition.CountryID)
	assert.False(t, competition.International)
	assert.Equal(t, raw, string(competition.SourceData))

	assert.Equal(t, 22, season.SeasonID)
	assert.Equal(t, "2010/2011", season.SeasonName)
}
