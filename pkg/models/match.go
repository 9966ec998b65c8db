package models

import "encoding/json"

// Match is the root fact entity. MatchID comes from the source file tree,
// never from a field inside the payload.
type Match struct {
	MatchID          int             `json:"match_id" db:"match_id"`
	CompetitionID    *int            `json:"competition_id,omitempty" db:"competition_id"`
	SeasonID         *int            `json:"season_id,omitempty" db:"season_id"`
	MatchDate        *string         `json:"match_date,omitempty" db:"match_date"`
	KickOff          *string         `json:"kick_off,omitempty" db:"kick_off"`
	HomeTeamID       *int            `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID       *int            `json:"away_team_id,omitempty" db:"away_team_id"`
	HomeScore        *int            `json:"home_score,omitempty" db:"home_score"`
	AwayScore        *int            `json:"away_score,omitempty" db:"away_score"`
	HomeManagerID    *int            `json:"home_manager_id,omitempty" db:"home_manager_id"`
	AwayManagerID    *int            `json:"away_manager_id,omitempty" db:"away_manager_id"`
	MatchWeek        *int            `json:"match_week,omitempty" db:"match_week"`
	CompetitionStage *string         `json:"competition_stage,omitempty" db:"competition_stage"`
	StadiumID        *int            `json:"stadium_id,omitempty" db:"stadium_id"`
	RefereeID        *int            `json:"referee_id,omitempty" db:"referee_id"`
	SourceData       json.RawMessage `json:"source_data,omitempty" db:"source_data"`
}
