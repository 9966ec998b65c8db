package models

import "encoding/json"

// Lineup is one roster entry per (match, player).
type Lineup struct {
	MatchID      int             `json:"match_id" db:"match_id"`
	PlayerID     int             `json:"player_id" db:"player_id"`
	TeamID       int             `json:"team_id" db:"team_id"`
	JerseyNumber *int            `json:"jersey_number,omitempty" db:"jersey_number"`
	SourceData   json.RawMessage `json:"source_data,omitempty" db:"source_data"`
}

// PlayerPosition is a time-boxed position stint within a match. ToTime is
// nil for the open-ended final stint; DurationSeconds is derived at extract
// time with the missing end defaulted to full-time, while the raw null is
// preserved in the lineup's backup record.
type PlayerPosition struct {
	MatchID         int     `json:"match_id" db:"match_id"`
	PlayerID        int     `json:"player_id" db:"player_id"`
	StintIndex      int     `json:"stint_index" db:"stint_index"`
	PositionID      *int    `json:"position_id,omitempty" db:"position_id"`
	FromTime        string  `json:"from_time" db:"from_time"`
	ToTime          *string `json:"to_time,omitempty" db:"to_time"`
	FromPeriod      *int    `json:"from_period,omitempty" db:"from_period"`
	ToPeriod        *int    `json:"to_period,omitempty" db:"to_period"`
	StartReason     *string `json:"start_reason,omitempty" db:"start_reason"`
	EndReason       *string `json:"end_reason,omitempty" db:"end_reason"`
	DurationSeconds float64 `json:"duration_seconds" db:"duration_seconds"`
}

// Card is one disciplinary event per (match, player, index).
type Card struct {
	MatchID    int     `json:"match_id" db:"match_id"`
	PlayerID   int     `json:"player_id" db:"player_id"`
	CardIndex  int     `json:"card_index" db:"card_index"`
	CardTypeID *int    `json:"card_type_id,omitempty" db:"card_type_id"`
	CardTime   *string `json:"card_time,omitempty" db:"card_time"`
	Period     *int    `json:"period,omitempty" db:"period"`
	Reason     *string `json:"reason,omitempty" db:"reason"`
}
