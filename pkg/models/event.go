package models

import "encoding/json"

// Event is one in-match discrete action. PlayerID is nil for administrative
// events (half start, tactical shift bookkeeping, ...). Each event has
// exactly one type and at most one subtype row in the type-specific table
// keyed by the same EventID.
type Event struct {
	EventID          string          `json:"event_id" db:"event_id"`
	MatchID          int             `json:"match_id" db:"match_id"`
	EventIndex       int             `json:"event_index" db:"event_index"`
	Period           int             `json:"period" db:"period"`
	EventTimestamp   *string         `json:"event_timestamp,omitempty" db:"event_timestamp"`
	Minute           int             `json:"minute" db:"minute"`
	Second           int             `json:"second" db:"second"`
	TypeID           int             `json:"type_id" db:"type_id"`
	Possession       *int            `json:"possession,omitempty" db:"possession"`
	PossessionTeamID *int            `json:"possession_team_id,omitempty" db:"possession_team_id"`
	PlayPatternID    *int            `json:"play_pattern_id,omitempty" db:"play_pattern_id"`
	TeamID           *int            `json:"team_id,omitempty" db:"team_id"`
	PlayerID         *int            `json:"player_id,omitempty" db:"player_id"`
	PositionID       *int            `json:"position_id,omitempty" db:"position_id"`
	LocationX        *float64        `json:"location_x,omitempty" db:"location_x"`
	LocationY        *float64        `json:"location_y,omitempty" db:"location_y"`
	Duration         *float64        `json:"duration,omitempty" db:"duration"`
	UnderPressure    bool            `json:"under_pressure" db:"under_pressure"`
	OffCamera        bool            `json:"off_camera" db:"off_camera"`
	Out              bool            `json:"out" db:"out"`
	SourceData       json.RawMessage `json:"source_data,omitempty" db:"source_data"`
}

// EventRelation links an event to a related event as a directed pair.
type EventRelation struct {
	EventID        string `json:"event_id" db:"event_id"`
	RelatedEventID string `json:"related_event_id" db:"related_event_id"`
}

type Pass struct {
	EventID        string   `json:"event_id" db:"event_id"`
	RecipientID    *int     `json:"recipient_id,omitempty" db:"recipient_id"`
	Length         *float64 `json:"length,omitempty" db:"length"`
	Angle          *float64 `json:"angle,omitempty" db:"angle"`
	HeightID       *int     `json:"height_id,omitempty" db:"height_id"`
	EndX           *float64 `json:"end_x,omitempty" db:"end_x"`
	EndY           *float64 `json:"end_y,omitempty" db:"end_y"`
	PassTypeID     *int     `json:"pass_type_id,omitempty" db:"pass_type_id"`
	BodyPartID     *int     `json:"body_part_id,omitempty" db:"body_part_id"`
	OutcomeID      *int     `json:"outcome_id,omitempty" db:"outcome_id"`
	TechniqueID    *int     `json:"technique_id,omitempty" db:"technique_id"`
	IsCross        bool     `json:"is_cross" db:"is_cross"`
	IsSwitch       bool     `json:"is_switch" db:"is_switch"`
	IsCutBack      bool     `json:"is_cut_back" db:"is_cut_back"`
	IsAssist       bool     `json:"is_assist" db:"is_assist"`
	AssistedShotID *string  `json:"assisted_shot_id,omitempty" db:"assisted_shot_id"`
}

type Shot struct {
	EventID     string   `json:"event_id" db:"event_id"`
	EndX        *float64 `json:"end_x,omitempty" db:"end_x"`
	EndY        *float64 `json:"end_y,omitempty" db:"end_y"`
	EndZ        *float64 `json:"end_z,omitempty" db:"end_z"`
	XG          *float64 `json:"xg,omitempty" db:"xg"`
	ShotTypeID  *int     `json:"shot_type_id,omitempty" db:"shot_type_id"`
	BodyPartID  *int     `json:"body_part_id,omitempty" db:"body_part_id"`
	OutcomeID   *int     `json:"outcome_id,omitempty" db:"outcome_id"`
	TechniqueID *int     `json:"technique_id,omitempty" db:"technique_id"`
	FirstTime   bool     `json:"first_time" db:"first_time"`
	OneOnOne    bool     `json:"one_on_one" db:"one_on_one"`
	KeyPassID   *string  `json:"key_pass_id,omitempty" db:"key_pass_id"`
}

type Duel struct {
	EventID      string `json:"event_id" db:"event_id"`
	DuelTypeID   *int   `json:"duel_type_id,omitempty" db:"duel_type_id"`
	OutcomeID    *int   `json:"outcome_id,omitempty" db:"outcome_id"`
	Counterpress bool   `json:"counterpress" db:"counterpress"`
}

type Dribble struct {
	EventID   string `json:"event_id" db:"event_id"`
	OutcomeID *int   `json:"outcome_id,omitempty" db:"outcome_id"`
	Nutmeg    bool   `json:"nutmeg" db:"nutmeg"`
	Overrun   bool   `json:"overrun" db:"overrun"`
	NoTouch   bool   `json:"no_touch" db:"no_touch"`
}

type Interception struct {
	EventID   string `json:"event_id" db:"event_id"`
	OutcomeID *int   `json:"outcome_id,omitempty" db:"outcome_id"`
}

type Clearance struct {
	EventID    string `json:"event_id" db:"event_id"`
	BodyPartID *int   `json:"body_part_id,omitempty" db:"body_part_id"`
	AerialWon  bool   `json:"aerial_won" db:"aerial_won"`
}

type GoalkeeperEvent struct {
	EventID          string   `json:"event_id" db:"event_id"`
	GoalkeeperTypeID *int     `json:"goalkeeper_type_id,omitempty" db:"goalkeeper_type_id"`
	OutcomeID        *int     `json:"outcome_id,omitempty" db:"outcome_id"`
	TechniqueID      *int     `json:"technique_id,omitempty" db:"technique_id"`
	BodyPartID       *int     `json:"body_part_id,omitempty" db:"body_part_id"`
	EndX             *float64 `json:"end_x,omitempty" db:"end_x"`
	EndY             *float64 `json:"end_y,omitempty" db:"end_y"`
}

type Foul struct {
	EventID    string `json:"event_id" db:"event_id"`
	CardTypeID *int   `json:"card_type_id,omitempty" db:"card_type_id"`
	Penalty    bool   `json:"penalty" db:"penalty"`
	Advantage  bool   `json:"advantage" db:"advantage"`
	Offensive  bool   `json:"offensive" db:"offensive"`
}
