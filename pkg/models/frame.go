package models

import "encoding/json"

// Frame is one freeze-frame of tracking data keyed by the event it annotates.
// EventID references the events table logically, but no foreign key is
// enforced since tracking coverage is a subset of event coverage.
type Frame struct {
	EventID         string          `json:"event_id" db:"event_id"`
	MatchID         int             `json:"match_id" db:"match_id"`
	VisibleArea     json.RawMessage `json:"visible_area,omitempty" db:"visible_area"`
	VisibleAreaSize *float64        `json:"visible_area_size,omitempty" db:"visible_area_size"`
	SourceData      json.RawMessage `json:"source_data,omitempty" db:"source_data"`
}

// FramePlayer is one tracked player within a freeze-frame. Identity is not
// carried by the source, only role flags and pitch coordinates.
type FramePlayer struct {
	EventID           string   `json:"event_id" db:"event_id"`
	PlayerIndex       int      `json:"player_index" db:"player_index"`
	Teammate          bool     `json:"teammate" db:"teammate"`
	Actor             bool     `json:"actor" db:"actor"`
	Keeper            bool     `json:"keeper" db:"keeper"`
	X                 float64  `json:"x" db:"x"`
	Y                 float64  `json:"y" db:"y"`
	DistanceFromActor *float64 `json:"distance_from_actor,omitempty" db:"distance_from_actor"`
	InVisibleArea     *bool    `json:"in_visible_area,omitempty" db:"in_visible_area"`
}
