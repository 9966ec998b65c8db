package models

// Lookup is the shared shape of every controlled-vocabulary table
// (event types, outcomes, techniques, ...). The source embeds these as
// {id, name} pairs inline on each event.
type Lookup struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Lookup table names, in the order the loaders populate them.
const (
	TableEventTypes      = "event_types"
	TablePlayPatterns    = "play_patterns"
	TablePositions       = "positions"
	TableBodyParts       = "body_parts"
	TableOutcomes        = "outcomes"
	TableTechniques      = "techniques"
	TableHeights         = "heights"
	TablePassTypes       = "pass_types"
	TableShotTypes       = "shot_types"
	TableDuelTypes       = "duel_types"
	TableGoalkeeperTypes = "goalkeeper_types"
	TableCardTypes       = "card_types"
)
