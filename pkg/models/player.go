package models

// Player carries the career totals recomputed wholesale by the aggregation
// pass. The totals are derived, not authoritative; the event, lineup and
// card facts are the source of truth.
type Player struct {
	PlayerID  int     `json:"player_id" db:"player_id"`
	Name      string  `json:"name" db:"name"`
	Nickname  *string `json:"nickname,omitempty" db:"nickname"`
	CountryID *int    `json:"country_id,omitempty" db:"country_id"`

	TotalMatches     int     `json:"total_matches" db:"total_matches"`
	TotalGoals       int     `json:"total_goals" db:"total_goals"`
	TotalAssists     int     `json:"total_assists" db:"total_assists"`
	TotalYellowCards int     `json:"total_yellow_cards" db:"total_yellow_cards"`
	TotalRedCards    int     `json:"total_red_cards" db:"total_red_cards"`
	TotalMinutes     float64 `json:"total_minutes" db:"total_minutes"`
}
