package models

import "encoding/json"

// Country rows use locally generated surrogate ids: the competitions index
// names countries that never appear with an id in the match files.
type Country struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Competition struct {
	CompetitionID int             `json:"competition_id" db:"competition_id"`
	Name          string          `json:"name" db:"name"`
	Gender        *string         `json:"gender,omitempty" db:"gender"`
	CountryID     *int            `json:"country_id,omitempty" db:"country_id"`
	Youth         bool            `json:"youth" db:"youth"`
	International bool            `json:"international" db:"international"`
	SourceData    json.RawMessage `json:"source_data,omitempty" db:"source_data"`
}

type Season struct {
	SeasonID   int    `json:"season_id" db:"season_id"`
	SeasonName string `json:"season_name" db:"season_name"`
}

type Team struct {
	TeamID    int     `json:"team_id" db:"team_id"`
	Name      string  `json:"name" db:"name"`
	Gender    *string `json:"gender,omitempty" db:"gender"`
	CountryID *int    `json:"country_id,omitempty" db:"country_id"`
}

type Manager struct {
	ManagerID   int     `json:"manager_id" db:"manager_id"`
	Name        string  `json:"name" db:"name"`
	Nickname    *string `json:"nickname,omitempty" db:"nickname"`
	DateOfBirth *string `json:"date_of_birth,omitempty" db:"date_of_birth"`
	CountryID   *int    `json:"country_id,omitempty" db:"country_id"`
}

type Stadium struct {
	StadiumID int    `json:"stadium_id" db:"stadium_id"`
	Name      string `json:"name" db:"name"`
	CountryID *int   `json:"country_id,omitempty" db:"country_id"`
}

type Referee struct {
	RefereeID int    `json:"referee_id" db:"referee_id"`
	Name      string `json:"name" db:"name"`
	CountryID *int   `json:"country_id,omitempty" db:"country_id"`
}
