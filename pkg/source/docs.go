// Package source models the raw on-disk corpus: the per-domain JSON document
// shapes, the directory conventions, and the filename-derived identifiers
// that the payloads themselves do not carry.
package source

import "encoding/json"

// Ref is the ubiquitous {id, name} pair used for nested references and
// controlled-vocabulary values throughout the corpus.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CompetitionDoc is one row of the competitions index file. Competition and
// season identity arrive pre-joined; the country is referenced by name only.
type CompetitionDoc struct {
	CompetitionID            int     `json:"competition_id"`
	SeasonID                 int     `json:"season_id"`
	CountryName              string  `json:"country_name"`
	CompetitionName          string  `json:"competition_name"`
	CompetitionGender        *string `json:"competition_gender"`
	CompetitionYouth         bool    `json:"competition_youth"`
	CompetitionInternational bool    `json:"competition_international"`
	SeasonName               string  `json:"season_name"`
}

// ManagerDoc is a nested manager reference inside a match team.
type ManagerDoc struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Nickname *string `json:"nickname"`
	DOB      *string `json:"dob"`
	Country  *Ref    `json:"country"`
}

// HomeTeamDoc and AwayTeamDoc are the two sides of a match document. The
// JSON keys are prefixed per side, so each side decodes into its own shape.
type HomeTeamDoc struct {
	ID       int          `json:"home_team_id"`
	Name     string       `json:"home_team_name"`
	Gender   *string      `json:"home_team_gender"`
	Group    *string      `json:"home_team_group"`
	Country  *Ref         `json:"country"`
	Managers []ManagerDoc `json:"managers"`
}

type AwayTeamDoc struct {
	ID       int          `json:"away_team_id"`
	Name     string       `json:"away_team_name"`
	Gender   *string      `json:"away_team_gender"`
	Group    *string      `json:"away_team_group"`
	Country  *Ref         `json:"country"`
	Managers []ManagerDoc `json:"managers"`
}

// VenueDoc is a stadium or referee reference with an optional country.
type VenueDoc struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country *Ref   `json:"country"`
}

// MatchDoc is one match inside a competition/season match file.
type MatchDoc struct {
	MatchID int     `json:"match_id"`
	Date    *string `json:"match_date"`
	KickOff *string `json:"kick_off"`
	Competition *struct {
		CompetitionID int    `json:"competition_id"`
		CountryName   string `json:"country_name"`
		Name          string `json:"competition_name"`
	} `json:"competition"`
	Season *struct {
		SeasonID int    `json:"season_id"`
		Name     string `json:"season_name"`
	} `json:"season"`
	HomeTeam         *HomeTeamDoc `json:"home_team"`
	AwayTeam         *AwayTeamDoc `json:"away_team"`
	HomeScore        *int         `json:"home_score"`
	AwayScore        *int         `json:"away_score"`
	MatchWeek        *int         `json:"match_week"`
	CompetitionStage *Ref         `json:"competition_stage"`
	Stadium          *VenueDoc    `json:"stadium"`
	Referee          *VenueDoc    `json:"referee"`
}

// CardDoc is one disciplinary entry inside a lineup player.
type CardDoc struct {
	Time     *string `json:"time"`
	CardType string  `json:"card_type"`
	Reason   *string `json:"reason"`
	Period   *int    `json:"period"`
}

// PositionDoc is one time-boxed position stint inside a lineup player.
// To is null for the open-ended final stint.
type PositionDoc struct {
	PositionID  int     `json:"position_id"`
	Position    string  `json:"position"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	FromPeriod  *int    `json:"from_period"`
	ToPeriod    *int    `json:"to_period"`
	StartReason *string `json:"start_reason"`
	EndReason   *string `json:"end_reason"`
}

// LineupPlayerDoc is one roster entry inside a lineup team.
type LineupPlayerDoc struct {
	PlayerID       int           `json:"player_id"`
	PlayerName     string        `json:"player_name"`
	PlayerNickname *string       `json:"player_nickname"`
	JerseyNumber   *int          `json:"jersey_number"`
	Country        *Ref          `json:"country"`
	Cards          []CardDoc     `json:"cards"`
	Positions      []PositionDoc `json:"positions"`
}

// LineupTeamDoc is one of the two team blocks in a lineup file. The owning
// match id comes from the filename, not the payload. Roster entries stay raw
// so each player's original record can be kept verbatim as its backup.
type LineupTeamDoc struct {
	TeamID   int               `json:"team_id"`
	TeamName string            `json:"team_name"`
	Lineup   []json.RawMessage `json:"lineup"`
}

// Subtype payloads nested inside an event document. Exactly one of these is
// present per event, chosen by the event's type code.

type PassDoc struct {
	Recipient      *Ref      `json:"recipient"`
	Length         *float64  `json:"length"`
	Angle          *float64  `json:"angle"`
	Height         *Ref      `json:"height"`
	EndLocation    []float64 `json:"end_location"`
	Type           *Ref      `json:"type"`
	BodyPart       *Ref      `json:"body_part"`
	Outcome        *Ref      `json:"outcome"`
	Technique      *Ref      `json:"technique"`
	Cross          bool      `json:"cross"`
	Switch         bool      `json:"switch"`
	CutBack        bool      `json:"cut_back"`
	GoalAssist     bool      `json:"goal_assist"`
	AssistedShotID *string   `json:"assisted_shot_id"`
}

type ShotDoc struct {
	EndLocation []float64 `json:"end_location"`
	XG          *float64  `json:"statsbomb_xg"`
	Type        *Ref      `json:"type"`
	BodyPart    *Ref      `json:"body_part"`
	Outcome     *Ref      `json:"outcome"`
	Technique   *Ref      `json:"technique"`
	FirstTime   bool      `json:"first_time"`
	OneOnOne    bool      `json:"one_on_one"`
	KeyPassID   *string   `json:"key_pass_id"`
}

type DuelDoc struct {
	Type         *Ref `json:"type"`
	Outcome      *Ref `json:"outcome"`
	Counterpress bool `json:"counterpress"`
}

type DribbleDoc struct {
	Outcome *Ref `json:"outcome"`
	Nutmeg  bool `json:"nutmeg"`
	Overrun bool `json:"overrun"`
	NoTouch bool `json:"no_touch"`
}

type InterceptionDoc struct {
	Outcome *Ref `json:"outcome"`
}

type ClearanceDoc struct {
	BodyPart  *Ref `json:"body_part"`
	AerialWon bool `json:"aerial_won"`
}

type GoalkeeperDoc struct {
	Type        *Ref      `json:"type"`
	Outcome     *Ref      `json:"outcome"`
	Technique   *Ref      `json:"technique"`
	BodyPart    *Ref      `json:"body_part"`
	EndLocation []float64 `json:"end_location"`
}

type FoulCommittedDoc struct {
	Card      *Ref `json:"card"`
	Penalty   bool `json:"penalty"`
	Advantage bool `json:"advantage"`
	Offensive bool `json:"offensive"`
}

// EventDoc is one event inside a per-match event file. The owning match id
// comes from the filename. Subtype fields are nil unless the payload carries
// the matching block.
type EventDoc struct {
	ID             string    `json:"id"`
	Index          int       `json:"index"`
	Period         int       `json:"period"`
	Timestamp      *string   `json:"timestamp"`
	Minute         int       `json:"minute"`
	Second         int       `json:"second"`
	Type           Ref       `json:"type"`
	Possession     *int      `json:"possession"`
	PossessionTeam *Ref      `json:"possession_team"`
	PlayPattern    *Ref      `json:"play_pattern"`
	Team           *Ref      `json:"team"`
	Player         *Ref      `json:"player"`
	Position       *Ref      `json:"position"`
	Location       []float64 `json:"location"`
	Duration       *float64  `json:"duration"`
	UnderPressure  bool      `json:"under_pressure"`
	OffCamera      bool      `json:"off_camera"`
	Out            bool      `json:"out"`
	RelatedEvents  []string  `json:"related_events"`

	Pass          *PassDoc          `json:"pass"`
	Shot          *ShotDoc          `json:"shot"`
	Duel          *DuelDoc          `json:"duel"`
	Dribble       *DribbleDoc       `json:"dribble"`
	Interception  *InterceptionDoc  `json:"interception"`
	Clearance     *ClearanceDoc     `json:"clearance"`
	Goalkeeper    *GoalkeeperDoc    `json:"goalkeeper"`
	FoulCommitted *FoulCommittedDoc `json:"foul_committed"`
}

// FrameFreezePlayerDoc is one tracked player inside a 360 frame.
type FrameFreezePlayerDoc struct {
	Teammate bool      `json:"teammate"`
	Actor    bool      `json:"actor"`
	Keeper   bool      `json:"keeper"`
	Location []float64 `json:"location"`
}

// FrameDoc is one 360 tracking frame inside a per-match tracking file. The
// visible area stays raw so the stored jsonb matches the source byte for
// byte; the coordinate list is decoded separately for the area math.
type FrameDoc struct {
	EventUUID   string                 `json:"event_uuid"`
	VisibleArea json.RawMessage        `json:"visible_area"`
	FreezeFrame []FrameFreezePlayerDoc `json:"freeze_frame"`
}
