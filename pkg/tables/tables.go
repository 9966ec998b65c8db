// Package tables declares the destination table descriptors used by the
// batch writer: column order for multi-row inserts and the per-table batch
// size derived from the parameter ceiling. Value mappers keep the column
// order and the model field order in one place.
package tables

import (
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/models"
)

// jsonValue passes raw JSON to the driver as text so it casts cleanly to
// jsonb, with empty payloads mapping to NULL.
func jsonValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// Descriptor names a destination table and its insert column order.
type Descriptor struct {
	Name    string
	Columns []string
}

// BatchSize returns the largest row count whose bound parameters stay under
// budget for this table's width.
func (d Descriptor) BatchSize(paramBudget int) int {
	size := paramBudget / len(d.Columns)
	if size < 1 {
		size = 1
	}
	return size
}

var Competitions = Descriptor{
	Name:    "competitions",
	Columns: []string{"competition_id", "name", "gender", "country_id", "youth", "international", "source_data"},
}

var Seasons = Descriptor{
	Name:    "seasons",
	Columns: []string{"season_id", "season_name"},
}

var Teams = Descriptor{
	Name:    "teams",
	Columns: []string{"team_id", "name", "gender", "country_id"},
}

var Managers = Descriptor{
	Name:    "managers",
	Columns: []string{"manager_id", "name", "nickname", "date_of_birth", "country_id"},
}

var Stadiums = Descriptor{
	Name:    "stadiums",
	Columns: []string{"stadium_id", "name", "country_id"},
}

var Referees = Descriptor{
	Name:    "referees",
	Columns: []string{"referee_id", "name", "country_id"},
}

var Players = Descriptor{
	Name:    "players",
	Columns: []string{"player_id", "name", "nickname", "country_id"},
}

var Matches = Descriptor{
	Name: "matches",
	Columns: []string{
		"match_id", "competition_id", "season_id", "match_date", "kick_off",
		"home_team_id", "away_team_id", "home_score", "away_score",
		"home_manager_id", "away_manager_id", "match_week", "competition_stage",
		"stadium_id", "referee_id", "source_data",
	},
}

var Lineups = Descriptor{
	Name:    "lineups",
	Columns: []string{"match_id", "player_id", "team_id", "jersey_number", "source_data"},
}

var PlayerPositions = Descriptor{
	Name: "player_positions",
	Columns: []string{
		"match_id", "player_id", "stint_index", "position_id", "from_time", "to_time",
		"from_period", "to_period", "start_reason", "end_reason", "duration_seconds",
	},
}

var Cards = Descriptor{
	Name:    "cards",
	Columns: []string{"match_id", "player_id", "card_index", "card_type_id", "card_time", "period", "reason"},
}

var Events = Descriptor{
	Name: "events",
	Columns: []string{
		"event_id", "match_id", "event_index", "period", "event_timestamp", "minute", "second",
		"type_id", "possession", "possession_team_id", "play_pattern_id", "team_id", "player_id",
		"position_id", "location_x", "location_y", "duration", "under_pressure", "off_camera",
		"out", "source_data",
	},
}

var EventRelations = Descriptor{
	Name:    "event_relations",
	Columns: []string{"event_id", "related_event_id"},
}

var Passes = Descriptor{
	Name: "passes",
	Columns: []string{
		"event_id", "recipient_id", "length", "angle", "height_id", "end_x", "end_y",
		"pass_type_id", "body_part_id", "outcome_id", "technique_id",
		"is_cross", "is_switch", "is_cut_back", "is_assist", "assisted_shot_id",
	},
}

var Shots = Descriptor{
	Name: "shots",
	Columns: []string{
		"event_id", "end_x", "end_y", "end_z", "xg", "shot_type_id", "body_part_id",
		"outcome_id", "technique_id", "first_time", "one_on_one", "key_pass_id",
	},
}

var Duels = Descriptor{
	Name:    "duels",
	Columns: []string{"event_id", "duel_type_id", "outcome_id", "counterpress"},
}

var Dribbles = Descriptor{
	Name:    "dribbles",
	Columns: []string{"event_id", "outcome_id", "nutmeg", "overrun", "no_touch"},
}

var Interceptions = Descriptor{
	Name:    "interceptions",
	Columns: []string{"event_id", "outcome_id"},
}

var Clearances = Descriptor{
	Name:    "clearances",
	Columns: []string{"event_id", "body_part_id", "aerial_won"},
}

var GoalkeeperEvents = Descriptor{
	Name: "goalkeeper_events",
	Columns: []string{
		"event_id", "goalkeeper_type_id", "outcome_id", "technique_id", "body_part_id", "end_x", "end_y",
	},
}

var Fouls = Descriptor{
	Name:    "fouls",
	Columns: []string{"event_id", "card_type_id", "penalty", "advantage", "offensive"},
}

var Frames = Descriptor{
	Name:    "frames",
	Columns: []string{"event_id", "match_id", "visible_area", "visible_area_size", "source_data"},
}

var FramePlayers = Descriptor{
	Name: "frame_players",
	Columns: []string{
		"event_id", "player_index", "teammate", "actor", "keeper", "x", "y",
		"distance_from_actor", "in_visible_area",
	},
}

// Lookup table descriptors share one shape.
func lookupDescriptor(table string) Descriptor {
	return Descriptor{Name: table, Columns: []string{"id", "name"}}
}

var (
	EventTypes      = lookupDescriptor(models.TableEventTypes)
	PlayPatterns    = lookupDescriptor(models.TablePlayPatterns)
	Positions       = lookupDescriptor(models.TablePositions)
	BodyParts       = lookupDescriptor(models.TableBodyParts)
	Outcomes        = lookupDescriptor(models.TableOutcomes)
	Techniques      = lookupDescriptor(models.TableTechniques)
	Heights         = lookupDescriptor(models.TableHeights)
	PassTypes       = lookupDescriptor(models.TablePassTypes)
	ShotTypes       = lookupDescriptor(models.TableShotTypes)
	DuelTypes       = lookupDescriptor(models.TableDuelTypes)
	GoalkeeperTypes = lookupDescriptor(models.TableGoalkeeperTypes)
)

// card_types is absent here: lineup files reference card types by name only,
// so it is a surrogate dimension reconciled by the resolver instead of a
// source-id lookup.

func LookupValues(l models.Lookup) []any {
	return []any{l.ID, l.Name}
}

func CompetitionValues(c models.Competition) []any {
	return []any{c.CompetitionID, c.Name, c.Gender, c.CountryID, c.Youth, c.International, jsonValue(c.SourceData)}
}

func SeasonValues(s models.Season) []any {
	return []any{s.SeasonID, s.SeasonName}
}

func TeamValues(t models.Team) []any {
	return []any{t.TeamID, t.Name, t.Gender, t.CountryID}
}

func ManagerValues(m models.Manager) []any {
	return []any{m.ManagerID, m.Name, m.Nickname, m.DateOfBirth, m.CountryID}
}

func StadiumValues(s models.Stadium) []any {
	return []any{s.StadiumID, s.Name, s.CountryID}
}

func RefereeValues(r models.Referee) []any {
	return []any{r.RefereeID, r.Name, r.CountryID}
}

func PlayerValues(p models.Player) []any {
	return []any{p.PlayerID, p.Name, p.Nickname, p.CountryID}
}

func MatchValues(m models.Match) []any {
	return []any{
		m.MatchID, m.CompetitionID, m.SeasonID, m.MatchDate, m.KickOff,
		m.HomeTeamID, m.AwayTeamID, m.HomeScore, m.AwayScore,
		m.HomeManagerID, m.AwayManagerID, m.MatchWeek, m.CompetitionStage,
		m.StadiumID, m.RefereeID, jsonValue(m.SourceData),
	}
}

func LineupValues(l models.Lineup) []any {
	return []any{l.MatchID, l.PlayerID, l.TeamID, l.JerseyNumber, jsonValue(l.SourceData)}
}

func PlayerPositionValues(p models.PlayerPosition) []any {
	return []any{
		p.MatchID, p.PlayerID, p.StintIndex, p.PositionID, p.FromTime, p.ToTime,
		p.FromPeriod, p.ToPeriod, p.StartReason, p.EndReason, p.DurationSeconds,
	}
}

func CardValues(c models.Card) []any {
	return []any{c.MatchID, c.PlayerID, c.CardIndex, c.CardTypeID, c.CardTime, c.Period, c.Reason}
}

func EventValues(e models.Event) []any {
	return []any{
		e.EventID, e.MatchID, e.EventIndex, e.Period, e.EventTimestamp, e.Minute, e.Second,
		e.TypeID, e.Possession, e.PossessionTeamID, e.PlayPatternID, e.TeamID, e.PlayerID,
		e.PositionID, e.LocationX, e.LocationY, e.Duration, e.UnderPressure, e.OffCamera,
		e.Out, jsonValue(e.SourceData),
	}
}

func EventRelationValues(r models.EventRelation) []any {
	return []any{r.EventID, r.RelatedEventID}
}

func PassValues(p models.Pass) []any {
	return []any{
		p.EventID, p.RecipientID, p.Length, p.Angle, p.HeightID, p.EndX, p.EndY,
		p.PassTypeID, p.BodyPartID, p.OutcomeID, p.TechniqueID,
		p.IsCross, p.IsSwitch, p.IsCutBack, p.IsAssist, p.AssistedShotID,
	}
}

func ShotValues(s models.Shot) []any {
	return []any{
		s.EventID, s.EndX, s.EndY, s.EndZ, s.XG, s.ShotTypeID, s.BodyPartID,
		s.OutcomeID, s.TechniqueID, s.FirstTime, s.OneOnOne, s.KeyPassID,
	}
}

func DuelValues(d models.Duel) []any {
	return []any{d.EventID, d.DuelTypeID, d.OutcomeID, d.Counterpress}
}

func DribbleValues(d models.Dribble) []any {
	return []any{d.EventID, d.OutcomeID, d.Nutmeg, d.Overrun, d.NoTouch}
}

func InterceptionValues(i models.Interception) []any {
	return []any{i.EventID, i.OutcomeID}
}

func ClearanceValues(c models.Clearance) []any {
	return []any{c.EventID, c.BodyPartID, c.AerialWon}
}

func GoalkeeperEventValues(g models.GoalkeeperEvent) []any {
	return []any{g.EventID, g.GoalkeeperTypeID, g.OutcomeID, g.TechniqueID, g.BodyPartID, g.EndX, g.EndY}
}

func FoulValues(f models.Foul) []any {
	return []any{f.EventID, f.CardTypeID, f.Penalty, f.Advantage, f.Offensive}
}

func FrameValues(f models.Frame) []any {
	return []any{f.EventID, f.MatchID, jsonValue(f.VisibleArea), f.VisibleAreaSize, jsonValue(f.SourceData)}
}

func FramePlayerValues(p models.FramePlayer) []any {
	return []any{
		p.EventID, p.PlayerIndex, p.Teammate, p.Actor, p.Keeper, p.X, p.Y,
		p.DistanceFromActor, p.InVisibleArea,
	}
}
