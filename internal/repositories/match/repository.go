package match

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

// Summary is one row of a match listing, with team names joined in.
type Summary struct {
	MatchID          int     `json:"match_id" db:"match_id"`
	MatchDate        *string `json:"match_date,omitempty" db:"match_date"`
	KickOff          *string `json:"kick_off,omitempty" db:"kick_off"`
	CompetitionID    *int    `json:"competition_id,omitempty" db:"competition_id"`
	CompetitionName  *string `json:"competition_name,omitempty" db:"competition_name"`
	SeasonID         *int    `json:"season_id,omitempty" db:"season_id"`
	SeasonName       *string `json:"season_name,omitempty" db:"season_name"`
	HomeTeamID       *int    `json:"home_team_id,omitempty" db:"home_team_id"`
	HomeTeamName     *string `json:"home_team_name,omitempty" db:"home_team_name"`
	AwayTeamID       *int    `json:"away_team_id,omitempty" db:"away_team_id"`
	AwayTeamName     *string `json:"away_team_name,omitempty" db:"away_team_name"`
	HomeScore        *int    `json:"home_score,omitempty" db:"home_score"`
	AwayScore        *int    `json:"away_score,omitempty" db:"away_score"`
	MatchWeek        *int    `json:"match_week,omitempty" db:"match_week"`
	CompetitionStage *string `json:"competition_stage,omitempty" db:"competition_stage"`
	StadiumName      *string `json:"stadium_name,omitempty" db:"stadium_name"`
	RefereeName      *string `json:"referee_name,omitempty" db:"referee_name"`
}

// Detail is one match with its event volume rollup.
type Detail struct {
	Summary
	EventCount int64 `json:"event_count" db:"event_count"`
	FrameCount int64 `json:"frame_count" db:"frame_count"`
}

// Filter narrows a match listing.
type Filter struct {
	CompetitionID int
	SeasonID      int
	TeamID        int
}

var sortable = map[string]string{
	"date":  "m.match_date",
	"week":  "m.match_week",
	"score": "(COALESCE(m.home_score, 0) + COALESCE(m.away_score, 0))",
}

var summaryColumns = []string{
	"m.match_id", "m.match_date::text AS match_date", "m.kick_off::text AS kick_off",
	"m.competition_id", "c.name AS competition_name",
	"m.season_id", "s.season_name",
	"m.home_team_id", "ht.name AS home_team_name",
	"m.away_team_id", "at.name AS away_team_name",
	"m.home_score", "m.away_score", "m.match_week", "m.competition_stage",
	"st.name AS stadium_name", "r.name AS referee_name",
}

// Repository handles match reads
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func SortKeys() map[string]string {
	return sortable
}

func baseSelect() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.From("matches m")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "competitions c", "c.competition_id = m.competition_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "seasons s", "s.season_id = m.season_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "teams ht", "ht.team_id = m.home_team_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "teams at", "at.team_id = m.away_team_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "stadiums st", "st.stadium_id = m.stadium_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "referees r", "r.referee_id = m.referee_id")
	return sb
}

func applyFilter(sb *sqlbuilder.SelectBuilder, filter Filter) {
	if filter.CompetitionID > 0 {
		sb.Where(sb.Equal("m.competition_id", filter.CompetitionID))
	}
	if filter.SeasonID > 0 {
		sb.Where(sb.Equal("m.season_id", filter.SeasonID))
	}
	if filter.TeamID > 0 {
		sb.Where(sb.Or(sb.Equal("m.home_team_id", filter.TeamID), sb.Equal("m.away_team_id", filter.TeamID)))
	}
}

// List retrieves matches with pagination and filtering.
func (r *Repository) List(ctx context.Context, filter Filter, page listing.Page) ([]Summary, int64, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.List")
	defer span.End()

	sb := baseSelect()
	sb.Select(summaryColumns...)
	applyFilter(sb, filter)
	sb.OrderBy(page.Sort)
	sb.Limit(page.Limit)
	sb.Offset(page.Offset)

	query, args := sb.Build()
	var matches []Summary
	if err := r.db.SelectContext(ctx, &matches, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list matches")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list matches")
	}

	cb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	cb.Select("COUNT(*)")
	cb.From("matches m")
	applyFilter(cb, filter)

	countQuery, countArgs := cb.Build()
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count matches")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list matches")
	}

	return matches, total, nil
}

// Get retrieves one match with its event and frame volume.
func (r *Repository) Get(ctx context.Context, matchID int) (*Detail, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.Get")
	defer span.End()

	sb := baseSelect()
	columns := append([]string{}, summaryColumns...)
	columns = append(columns,
		"(SELECT COUNT(*) FROM events e WHERE e.match_id = m.match_id) AS event_count",
		"(SELECT COUNT(*) FROM frames f WHERE f.match_id = m.match_id) AS frame_count",
	)
	sb.Select(columns...)
	sb.Where(sb.Equal("m.match_id", matchID))

	query, args := sb.Build()
	var detail Detail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match %d not found", matchID))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get match")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match")
	}

	return &detail, nil
}

// LineupEntry is one roster row of a match lineup.
type LineupEntry struct {
	PlayerID     int     `json:"player_id" db:"player_id"`
	PlayerName   string  `json:"player_name" db:"player_name"`
	TeamID       int     `json:"team_id" db:"team_id"`
	TeamName     string  `json:"team_name" db:"team_name"`
	JerseyNumber *int    `json:"jersey_number,omitempty" db:"jersey_number"`
	PositionName *string `json:"position,omitempty" db:"position"`
}

// Lineups retrieves both rosters for one match, each player tagged with the
// position of their first stint.
func (r *Repository) Lineups(ctx context.Context, matchID int) ([]LineupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "match.Repository.Lineups")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"l.player_id", "p.name AS player_name", "l.team_id", "t.name AS team_name", "l.jersey_number",
		"(SELECT po.name FROM player_positions pp JOIN positions po ON po.id = pp.position_id WHERE pp.match_id = l.match_id AND pp.player_id = l.player_id ORDER BY pp.stint_index LIMIT 1) AS position",
	)
	sb.From("lineups l")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "players p", "p.player_id = l.player_id")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "teams t", "t.team_id = l.team_id")
	sb.Where(sb.Equal("l.match_id", matchID))
	sb.OrderBy("l.team_id", "l.jersey_number")

	query, args := sb.Build()
	var entries []LineupEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get match lineups")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match lineups")
	}

	return entries, nil
}
