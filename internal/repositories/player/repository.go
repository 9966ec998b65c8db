package player

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

var playerColumns = []string{
	"player_id", "name", "nickname", "country_id",
	"total_matches", "total_goals", "total_assists",
	"total_yellow_cards", "total_red_cards", "total_minutes",
}

// sortable maps caller sort keys to real columns. Closed by construction;
// anything outside it is rejected before query build.
var sortable = map[string]string{
	"name":    "name",
	"matches": "total_matches",
	"goals":   "total_goals",
	"assists": "total_assists",
	"minutes": "total_minutes",
}

// Filter narrows a player listing.
type Filter struct {
	Name     string
	TeamID   int
	MinGoals int
}

// Repository handles player reads
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

// SortKeys exposes the allow-listed sort keys for request validation.
func SortKeys() map[string]string {
	return sortable
}

// List retrieves players with pagination and filtering, plus the unpaged
// total for the response meta.
func (r *Repository) List(ctx context.Context, filter Filter, page listing.Page) ([]models.Player, int64, error) {
	ctx, span := tracing.StartSpan(ctx, "player.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(playerColumns...)
	sb.From("players")
	applyFilter(sb, filter)
	sb.OrderBy(page.Sort)
	sb.Limit(page.Limit)
	sb.Offset(page.Offset)

	query, args := sb.Build()
	var players []models.Player
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list players")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list players")
	}

	cb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	cb.Select("COUNT(*)")
	cb.From("players")
	applyFilter(cb, filter)

	countQuery, countArgs := cb.Build()
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count players")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list players")
	}

	return players, total, nil
}

func applyFilter(sb *sqlbuilder.SelectBuilder, filter Filter) {
	if filter.Name != "" {
		sb.Where(sb.ILike("name", "%"+filter.Name+"%"))
	}
	if filter.TeamID > 0 {
		sb.Where(sb.In("player_id", sqlbuilder.Buildf("SELECT DISTINCT l.player_id FROM lineups l JOIN matches m ON m.match_id = l.match_id WHERE l.team_id = %v", filter.TeamID)))
	}
	if filter.MinGoals > 0 {
		sb.Where(sb.GreaterEqualThan("total_goals", filter.MinGoals))
	}
}

// Get retrieves one player with its recomputed career totals.
func (r *Repository) Get(ctx context.Context, playerID int) (*models.Player, error) {
	ctx, span := tracing.StartSpan(ctx, "player.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(playerColumns...)
	sb.From("players")
	sb.Where(sb.Equal("player_id", playerID))

	query, args := sb.Build()
	var player models.Player
	if err := r.db.GetContext(ctx, &player, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("player %d not found", playerID))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get player")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get player")
	}

	return &player, nil
}

// MatchAppearance is one row of a player's per-match rollup.
type MatchAppearance struct {
	MatchID      int      `json:"match_id" db:"match_id"`
	MatchDate    *string  `json:"match_date,omitempty" db:"match_date"`
	TeamID       int      `json:"team_id" db:"team_id"`
	TeamName     string   `json:"team_name" db:"team_name"`
	JerseyNumber *int     `json:"jersey_number,omitempty" db:"jersey_number"`
	Minutes      *float64 `json:"minutes,omitempty" db:"minutes"`
}

// Appearances lists a player's matches newest first with minutes played per
// match, derived from the position stints.
func (r *Repository) Appearances(ctx context.Context, playerID int, page listing.Page) ([]MatchAppearance, error) {
	ctx, span := tracing.StartSpan(ctx, "player.Repository.Appearances")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(
		"l.match_id", "m.match_date::text AS match_date", "l.team_id", "t.name AS team_name", "l.jersey_number",
		"(SELECT SUM(pp.duration_seconds) / 60.0 FROM player_positions pp WHERE pp.match_id = l.match_id AND pp.player_id = l.player_id) AS minutes",
	)
	sb.From("lineups l")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "matches m", "m.match_id = l.match_id")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "teams t", "t.team_id = l.team_id")
	sb.Where(sb.Equal("l.player_id", playerID))
	sb.OrderBy("m.match_date DESC")
	sb.Limit(page.Limit)
	sb.Offset(page.Offset)

	query, args := sb.Build()
	var appearances []MatchAppearance
	if err := r.db.SelectContext(ctx, &appearances, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list player appearances")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list player appearances")
	}

	return appearances, nil
}
