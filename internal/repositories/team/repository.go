package team

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

// Stats is a win/draw/loss record derived from final scores.
type Stats struct {
	models.Team
	MatchesPlayed int64 `json:"matches_played" db:"matches_played"`
	Wins          int64 `json:"wins" db:"wins"`
	Draws         int64 `json:"draws" db:"draws"`
	Losses        int64 `json:"losses" db:"losses"`
	GoalsFor      int64 `json:"goals_for" db:"goals_for"`
	GoalsAgainst  int64 `json:"goals_against" db:"goals_against"`
}

var sortable = map[string]string{
	"name":    "t.name",
	"matches": "matches_played",
	"wins":    "wins",
	"goals":   "goals_for",
}

// record aggregates a team's matches from both the home and the away side.
const recordSelect = `(SELECT COUNT(*) FROM matches m WHERE m.home_team_id = t.team_id OR m.away_team_id = t.team_id) AS matches_played,
(SELECT COUNT(*) FROM matches m WHERE (m.home_team_id = t.team_id AND m.home_score > m.away_score) OR (m.away_team_id = t.team_id AND m.away_score > m.home_score)) AS wins,
(SELECT COUNT(*) FROM matches m WHERE (m.home_team_id = t.team_id OR m.away_team_id = t.team_id) AND m.home_score = m.away_score) AS draws,
(SELECT COUNT(*) FROM matches m WHERE (m.home_team_id = t.team_id AND m.home_score < m.away_score) OR (m.away_team_id = t.team_id AND m.away_score < m.home_score)) AS losses,
(SELECT COALESCE(SUM(CASE WHEN m.home_team_id = t.team_id THEN m.home_score ELSE m.away_score END), 0) FROM matches m WHERE m.home_team_id = t.team_id OR m.away_team_id = t.team_id) AS goals_for,
(SELECT COALESCE(SUM(CASE WHEN m.home_team_id = t.team_id THEN m.away_score ELSE m.home_score END), 0) FROM matches m WHERE m.home_team_id = t.team_id OR m.away_team_id = t.team_id) AS goals_against`

// Repository handles team reads
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

// List retrieves teams with their match records.
func (r *Repository) List(ctx context.Context, name string, page listing.Page) ([]Stats, int64, error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("t.team_id", "t.name", "t.gender", "t.country_id", recordSelect)
	sb.From("teams t")
	if name != "" {
		sb.Where(sb.ILike("t.name", "%"+name+"%"))
	}
	sb.OrderBy(page.Sort)
	sb.Limit(page.Limit)
	sb.Offset(page.Offset)

	query, args := sb.Build()
	var teams []Stats
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list teams")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list teams")
	}

	cb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	cb.Select("COUNT(*)")
	cb.From("teams t")
	if name != "" {
		cb.Where(cb.ILike("t.name", "%"+name+"%"))
	}

	countQuery, countArgs := cb.Build()
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count teams")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list teams")
	}

	return teams, total, nil
}

// Get retrieves one team with its match record.
func (r *Repository) Get(ctx context.Context, teamID int) (*Stats, error) {
	ctx, span := tracing.StartSpan(ctx, "team.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("t.team_id", "t.name", "t.gender", "t.country_id", recordSelect)
	sb.From("teams t")
	sb.Where(sb.Equal("t.team_id", teamID))

	query, args := sb.Build()
	var team Stats
	if err := r.db.GetContext(ctx, &team, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("team %d not found", teamID))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get team")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get team")
	}

	return &team, nil
}
