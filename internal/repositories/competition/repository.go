package competition

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

// Summary is one row of a competition listing.
type Summary struct {
	CompetitionID int     `json:"competition_id" db:"competition_id"`
	Name          string  `json:"name" db:"name"`
	Gender        *string `json:"gender,omitempty" db:"gender"`
	CountryName   *string `json:"country_name,omitempty" db:"country_name"`
	Youth         bool    `json:"youth" db:"youth"`
	International bool    `json:"international" db:"international"`
	MatchCount    int64   `json:"match_count" db:"match_count"`
}

// Detail is one competition with the seasons it was played in.
type Detail struct {
	Summary
	Seasons []models.Season `json:"seasons"`
}

var sortable = map[string]string{
	"name":    "c.name",
	"matches": "match_count",
}

var summaryColumns = []string{
	"c.competition_id", "c.name", "c.gender",
	"co.name AS country_name", "c.youth", "c.international",
	"(SELECT COUNT(*) FROM matches m WHERE m.competition_id = c.competition_id) AS match_count",
}

// Repository handles competition reads
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

// List retrieves competitions with pagination.
func (r *Repository) List(ctx context.Context, page listing.Page) ([]Summary, int64, error) {
	ctx, span := tracing.StartSpan(ctx, "competition.Repository.List")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(summaryColumns...)
	sb.From("competitions c")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "countries co", "co.id = c.country_id")
	sb.OrderBy(page.Sort)
	sb.Limit(page.Limit)
	sb.Offset(page.Offset)

	query, args := sb.Build()
	var competitions []Summary
	if err := r.db.SelectContext(ctx, &competitions, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list competitions")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list competitions")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM competitions"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count competitions")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list competitions")
	}

	return competitions, total, nil
}

// Get retrieves one competition and the seasons it has matches in.
func (r *Repository) Get(ctx context.Context, competitionID int) (*Detail, error) {
	ctx, span := tracing.StartSpan(ctx, "competition.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(summaryColumns...)
	sb.From("competitions c")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "countries co", "co.id = c.country_id")
	sb.Where(sb.Equal("c.competition_id", competitionID))

	query, args := sb.Build()
	var detail Detail
	if err := r.db.GetContext(ctx, &detail.Summary, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("competition %d not found", competitionID))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get competition")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get competition")
	}

	ssb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	ssb.Distinct()
	ssb.Select("s.season_id", "s.season_name")
	ssb.From("seasons s")
	ssb.JoinWithOption(sqlbuilder.InnerJoin, "matches m", "m.season_id = s.season_id")
	ssb.Where(ssb.Equal("m.competition_id", competitionID))
	ssb.OrderBy("s.season_name")

	seasonQuery, seasonArgs := ssb.Build()
	if err := r.db.SelectContext(ctx, &detail.Seasons, seasonQuery, seasonArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get competition seasons")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get competition")
	}

	return &detail, nil
}
