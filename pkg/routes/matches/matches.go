package matches

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/internal/repositories/match"
	"github.com/vukovuko/football-rag/pkg/routes/respond"
)

// Handler handles match routes
type Handler struct {
	repo *match.Repository
}

func NewHandler(repo *match.Repository) *Handler {
	return &Handler{repo: repo}
}

// Register registers match routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.ListMatches)
	g.GET("/:id", h.GetMatch)
	g.GET("/:id/lineups", h.GetLineups)
}

// ListMatches lists matches with optional filters
func (h *Handler) ListMatches(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	page, err := listing.NewPage(limit, offset, c.QueryParam("sort"), c.QueryParam("order"), match.SortKeys(), "m.match_date DESC")
	if err != nil {
		return err
	}

	var filter match.Filter
	if v := c.QueryParam("competition_id"); v != "" {
		filter.CompetitionID, err = strconv.Atoi(v)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "competition_id must be an integer")
		}
	}
	if v := c.QueryParam("season_id"); v != "" {
		filter.SeasonID, err = strconv.Atoi(v)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "season_id must be an integer")
		}
	}
	if v := c.QueryParam("team_id"); v != "" {
		filter.TeamID, err = strconv.Atoi(v)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "team_id must be an integer")
		}
	}

	matches, total, err := h.repo.List(ctx, filter, page)
	if err != nil {
		return err
	}

	return respond.OKWithMeta(c, matches, respond.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
		Sort:   page.Sort,
	})
}

// GetMatch gets a match by id
func (h *Handler) GetMatch(c echo.Context) error {
	ctx := c.Request().Context()

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "match id must be an integer")
	}

	found, err := h.repo.Get(ctx, matchID)
	if err != nil {
		return err
	}

	return respond.OK(c, found)
}

// GetLineups gets both rosters for a match
func (h *Handler) GetLineups(c echo.Context) error {
	ctx := c.Request().Context()

	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "match id must be an integer")
	}

	entries, err := h.repo.Lineups(ctx, matchID)
	if err != nil {
		return err
	}

	return respond.OK(c, entries)
}
